package lower

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/skemagen/internal/model"
	"github.com/reoring/skemagen/internal/naming"
)

// BuildValidation synthesizes the validate checks and rule methods of a
// record from its effective fields and lowered rules. Validation is a pure
// reporting function in the generated code: every check appends a message,
// an empty list signals validity, nothing throws.
func BuildValidation(fields []*EffectiveField, rules []LoweredRule) ([]model.Check, []model.RuleMethod) {
	var checks []model.Check
	for _, f := range fields {
		checks = append(checks, fieldChecks(f)...)
	}
	var methods []model.RuleMethod
	for _, r := range rules {
		methods = append(methods, ruleMethods(r)...)
	}
	return checks, methods
}

// fieldChecks expands one field's effective constraints into checks. Each
// check's Expr is the condition that must hold; the renderer negates it.
func fieldChecks(f *EffectiveField) []model.Check {
	var out []model.Check
	acc := "instance." + f.Name

	if f.Pattern != nil {
		expr := elementwise(f, func(ref string) string {
			return ref + ".matches(" + strconv.Quote(*f.Pattern) + ")"
		})
		out = append(out, model.Check{Expr: expr, Message: fmt.Sprintf("%s must match %s", f.Name, *f.Pattern)})
	}

	switch {
	case f.MinimumValue != nil && f.MaximumValue != nil:
		lo, hi := formatNumber(*f.MinimumValue), formatNumber(*f.MaximumValue)
		expr := elementwise(f, func(ref string) string {
			return fmt.Sprintf("%s >= %s && %s <= %s", ref, lo, ref, hi)
		})
		out = append(out, model.Check{Expr: expr, Message: fmt.Sprintf("%s must be between %s and %s", f.Name, lo, hi)})
	case f.MinimumValue != nil:
		lo := formatNumber(*f.MinimumValue)
		expr := elementwise(f, func(ref string) string { return ref + " >= " + lo })
		out = append(out, model.Check{Expr: expr, Message: fmt.Sprintf("%s must be at least %s", f.Name, lo)})
	case f.MaximumValue != nil:
		hi := formatNumber(*f.MaximumValue)
		expr := elementwise(f, func(ref string) string { return ref + " <= " + hi })
		out = append(out, model.Check{Expr: expr, Message: fmt.Sprintf("%s must be at most %s", f.Name, hi)})
	}

	if f.Multivalued {
		if f.ExactCardinality != nil {
			n := strconv.Itoa(*f.ExactCardinality)
			out = append(out, model.Check{
				Expr:    fmt.Sprintf("%s.size == %s", acc, n),
				Message: fmt.Sprintf("%s must have exactly %s elements", f.Name, n),
			})
		} else {
			if f.MinimumCardinality != nil {
				n := strconv.Itoa(*f.MinimumCardinality)
				out = append(out, model.Check{
					Expr:    fmt.Sprintf("%s.size >= %s", acc, n),
					Message: fmt.Sprintf("%s must have at least %s elements", f.Name, n),
				})
			}
			if f.MaximumCardinality != nil {
				n := strconv.Itoa(*f.MaximumCardinality)
				out = append(out, model.Check{
					Expr:    fmt.Sprintf("%s.size <= %s", acc, n),
					Message: fmt.Sprintf("%s must have at most %s elements", f.Name, n),
				})
			}
		}
	}

	if f.EqualsString != nil {
		val := equalsValue(f, *f.EqualsString)
		expr := elementwise(f, func(ref string) string { return ref + " == " + val })
		out = append(out, model.Check{Expr: expr, Message: fmt.Sprintf("%s must equal %s", f.Name, val)})
	}
	if f.EqualsNumber != nil {
		n := formatNumber(*f.EqualsNumber)
		expr := elementwise(f, func(ref string) string { return ref + " == " + n })
		out = append(out, model.Check{Expr: expr, Message: fmt.Sprintf("%s must equal %s", f.Name, n)})
	}
	if len(f.EqualsStringIn) > 0 {
		quoted := make([]string, len(f.EqualsStringIn))
		for i, v := range f.EqualsStringIn {
			quoted[i] = equalsValue(f, v)
		}
		set := "Set(" + strings.Join(quoted, ", ") + ")"
		expr := elementwise(f, func(ref string) string { return set + ".contains(" + ref + ")" })
		out = append(out, model.Check{
			Expr:    expr,
			Message: fmt.Sprintf("%s must be one of %s", f.Name, strings.Join(f.EqualsStringIn, ", ")),
		})
	}

	// Presence checks only apply where absence is representable.
	switch f.ValuePresence {
	case "PRESENT":
		if f.Optional {
			out = append(out, model.Check{Expr: acc + ".isDefined", Message: f.Name + " must be present"})
		} else if f.Multivalued {
			out = append(out, model.Check{Expr: acc + ".nonEmpty", Message: f.Name + " must be present"})
		}
	case "ABSENT":
		if f.Optional || f.Multivalued {
			out = append(out, model.Check{Expr: acc + ".isEmpty", Message: f.Name + " must be absent"})
		}
	}
	return out
}

// elementwise builds a constraint expression that reaches through the
// field's wrapper: optional and repeated fields check via forall (an absent
// optional passes a value constraint), required fields check directly.
func elementwise(f *EffectiveField, pred func(ref string) string) string {
	acc := "instance." + f.Name
	if f.Optional || f.Multivalued {
		return acc + ".forall(v => " + pred("v") + ")"
	}
	return pred(acc)
}

// ruleMethods lowers one rule into its check method, plus the swapped
// reverse method when the rule is bidirectional.
func ruleMethods(r LoweredRule) []model.RuleMethod {
	name := naming.Method(r.Description)
	forward := model.RuleMethod{
		Name:      name,
		Doc:       r.Description,
		OpenWorld: r.OpenWorld,
		PreExprs:  condExprs(r.Preconditions),
		Post:      condChecks(r.Postconditions, r.Description),
		Else:      condChecks(r.Elseconditions, r.Description),
	}
	out := []model.RuleMethod{forward}
	if r.Bidirectional {
		out = append(out, model.RuleMethod{
			Name:      name + "Reverse",
			Doc:       r.Description + " (reverse)",
			OpenWorld: r.OpenWorld,
			PreExprs:  condExprs(r.Postconditions),
			Post:      condChecks(r.Preconditions, r.Description),
			Else:      condChecks(r.Elseconditions, r.Description),
		})
	}
	return out
}

// condExpr renders one condition as a boolean expression. Optional and
// repeated fields compare through exists: an absent optional field makes
// the condition false (the rule body is skipped), a repeated field holds
// when any element matches.
func condExpr(c Condition) string {
	if c.Optional || c.Multivalued {
		return fmt.Sprintf("instance.%s.exists(v => v %s %s)", c.Field, c.Op, c.Value)
	}
	return fmt.Sprintf("(instance.%s %s %s)", c.Field, c.Op, c.Value)
}

func condExprs(conds []Condition) []string {
	out := make([]string, 0, len(conds))
	for _, c := range conds {
		out = append(out, condExpr(c))
	}
	return out
}

// condChecks renders conditions as accumulating checks: one message per
// failing condition, prefixed with the rule description.
func condChecks(conds []Condition, description string) []model.Check {
	out := make([]model.Check, 0, len(conds))
	for _, c := range conds {
		out = append(out, model.Check{
			Expr:    condExpr(c),
			Message: fmt.Sprintf("%s: expected %s %s %s", description, c.Field, c.Op, c.Value),
		})
	}
	return out
}
