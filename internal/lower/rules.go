package lower

import (
	"fmt"
	"strconv"

	"github.com/reoring/skemagen/internal/naming"
	"github.com/reoring/skemagen/schema"
)

// Condition is a single leaf predicate extracted from a rule expression:
// a target field name, a comparison operator, a rendered value, and the
// field's wrapping in the owning class (optional and repeated fields must
// be unwrapped before comparing). Conditions are immutable once extracted.
type Condition struct {
	Field       string
	Op          string // ">=", "<=", "=="
	Value       string // literal or enum-qualified member reference
	Optional    bool
	Multivalued bool
}

// LoweredRule is an active rule with its flattened condition lists. A
// deactivated rule never appears as a LoweredRule.
type LoweredRule struct {
	Description    string
	Preconditions  []Condition
	Postconditions []Condition
	Elseconditions []Condition
	Bidirectional  bool
	OpenWorld      bool
}

// Extractor flattens rule expressions into leaf conditions using the
// resolver's field information for optionality and enum awareness.
type Extractor struct {
	resolver *Resolver
}

// NewExtractor creates an extractor sharing the given resolver's caches.
func NewExtractor(resolver *Resolver) *Extractor {
	return &Extractor{resolver: resolver}
}

// ClassRules lowers a class's active rules. The resolver must have resolved
// the class's fields already, since conditions are typed against them.
func (e *Extractor) ClassRules(cls *schema.Class) ([]LoweredRule, error) {
	var out []LoweredRule
	for _, rule := range cls.Rules {
		if rule.Deactivated {
			continue
		}
		pre, err := e.flatten(cls.Name, rule.Preconditions)
		if err != nil {
			return nil, err
		}
		post, err := e.flatten(cls.Name, rule.Postconditions)
		if err != nil {
			return nil, err
		}
		els, err := e.flatten(cls.Name, rule.Elseconditions)
		if err != nil {
			return nil, err
		}
		out = append(out, LoweredRule{
			Description:    rule.Description,
			Preconditions:  pre,
			Postconditions: post,
			Elseconditions: els,
			Bidirectional:  rule.Bidirectional,
			OpenWorld:      rule.OpenWorld,
		})
	}
	return out, nil
}

// flatten collects leaf conditions depth-first, left-to-right, across all
// combinator kinds. Combinator semantics beyond flattening (any-of versus
// all-of) are knowingly not preserved; see the open questions in DESIGN.md.
func (e *Extractor) flatten(className string, expr *schema.Expression) ([]Condition, error) {
	if expr == nil {
		return nil, nil
	}
	var out []Condition
	for _, nc := range expr.SlotConditions {
		leaves, err := e.leaf(className, nc)
		if err != nil {
			return nil, err
		}
		out = append(out, leaves...)
	}
	for _, group := range [][]schema.Expression{expr.AnyOf, expr.AllOf, expr.NoneOf, expr.ExactlyOneOf} {
		for i := range group {
			nested, err := e.flatten(className, &group[i])
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		}
	}
	return out, nil
}

// leaf turns one slot_conditions entry into zero or more conditions. For an
// equality on an enum-ranged field the value renders as an enum member
// reference (Status.Inactive) rather than a string literal.
func (e *Extractor) leaf(className string, nc schema.NamedCondition) ([]Condition, error) {
	f, ok := e.resolver.Field(className, nc.Slot)
	if !ok {
		return nil, fmt.Errorf("rule on class %q references %w %q", className, ErrUnknownSlot, nc.Slot)
	}
	cond := func(op, value string) Condition {
		return Condition{Field: f.Name, Op: op, Value: value, Optional: f.Optional, Multivalued: f.Multivalued}
	}
	var out []Condition
	if nc.MinimumValue != nil {
		out = append(out, cond(">=", formatNumber(*nc.MinimumValue)))
	}
	if nc.MaximumValue != nil {
		out = append(out, cond("<=", formatNumber(*nc.MaximumValue)))
	}
	if nc.EqualsString != nil {
		out = append(out, cond("==", equalsValue(f, *nc.EqualsString)))
	}
	if nc.EqualsNumber != nil {
		out = append(out, cond("==", formatNumber(*nc.EqualsNumber)))
	}
	return out, nil
}

// equalsValue renders an equality operand: an enum member reference for
// enum-ranged fields, a quoted string literal otherwise.
func equalsValue(f *EffectiveField, literal string) string {
	if f.IsEnum {
		return f.BaseType + "." + naming.Pascal(literal)
	}
	return strconv.Quote(literal)
}
