package lower

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/skemagen/internal/naming"
	"github.com/reoring/skemagen/schema"
)

// Sentinel errors for schema-shape failures. All of them are fatal to the
// compilation; nothing downstream recovers from a dangling reference.
var (
	ErrUnknownClass  = errors.New("unknown class")
	ErrUnknownSlot   = errors.New("unknown slot")
	ErrBadAnnotation = errors.New("bad annotation")
	ErrUnionShape    = errors.New("union class declares own slots")
)

// EffectiveField is a slot's attributes after merging a class's slot_usage
// overrides, with the resolved and wrapped target type. Produced once per
// (class, slot) pair and cached for the lifetime of the class's lowering.
type EffectiveField struct {
	SlotName  string // schema name (snake_case)
	Name      string // target field name (camelCase)
	RangeName string
	BaseType  string // resolved Scala type of the range
	Type      string // wrapped type (List[...]/Option[...]/bare)
	Default   string

	Multivalued bool
	Required    bool
	Optional    bool // neither multivalued nor required
	Identifier  bool
	IsEnum      bool
	Doc         string

	Pattern            *string
	MinimumValue       *float64
	MaximumValue       *float64
	MinimumCardinality *int
	MaximumCardinality *int
	ExactCardinality   *int
	EqualsString       *string
	EqualsNumber       *float64
	EqualsStringIn     []string
	ValuePresence      string // "", "PRESENT", "ABSENT", or uppercased pass-through
}

// Constrained reports whether the field carries any validatable constraint.
func (f *EffectiveField) Constrained() bool {
	return f.Pattern != nil || f.MinimumValue != nil || f.MaximumValue != nil ||
		f.MinimumCardinality != nil || f.MaximumCardinality != nil ||
		f.ExactCardinality != nil || f.EqualsString != nil || f.EqualsNumber != nil ||
		len(f.EqualsStringIn) > 0 || f.ValuePresence == "PRESENT" || f.ValuePresence == "ABSENT"
}

// Resolver computes effective fields, memoized per class. The schema view
// is read-only for the duration of a compilation, so caching is safe.
type Resolver struct {
	view  *schema.View
	cache map[string][]*EffectiveField
	index map[string]map[string]*EffectiveField
}

// NewResolver creates a resolver over a schema view.
func NewResolver(view *schema.View) *Resolver {
	return &Resolver{
		view:  view,
		cache: map[string][]*EffectiveField{},
		index: map[string]map[string]*EffectiveField{},
	}
}

// ClassFields returns the effective fields of a class in induced-slot
// order: inherited slots first, then the class's own.
func (r *Resolver) ClassFields(className string) ([]*EffectiveField, error) {
	if cached, ok := r.cache[className]; ok {
		return cached, nil
	}
	slotNames, err := r.view.InducedSlotNames(className)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownClass, err)
	}
	overrides := r.view.Overrides(className)
	fields := make([]*EffectiveField, 0, len(slotNames))
	byName := map[string]*EffectiveField{}
	for _, slotName := range slotNames {
		slot, ok := r.view.Slot(slotName)
		if !ok {
			return nil, fmt.Errorf("class %q references %w %q", className, ErrUnknownSlot, slotName)
		}
		f := r.effective(slot, overrides[slotName])
		fields = append(fields, f)
		byName[slotName] = f
	}
	r.cache[className] = fields
	r.index[className] = byName
	return fields, nil
}

// Field returns the effective field a class has for a slot name, if any.
// ClassFields must have run for the class first.
func (r *Resolver) Field(className, slotName string) (*EffectiveField, bool) {
	f, ok := r.index[className][slotName]
	return f, ok
}

// effective merges a slot definition with a class's override record. Only
// explicitly set override fields win; unset fields never clobber the base.
// With the override record pointer-typed throughout, the required flag's
// special rule (any provided value wins, including false) falls out of the
// same nil check as everything else.
func (r *Resolver) effective(slot *schema.Slot, ov *schema.SlotOverride) *EffectiveField {
	f := &EffectiveField{
		SlotName:    slot.Name,
		Name:        naming.Camel(slot.Name),
		RangeName:   slot.Range,
		Multivalued: slot.Multivalued,
		Required:    slot.Required,
		Identifier:  slot.Identifier,
		Doc:         slot.Description,

		Pattern:            slot.Pattern,
		MinimumValue:       slot.MinimumValue,
		MaximumValue:       slot.MaximumValue,
		MinimumCardinality: slot.MinimumCardinality,
		MaximumCardinality: slot.MaximumCardinality,
		ExactCardinality:   slot.ExactCardinality,
		EqualsString:       slot.EqualsString,
		EqualsNumber:       slot.EqualsNumber,
		EqualsStringIn:     slot.EqualsStringIn,
	}
	presence := slot.ValuePresence

	if ov != nil {
		if ov.Range != nil {
			f.RangeName = *ov.Range
		}
		if ov.Multivalued != nil {
			f.Multivalued = *ov.Multivalued
		}
		if ov.Required != nil {
			f.Required = *ov.Required
		}
		if ov.Identifier != nil {
			f.Identifier = *ov.Identifier
		}
		if ov.Pattern != nil {
			f.Pattern = ov.Pattern
		}
		if ov.MinimumValue != nil {
			f.MinimumValue = ov.MinimumValue
		}
		if ov.MaximumValue != nil {
			f.MaximumValue = ov.MaximumValue
		}
		if ov.MinimumCardinality != nil {
			f.MinimumCardinality = ov.MinimumCardinality
		}
		if ov.MaximumCardinality != nil {
			f.MaximumCardinality = ov.MaximumCardinality
		}
		if ov.ExactCardinality != nil {
			f.ExactCardinality = ov.ExactCardinality
		}
		if ov.EqualsString != nil {
			f.EqualsString = ov.EqualsString
		}
		if ov.EqualsNumber != nil {
			f.EqualsNumber = ov.EqualsNumber
		}
		if len(ov.EqualsStringIn) > 0 {
			f.EqualsStringIn = ov.EqualsStringIn
		}
		if ov.ValuePresence != nil {
			presence = ov.ValuePresence
		}
	}

	f.ValuePresence = normalizePresence(presence)
	f.Optional = !f.Multivalued && !f.Required
	f.IsEnum = r.view.IsEnum(f.RangeName)
	f.BaseType = ScalaType(f.RangeName)
	f.Type, f.Default = wrapType(f.BaseType, f.Multivalued, f.Required)
	return f
}

// normalizePresence maps the value_presence attribute to PRESENT/ABSENT.
// The raw value may be a plain string, a tagged symbolic value, or an
// object-like mapping; any text containing the substrings PRESENT or ABSENT
// (case-insensitively) normalizes to that token, everything else passes
// through uppercased.
func normalizePresence(v any) string {
	if v == nil {
		return ""
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case map[string]any:
		if txt, ok := t["text"].(string); ok {
			s = txt
		} else if code, ok := t["code"].(string); ok {
			s = code
		} else {
			s = fmt.Sprint(t)
		}
	default:
		s = fmt.Sprint(t)
	}
	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(upper, "ABSENT"):
		return "ABSENT"
	case strings.Contains(upper, "PRESENT"):
		return "PRESENT"
	}
	return upper
}
