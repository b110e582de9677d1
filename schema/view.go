package schema

import "fmt"

// View is a read-only handle over a loaded Document. It answers the queries
// the generator needs (stable-order enumeration, induced slots, union
// reverse lookup, normalized annotations) and memoizes derived lookups for
// the lifetime of the view. The underlying document is never mutated.
type View struct {
	doc *Document

	induced      map[string][]string
	unionParents map[string][]string
	anns         map[string]*ScalaAnnotation
}

// NewView wraps a loaded document.
func NewView(doc *Document) *View {
	return &View{
		doc:  doc,
		anns: map[string]*ScalaAnnotation{},
	}
}

// SchemaName returns the schema's declared name.
func (v *View) SchemaName() string { return v.doc.Name }

// ClassNames returns all class names in declaration order.
func (v *View) ClassNames() []string { return v.doc.ClassOrder }

// EnumNames returns all enum names in declaration order.
func (v *View) EnumNames() []string { return v.doc.EnumOrder }

// TypeNames returns all type names in declaration order.
func (v *View) TypeNames() []string { return v.doc.TypeOrder }

// Class looks up a class definition by name.
func (v *View) Class(name string) (*Class, bool) {
	c, ok := v.doc.Classes[name]
	return c, ok
}

// Slot looks up a slot definition by name.
func (v *View) Slot(name string) (*Slot, bool) {
	s, ok := v.doc.Slots[name]
	return s, ok
}

// Enum looks up an enum definition by name.
func (v *View) Enum(name string) (*Enum, bool) {
	e, ok := v.doc.Enums[name]
	return e, ok
}

// Type looks up a type definition by name.
func (v *View) Type(name string) (*TypeDef, bool) {
	t, ok := v.doc.Types[name]
	return t, ok
}

// IsEnum reports whether a slot range names an enumeration.
func (v *View) IsEnum(rangeName string) bool {
	_, ok := v.doc.Enums[rangeName]
	return ok
}

// InducedSlotNames returns a class's own and inherited slot names: the is_a
// chain first (root-most ancestors leading), then mixin contributions, then
// the class's own slots, deduplicated keeping the first occurrence.
func (v *View) InducedSlotNames(className string) ([]string, error) {
	if v.induced == nil {
		v.induced = map[string][]string{}
	}
	if cached, ok := v.induced[className]; ok {
		return cached, nil
	}
	raw, err := v.induce(className, map[string]bool{})
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	v.induced[className] = out
	return out, nil
}

func (v *View) induce(className string, visiting map[string]bool) ([]string, error) {
	cls, ok := v.doc.Classes[className]
	if !ok {
		return nil, fmt.Errorf("schema: unknown class %q", className)
	}
	if visiting[className] {
		return nil, nil
	}
	visiting[className] = true
	var out []string
	if cls.IsA != "" {
		parent, err := v.induce(cls.IsA, visiting)
		if err != nil {
			return nil, fmt.Errorf("schema: class %q: %w", className, err)
		}
		out = append(out, parent...)
	}
	for _, mixin := range cls.Mixins {
		mixed, err := v.induce(mixin, visiting)
		if err != nil {
			return nil, fmt.Errorf("schema: class %q: %w", className, err)
		}
		out = append(out, mixed...)
	}
	out = append(out, cls.Slots...)
	return out, nil
}

// Overrides returns a class's slot_usage table (may be nil).
func (v *View) Overrides(className string) map[string]*SlotOverride {
	cls, ok := v.doc.Classes[className]
	if !ok {
		return nil
	}
	return cls.SlotUsage
}

// UnionParents returns every class whose union_of contains the given class,
// in document order. This is a whole-schema property: the full reverse scan
// runs once per view and is cached.
func (v *View) UnionParents(className string) []string {
	if v.unionParents == nil {
		v.unionParents = map[string][]string{}
		for _, name := range v.doc.ClassOrder {
			for _, member := range v.doc.Classes[name].UnionOf {
				v.unionParents[member] = append(v.unionParents[member], name)
			}
		}
	}
	return v.unionParents[className]
}

// ScalaAnnotation returns the normalized "scala" annotation of a class, or
// nil when the class carries none.
func (v *View) ScalaAnnotation(className string) (*ScalaAnnotation, error) {
	if ann, ok := v.anns[className]; ok {
		return ann, nil
	}
	cls, ok := v.doc.Classes[className]
	if !ok {
		return nil, fmt.Errorf("schema: unknown class %q", className)
	}
	ann, err := scalaAnnotation(cls)
	if err != nil {
		return nil, err
	}
	v.anns[className] = ann
	return ann, nil
}
