package schema

// ConstraintSet carries the optional constraint attributes a slot definition,
// a per-class slot_usage override, or a rule slot_condition may set. All
// fields are pointer-typed (or nil-able) so "unset" stays distinguishable
// from a zero value; overrides are sparse and must never clobber base values
// they do not mention.
type ConstraintSet struct {
	Pattern            *string  `yaml:"pattern"`
	MinimumValue       *float64 `yaml:"minimum_value"`
	MaximumValue       *float64 `yaml:"maximum_value"`
	MinimumCardinality *int     `yaml:"minimum_cardinality"`
	MaximumCardinality *int     `yaml:"maximum_cardinality"`
	ExactCardinality   *int     `yaml:"exact_cardinality"`
	EqualsString       *string  `yaml:"equals_string"`
	EqualsNumber       *float64 `yaml:"equals_number"`
	EqualsStringIn     []string `yaml:"equals_string_in"`
	// ValuePresence arrives as a free-form scalar, a tagged symbolic value or
	// a mapping depending on the source format; it is normalized downstream.
	ValuePresence any `yaml:"value_presence"`
}

// Slot is a named, typed attribute definition reusable across classes.
type Slot struct {
	Name          string `yaml:"-"`
	Description   string `yaml:"description"`
	Range         string `yaml:"range"`
	Multivalued   bool   `yaml:"multivalued"`
	Required      bool   `yaml:"required"`
	Identifier    bool   `yaml:"identifier"`
	ConstraintSet `yaml:",inline"`
}

// SlotOverride is a class-level slot_usage entry. Every field is optional;
// only explicitly set fields take precedence over the base slot.
type SlotOverride struct {
	Range         *string `yaml:"range"`
	Multivalued   *bool   `yaml:"multivalued"`
	Required      *bool   `yaml:"required"`
	Identifier    *bool   `yaml:"identifier"`
	ConstraintSet `yaml:",inline"`
}

// NamedCondition is one slot_conditions entry of a rule expression, in
// declaration order.
type NamedCondition struct {
	Slot string
	ConstraintSet
}

// Expression is a boolean-combinator tree over slot conditions.
type Expression struct {
	SlotConditions []NamedCondition
	AnyOf          []Expression
	AllOf          []Expression
	NoneOf         []Expression
	ExactlyOneOf   []Expression
}

// Rule is an imperative validation rule attached to a class. A deactivated
// rule is excluded entirely from lowering.
type Rule struct {
	Description    string      `yaml:"description"`
	Preconditions  *Expression `yaml:"preconditions"`
	Postconditions *Expression `yaml:"postconditions"`
	Elseconditions *Expression `yaml:"elseconditions"`
	Bidirectional  bool        `yaml:"bidirectional"`
	OpenWorld      bool        `yaml:"open_world"`
	Deactivated    bool        `yaml:"deactivated"`
}

// UniqueKey names a group of slots that uniquely identifies an instance.
// Surfaced as read-only metadata; the generator emits no code for it.
type UniqueKey struct {
	Name  string
	Slots []string `yaml:"unique_key_slots"`
}

// Class is a named aggregate of slots with optional single inheritance,
// mixins and union/disjointness declarations.
type Class struct {
	Name                        string                   `yaml:"-"`
	Description                 string                   `yaml:"description"`
	IsA                         string                   `yaml:"is_a"`
	Mixins                      []string                 `yaml:"mixins"`
	Abstract                    bool                     `yaml:"abstract"`
	Mixin                       bool                     `yaml:"mixin"`
	UnionOf                     []string                 `yaml:"union_of"`
	ChildrenAreMutuallyDisjoint bool                     `yaml:"children_are_mutually_disjoint"`
	Slots                       []string                 `yaml:"slots"`
	SlotUsage                   map[string]*SlotOverride `yaml:"slot_usage"`
	Rules                       []Rule                   `yaml:"rules"`
	Annotations                 map[string]any           `yaml:"annotations"`
	UniqueKeys                  []UniqueKey              `yaml:"-"`
}

// PermissibleValue is one member of an enumeration.
type PermissibleValue struct {
	Text        string
	Description string
	Meaning     string
}

// Enum is an ordered set of permissible values.
type Enum struct {
	Name        string
	Description string
	Values      []PermissibleValue
}

// TypeDef declares a named scalar type, optionally aliasing another type.
type TypeDef struct {
	Name        string `yaml:"-"`
	TypeOf      string `yaml:"typeof"`
	Description string `yaml:"description"`
}

// Document is a loaded schema. It is read-only after loading; the generator
// only derives new structures alongside it.
type Document struct {
	ID          string
	Name        string
	Description string

	Classes map[string]*Class
	Slots   map[string]*Slot
	Enums   map[string]*Enum
	Types   map[string]*TypeDef

	// Declaration order of each section, so output stays stable.
	ClassOrder []string
	SlotOrder  []string
	EnumOrder  []string
	TypeOrder  []string
}
