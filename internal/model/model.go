// Package model defines the target type model produced by the lowering
// stage and consumed by the renderer. This package is internal and not part
// of the public API.
//
// The model is built once per compilation and is immutable after assembly;
// the renderer owns all literal syntax, the model owns structure only.
package model

// CodecMode selects how serialization codecs are emitted.
type CodecMode int

const (
	CodecNone CodecMode = iota
	CodecInline
	CodecSeparate
)

// Alias is a rendered type alias (type UserId = String).
type Alias struct {
	Name string
	Type string
	Doc  string
}

// EnumMember is one member of a generated enumeration. Literal keeps the
// schema's original text for codec round-trips.
type EnumMember struct {
	Name    string
	Literal string
	Doc     string
}

// Enum is a generated algebraic enumeration.
type Enum struct {
	Name    string
	Doc     string
	Members []EnumMember
	// Codec attaches a string-mapping decoder/encoder pair in inline mode.
	Codec bool
}

// AbstractField is a field an interface requires its implementors to carry.
type AbstractField struct {
	Name string
	Type string
}

// OperationParam is one parameter of an interface operation.
type OperationParam struct {
	Name string
	Type string
}

// Operation is a declared interface method. Body is caller-provided
// replacement code forwarded verbatim; an abstract operation has none.
type Operation struct {
	Name       string
	Params     []OperationParam
	ReturnType string
	Body       string
	Abstract   bool
}

// Interface is an interface-like declaration (trait). Supertypes lists the
// complete linearized supertype names; the first renders as the primary
// extends relation, the rest as secondary relations.
type Interface struct {
	Name       string
	Doc        string
	Sealed     bool
	Supertypes []string
	Fields     []AbstractField
	Operations []Operation
}

// Field is a resolved record field with its wrapped type and default.
type Field struct {
	Name    string
	Type    string
	Default string
}

// Check is a single validation check: a boolean expression over an instance
// and the message reported when the expression does not hold.
type Check struct {
	Expr    string
	Message string
}

// RuleMethod is a named rule check generated on a record companion. PreExprs
// are the precondition expressions (conjoined); Post and Else accumulate
// messages like Check does.
type RuleMethod struct {
	Name      string
	Doc       string
	PreExprs  []string
	Post      []Check
	Else      []Check
	OpenWorld bool
}

// RecordCodec marks a record as codec-bearing. Validated selects the
// decode-then-filter composition over the plain derived decoder.
type RecordCodec struct {
	Validated bool
}

// Companion is the validator/codec companion of a record. It exists when
// the record has at least one check, one rule method, or a codec.
type Companion struct {
	Checks []Check
	Rules  []RuleMethod
	Codec  *RecordCodec
}

// Record is a record-like declaration (case class).
type Record struct {
	Name       string
	Doc        string
	Fields     []Field
	Supertypes []string
	Companion  *Companion
}

// CustomCodec is a shared scalar codec for a target type without native
// codec support, generated at most once per compilation.
type CustomCodec struct {
	// ValueName is the lower-camel stem of the generated pair
	// (uri -> uriDecoder/uriEncoder).
	ValueName string
	// Type is the fully qualified target type (java.net.URI).
	Type string
	// ParseExpr parses the string s into the target type (new java.net.URI(s)).
	ParseExpr string
}

// CodecEntry is one record's slot in the separate codecs unit.
type CodecEntry struct {
	Name      string
	Validated bool
}

// CodecUnit is the separate-mode codecs output: all codecs of a compilation
// keyed by lower-camel type name, sharing the primary unit's package with
// no dependency back into it.
type CodecUnit struct {
	Package string
	Customs []CustomCodec
	Enums   []Enum
	Records []CodecEntry
}

// Unit is the primary declaration unit handed to the renderer, ordered as
// aliases, enums, interfaces, records.
type Unit struct {
	Package    string
	Aliases    []Alias
	Enums      []Enum
	Interfaces []Interface
	Records    []Record
	// Customs is populated in inline mode when some field uses a scalar type
	// lacking native codec support.
	Customs []CustomCodec
	// Codecs is the mode the unit was assembled under; the renderer uses it
	// to decide imports and companion content.
	Codecs CodecMode
}

// Inline reports whether the unit was assembled with inline codecs.
func (u *Unit) Inline() bool { return u.Codecs == CodecInline }

// HasValidation reports whether the companion carries a validate function
// (field checks or rule methods), as opposed to being codec-only.
func (c *Companion) HasValidation() bool {
	return len(c.Checks) > 0 || len(c.Rules) > 0
}
