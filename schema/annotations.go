package schema

import (
	"fmt"

	gojson "github.com/goccy/go-json"
)

// OperationParam is one parameter of an annotated operation.
type OperationParam struct {
	Name         string `json:"name"`
	Range        string `json:"range"`
	DefaultValue string `json:"default_value"`
}

// Operation describes a method the generator adds to an interface. Required
// and Abstract default to true when the annotation leaves them unset.
type Operation struct {
	Name        string           `json:"name"`
	Parameters  []OperationParam `json:"parameters"`
	Range       string           `json:"range"`
	Multivalued bool             `json:"multivalued"`
	Required    *bool            `json:"required"`
	Abstract    *bool            `json:"is_abstract"`
	Body        string           `json:"body"`
}

// IsRequired reports whether the operation's return value is required.
func (o Operation) IsRequired() bool { return o.Required == nil || *o.Required }

// IsAbstract reports whether the operation is declared without a body.
func (o Operation) IsAbstract() bool { return o.Abstract == nil || *o.Abstract }

// ScalaAnnotation is the normalized form of a class's "scala" annotation:
// an interface flag plus an ordered operation list. Raw annotation values
// arrive as a JSON string, a YAML mapping, or a {tag, value} wrapper
// depending on the source; everything downstream of this package sees only
// this one structure.
type ScalaAnnotation struct {
	IsInterface     bool        `json:"is_interface"`
	CompanionObject bool        `json:"companion_object"`
	Operations      []Operation `json:"operations"`
}

func scalaAnnotation(cls *Class) (*ScalaAnnotation, error) {
	raw, ok := cls.Annotations["scala"]
	if !ok || raw == nil {
		return nil, nil
	}
	// Unwrap {tag: scala, value: ...} wrappers.
	if m, ok := raw.(map[string]any); ok {
		if v, has := m["value"]; has {
			raw = v
		}
	}
	var payload []byte
	switch v := raw.(type) {
	case string:
		payload = []byte(v)
	default:
		// Mapping form: one JSON round trip normalizes it.
		b, err := gojson.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("schema: class %s: scala annotation: %w", cls.Name, err)
		}
		payload = b
	}
	var ann ScalaAnnotation
	if err := gojson.Unmarshal(payload, &ann); err != nil {
		return nil, fmt.Errorf("schema: class %s: scala annotation: %w", cls.Name, err)
	}
	return &ann, nil
}
