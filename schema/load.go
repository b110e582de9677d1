package schema

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Load reads a schema document from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a schema document from YAML bytes. Section order (classes,
// slots, enums, types, permissible values) is preserved so generated output
// is stable across runs.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, nil
}

func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schema document is not a mapping")
	}
	d.Classes = map[string]*Class{}
	d.Slots = map[string]*Slot{}
	d.Enums = map[string]*Enum{}
	d.Types = map[string]*TypeDef{}

	return eachPair(node, func(key string, val *yaml.Node) error {
		switch key {
		case "id":
			d.ID = val.Value
		case "name":
			d.Name = val.Value
		case "description":
			d.Description = val.Value
		case "classes":
			return eachPair(val, func(name string, body *yaml.Node) error {
				cls := &Class{}
				if body.Kind == yaml.MappingNode {
					if err := body.Decode(cls); err != nil {
						return fmt.Errorf("class %s: %w", name, err)
					}
				}
				cls.Name = name
				d.Classes[name] = cls
				d.ClassOrder = append(d.ClassOrder, name)
				return nil
			})
		case "slots":
			return eachPair(val, func(name string, body *yaml.Node) error {
				slot := &Slot{}
				if body.Kind == yaml.MappingNode {
					if err := body.Decode(slot); err != nil {
						return fmt.Errorf("slot %s: %w", name, err)
					}
				}
				slot.Name = name
				d.Slots[name] = slot
				d.SlotOrder = append(d.SlotOrder, name)
				return nil
			})
		case "enums":
			return eachPair(val, func(name string, body *yaml.Node) error {
				enum := &Enum{}
				if body.Kind == yaml.MappingNode {
					if err := body.Decode(enum); err != nil {
						return fmt.Errorf("enum %s: %w", name, err)
					}
				}
				enum.Name = name
				d.Enums[name] = enum
				d.EnumOrder = append(d.EnumOrder, name)
				return nil
			})
		case "types":
			return eachPair(val, func(name string, body *yaml.Node) error {
				td := &TypeDef{}
				if body.Kind == yaml.MappingNode {
					if err := body.Decode(td); err != nil {
						return fmt.Errorf("type %s: %w", name, err)
					}
				}
				td.Name = name
				d.Types[name] = td
				d.TypeOrder = append(d.TypeOrder, name)
				return nil
			})
		}
		// Other document metadata (prefixes, imports, default_range, ...) is
		// not consumed by the generator.
		return nil
	})
}

func (c *Class) UnmarshalYAML(node *yaml.Node) error {
	type classAlias Class
	var shadow struct {
		classAlias `yaml:",inline"`
		UniqueKeys map[string]struct {
			Slots []string `yaml:"unique_key_slots"`
		} `yaml:"unique_keys"`
	}
	if err := node.Decode(&shadow); err != nil {
		return err
	}
	*c = Class(shadow.classAlias)
	if len(shadow.UniqueKeys) > 0 {
		names := make([]string, 0, len(shadow.UniqueKeys))
		for name := range shadow.UniqueKeys {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c.UniqueKeys = append(c.UniqueKeys, UniqueKey{Name: name, Slots: shadow.UniqueKeys[name].Slots})
		}
	}
	return nil
}

func (e *Enum) UnmarshalYAML(node *yaml.Node) error {
	return eachPair(node, func(key string, val *yaml.Node) error {
		switch key {
		case "description":
			e.Description = val.Value
		case "permissible_values":
			return eachPair(val, func(text string, body *yaml.Node) error {
				pv := PermissibleValue{Text: text}
				if body.Kind == yaml.MappingNode {
					var meta struct {
						Description string `yaml:"description"`
						Meaning     string `yaml:"meaning"`
					}
					if err := body.Decode(&meta); err != nil {
						return fmt.Errorf("permissible value %s: %w", text, err)
					}
					pv.Description = meta.Description
					pv.Meaning = meta.Meaning
				}
				e.Values = append(e.Values, pv)
				return nil
			})
		}
		return nil
	})
}

func (e *Expression) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("rule expression is not a mapping")
	}
	return eachPair(node, func(key string, val *yaml.Node) error {
		switch key {
		case "slot_conditions":
			return eachPair(val, func(slot string, body *yaml.Node) error {
				nc := NamedCondition{Slot: slot}
				if body.Kind == yaml.MappingNode {
					if err := body.Decode(&nc.ConstraintSet); err != nil {
						return fmt.Errorf("slot condition %s: %w", slot, err)
					}
				}
				e.SlotConditions = append(e.SlotConditions, nc)
				return nil
			})
		case "any_of":
			return val.Decode(&e.AnyOf)
		case "all_of":
			return val.Decode(&e.AllOf)
		case "none_of":
			return val.Decode(&e.NoneOf)
		case "exactly_one_of":
			return val.Decode(&e.ExactlyOneOf)
		}
		return nil
	})
}

// eachPair walks a YAML mapping node in declaration order. Non-mapping nodes
// (including nulls) are skipped silently.
func eachPair(node *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
