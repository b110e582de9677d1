package lower

import (
	"fmt"

	"github.com/reoring/skemagen/internal/model"
	"github.com/reoring/skemagen/internal/naming"
	"github.com/reoring/skemagen/schema"
)

// Options configures one lowering run.
type Options struct {
	// Package is the target namespace; empty derives it from the schema name.
	Package string
	Codecs  model.CodecMode
}

// Lower compiles a schema view into the target type model: the primary
// declaration unit, plus a codecs unit in separate mode. Declarations are
// ordered as aliases, enums, interfaces, records. The union reverse lookup
// has already run (through the view) before any record's supertype list is
// built, so rendering is single-pass and patch-free.
func Lower(view *schema.View, opts Options) (*model.Unit, *model.CodecUnit, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = naming.PackageFromSchemaName(view.SchemaName())
	}
	unit := &model.Unit{Package: pkg, Codecs: opts.Codecs}

	resolver := NewResolver(view)
	extractor := NewExtractor(resolver)

	for _, name := range view.TypeNames() {
		td, _ := view.Type(name)
		if td.TypeOf == "" {
			continue
		}
		unit.Aliases = append(unit.Aliases, model.Alias{
			Name: naming.Pascal(name),
			Type: ScalaType(td.TypeOf),
			Doc:  td.Description,
		})
	}

	for _, name := range view.EnumNames() {
		en, _ := view.Enum(name)
		me := model.Enum{
			Name:  naming.Pascal(name),
			Doc:   en.Description,
			Codec: opts.Codecs == model.CodecInline,
		}
		for _, pv := range en.Values {
			me.Members = append(me.Members, model.EnumMember{
				Name:    naming.Pascal(pv.Text),
				Literal: pv.Text,
				Doc:     pv.Description,
			})
		}
		unit.Enums = append(unit.Enums, me)
	}

	usedBase := map[string]bool{}

	for _, name := range view.ClassNames() {
		cls, _ := view.Class(name)
		if len(cls.UnionOf) > 0 {
			// A union class is a pure sum type.
			if len(cls.Slots) > 0 {
				return nil, nil, fmt.Errorf("%w: %q", ErrUnionShape, name)
			}
			for _, member := range cls.UnionOf {
				if _, ok := view.Class(member); !ok {
					return nil, nil, fmt.Errorf("class %q: union_of references %w %q", name, ErrUnknownClass, member)
				}
			}
		}
		ann, err := view.ScalaAnnotation(name)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrBadAnnotation, err)
		}
		role := Classify(cls, ann)
		supers, err := Supertypes(view, cls)
		if err != nil {
			return nil, nil, err
		}
		fields, err := resolver.ClassFields(name)
		if err != nil {
			return nil, nil, err
		}

		if role.Interface {
			iface := model.Interface{
				Name:       naming.Pascal(name),
				Doc:        cls.Description,
				Sealed:     role.Sealed,
				Supertypes: supers,
			}
			for _, f := range fields {
				iface.Fields = append(iface.Fields, model.AbstractField{Name: f.Name, Type: f.Type})
			}
			if ann != nil {
				iface.Operations = lowerOperations(ann.Operations)
			}
			unit.Interfaces = append(unit.Interfaces, iface)
			continue
		}

		rec := model.Record{
			Name:       naming.Pascal(name),
			Doc:        cls.Description,
			Supertypes: supers,
		}
		for _, f := range fields {
			rec.Fields = append(rec.Fields, model.Field{Name: f.Name, Type: f.Type, Default: f.Default})
			usedBase[f.BaseType] = true
		}

		rules, err := extractor.ClassRules(cls)
		if err != nil {
			return nil, nil, err
		}
		checks, methods := BuildValidation(fields, rules)
		validated := len(checks) > 0 || len(methods) > 0

		var codec *model.RecordCodec
		if opts.Codecs == model.CodecInline {
			codec = &model.RecordCodec{Validated: validated}
		}
		if validated || codec != nil {
			rec.Companion = &model.Companion{Checks: checks, Rules: methods, Codec: codec}
		}
		unit.Records = append(unit.Records, rec)
	}

	switch opts.Codecs {
	case model.CodecInline:
		unit.Customs = CustomCodecs(usedBase)
		return unit, nil, nil
	case model.CodecSeparate:
		cu := &model.CodecUnit{Package: pkg, Customs: CustomCodecs(usedBase)}
		cu.Enums = append(cu.Enums, unit.Enums...)
		for _, rec := range unit.Records {
			cu.Records = append(cu.Records, model.CodecEntry{
				Name:      rec.Name,
				Validated: rec.Companion != nil && (len(rec.Companion.Checks) > 0 || len(rec.Companion.Rules) > 0),
			})
		}
		return unit, cu, nil
	}
	return unit, nil, nil
}

// lowerOperations shapes annotated operations for the target model:
// multivalued returns wrap in List, non-required in Option, a missing range
// maps to Unit. Bodies are forwarded verbatim.
func lowerOperations(ops []schema.Operation) []model.Operation {
	out := make([]model.Operation, 0, len(ops))
	for _, op := range ops {
		ret := "Unit"
		if op.Range != "" {
			ret = ScalaType(op.Range)
			if op.Multivalued {
				ret = "List[" + ret + "]"
			} else if !op.IsRequired() {
				ret = "Option[" + ret + "]"
			}
		}
		// An operation with replacement code renders concrete no matter how
		// is_abstract is flagged; implementors could not compile otherwise.
		mo := model.Operation{
			Name:       op.Name,
			ReturnType: ret,
			Body:       op.Body,
			Abstract:   op.Body == "",
		}
		for _, p := range op.Parameters {
			mo.Params = append(mo.Params, model.OperationParam{
				Name: naming.Camel(p.Name),
				Type: ScalaType(p.Range),
			})
		}
		out = append(out, mo)
	}
	return out
}
