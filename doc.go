package skemagen

// Package skemagen compiles LinkML schema documents into Scala 3 source:
//
// - Case classes, traits, sealed hierarchies and enums lowered from classes,
//   mixins, union_of declarations and enumerations
// - Companion-object validators accumulating constraint and rule violations
//   as List[String] (no exceptions in generated code)
// - Optional circe codecs in inline or separate placement, composing
//   validated decoding via emap
//
// Design policy:
// - Keep only public APIs in the root package; put the lowering core, target
//   model and renderer under internal/.
// - Place the schema information model, YAML loader and read-only view under
//   schema/, and the CLI under cmd/skemagen.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  doc, err := schema.Load("model.yaml")
//  res, err := skemagen.Generate(schema.NewView(doc), skemagen.Options{Codecs: skemagen.CodecInline})
//  os.WriteFile("Model.scala", res.Model, 0o644)
