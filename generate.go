package skemagen

import (
	"fmt"

	"github.com/reoring/skemagen/internal/lower"
	"github.com/reoring/skemagen/internal/model"
	"github.com/reoring/skemagen/internal/render"
	"github.com/reoring/skemagen/schema"
)

// CodecMode selects serialization codec generation: disabled, attached to
// each type's companion, or collected into one separate unit.
type CodecMode int

const (
	CodecNone CodecMode = iota
	CodecInline
	CodecSeparate
)

func (m CodecMode) String() string {
	switch m {
	case CodecInline:
		return "inline"
	case CodecSeparate:
		return "separate"
	default:
		return "none"
	}
}

// ParseCodecMode parses a codec mode selector. The empty string means none.
func ParseCodecMode(s string) (CodecMode, error) {
	switch s {
	case "", "none":
		return CodecNone, nil
	case "inline":
		return CodecInline, nil
	case "separate":
		return CodecSeparate, nil
	}
	return CodecNone, Issues{{Code: CodeBadCodecMode, Message: fmt.Sprintf("unknown codec mode %q (want none, inline or separate)", s)}}
}

func (m CodecMode) lowered() model.CodecMode {
	switch m {
	case CodecInline:
		return model.CodecInline
	case CodecSeparate:
		return model.CodecSeparate
	default:
		return model.CodecNone
	}
}

// Options configures one generation run.
type Options struct {
	// Package is the Scala package of the output; empty derives it from the
	// schema name.
	Package string
	Codecs  CodecMode
}

// Result holds the rendered output units. Codecs is nil except in
// CodecSeparate mode, where it shares Model's package and references its
// types by naming convention only.
type Result struct {
	Model  []byte
	Codecs []byte
}

// Generate compiles a schema view into Scala 3 source. The whole pipeline
// is synchronous and deterministic: one schema, one pass, no mutation of
// the view. Any schema-shape error aborts the run with Issues and no
// partial output.
func Generate(view *schema.View, opt Options) (*Result, error) {
	unit, codecUnit, err := lower.Lower(view, lower.Options{
		Package: opt.Package,
		Codecs:  opt.Codecs.lowered(),
	})
	if err != nil {
		return nil, classify(err)
	}
	src, err := render.Unit(unit)
	if err != nil {
		return nil, Issues{{Code: CodeRenderError, Message: err.Error(), Cause: err}}
	}
	res := &Result{Model: src}
	if codecUnit != nil {
		codecSrc, err := render.Codecs(codecUnit)
		if err != nil {
			return nil, Issues{{Code: CodeRenderError, Message: err.Error(), Cause: err}}
		}
		res.Codecs = codecSrc
	}
	return res, nil
}
