package skemagen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/skemagen/internal/lower"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnknownClass  = "unknown_class"
	CodeUnknownSlot   = "unknown_slot"
	CodeBadAnnotation = "bad_annotation"
	CodeUnionShape    = "union_shape"
	CodeBadCodecMode  = "bad_codec_mode"
	CodeRenderError   = "render_error"
	CodeSchemaError   = "schema_error"
)

// Issue represents a single compilation failure. Schema-shape errors are
// fatal to the whole run; they are surfaced, never recovered.
type Issue struct {
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a collection of compilation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s: %s", it.Code, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// classify wraps a lowering or rendering error into Issues, mapping the
// core's sentinel errors to stable codes.
func classify(err error) Issues {
	code := CodeSchemaError
	switch {
	case errors.Is(err, lower.ErrUnknownClass):
		code = CodeUnknownClass
	case errors.Is(err, lower.ErrUnknownSlot):
		code = CodeUnknownSlot
	case errors.Is(err, lower.ErrBadAnnotation):
		code = CodeBadAnnotation
	case errors.Is(err, lower.ErrUnionShape):
		code = CodeUnionShape
	}
	return Issues{{Code: code, Message: err.Error(), Cause: err}}
}
