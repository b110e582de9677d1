// Package render turns the target type model into Scala 3 source text. It
// owns all literal syntax, indentation, and comment formatting; the model
// owns structure. Templates are embedded, the way schema-driven generators
// in this ecosystem ship their output shapes.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/reoring/skemagen/internal/model"
	"github.com/reoring/skemagen/internal/naming"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var funcs = template.FuncMap{
	"join":    strings.Join,
	"lower":   naming.LowerFirst,
	"quote":   strconv.Quote,
	"extends": extendsClause,
	"params":  paramList,
	"add":     func(a, b int) int { return a + b },
}

var templates = template.Must(
	template.New("scala").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl"),
)

// Unit renders the primary declaration unit.
func Unit(u *model.Unit) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "unit.scala.tmpl", u); err != nil {
		return nil, fmt.Errorf("render unit: %w", err)
	}
	return buf.Bytes(), nil
}

// Codecs renders the separate-mode codecs unit.
func Codecs(cu *model.CodecUnit) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "codecs.scala.tmpl", cu); err != nil {
		return nil, fmt.Errorf("render codecs: %w", err)
	}
	return buf.Bytes(), nil
}

// extendsClause renders a complete supertype list: the first entry is the
// primary extends relation, the rest secondary with-relations. An empty
// list renders nothing at all.
func extendsClause(supers []string) string {
	if len(supers) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(" extends ")
	b.WriteString(supers[0])
	for _, s := range supers[1:] {
		b.WriteString(" with ")
		b.WriteString(s)
	}
	return b.String()
}

func paramList(params []model.OperationParam) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + ": " + p.Type
	}
	return strings.Join(parts, ", ")
}
