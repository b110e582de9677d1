// Package naming converts LinkML snake_case names into the Scala-facing
// casings used throughout the generator. This package is internal and not
// part of the public API.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.English, cases.NoLower)

// Pascal converts a snake_case schema name to PascalCase (NamedThing).
// Names that are already PascalCase pass through unchanged.
func Pascal(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		b.WriteString(titler.String(part))
	}
	return b.String()
}

// Camel converts a snake_case schema name to lowerCamelCase (zipCode).
// The first segment is kept as written so already-camelCase names survive.
func Camel(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() == 0 && i == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(titler.String(part))
	}
	return b.String()
}

// LowerFirst lowercases the leading rune (Widget -> widget). Used for the
// value names of generated codecs.
func LowerFirst(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// Method derives a lowerCamel method name from free text such as a rule
// description ("Adults must be active" -> adultsMustBeActive). Characters
// outside [A-Za-z0-9] separate words; a leading digit is prefixed with
// "rule" so the result stays a valid identifier.
func Method(description string) string {
	words := strings.FieldsFunc(description, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "rule"
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(titler.String(strings.ToLower(w)))
	}
	out := b.String()
	if out != "" && unicode.IsDigit(rune(out[0])) {
		out = "rule" + titler.String(out)
	}
	return out
}

// PackageFromSchemaName derives a default Scala package from a schema name
// by mapping "-" and "_" to ".", the same convention the schema ecosystem
// uses for module ids ("my-model" -> "my.model").
func PackageFromSchemaName(name string) string {
	replaced := strings.NewReplacer("-", ".", "_", ".").Replace(name)
	return strings.Trim(replaced, ".")
}
