// Package lower is the semantic core of the generator: it resolves
// effective per-field constraints, classifies classes into interface or
// record constructs, linearizes supertype orderings, extracts rule
// conditions, and synthesizes validator and codec declarations into the
// target type model. This package is internal and not part of the public
// API.
package lower

import (
	"strconv"
	"strings"

	"github.com/reoring/skemagen/internal/naming"
)

// scalaTypes maps known schema scalar names to Scala type names.
var scalaTypes = map[string]string{
	"string":           "String",
	"integer":          "Int",
	"float":            "Double",
	"double":           "Double",
	"boolean":          "Boolean",
	"decimal":          "BigDecimal",
	"date":             "java.time.LocalDate",
	"datetime":         "java.time.Instant",
	"uri":              "java.net.URI",
	"uriorcurie":       "java.net.URI",
	"objectidentifier": "java.net.URI",
	"ncname":           "String",
	"nodeidentifier":   "String",
}

// ScalaType maps a schema range name to a Scala type name. Unknown names
// are references to declared classes or enums and pass through in Pascal
// form; an absent range resolves to Any (a defined fallback, not an error).
func ScalaType(rangeName string) string {
	if rangeName == "" {
		return "Any"
	}
	if t, ok := scalaTypes[strings.ToLower(rangeName)]; ok {
		return t
	}
	return naming.Pascal(rangeName)
}

// wrapType applies multiplicity to a resolved base type: multivalued fields
// become a List with an empty default, optional fields an Option defaulting
// to None, required fields stay bare with no default.
func wrapType(base string, multivalued, required bool) (typ, def string) {
	switch {
	case multivalued:
		return "List[" + base + "]", "List.empty"
	case !required:
		return "Option[" + base + "]", "None"
	default:
		return base, ""
	}
}

// formatNumber renders a schema numeric value without a trailing ".0" so
// integers print naturally in generated code and messages.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
