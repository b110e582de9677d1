package lower

import "github.com/reoring/skemagen/internal/model"

// customCodecCatalog lists the scalar target types lacking native codec
// support, in the fixed order their shared codecs are emitted.
var customCodecCatalog = []model.CustomCodec{
	{ValueName: "uri", Type: "java.net.URI", ParseExpr: "new java.net.URI(s)"},
	{ValueName: "localDate", Type: "java.time.LocalDate", ParseExpr: "java.time.LocalDate.parse(s)"},
	{ValueName: "instant", Type: "java.time.Instant", ParseExpr: "java.time.Instant.parse(s)"},
}

// CustomCodecs returns the shared scalar codecs the compilation needs: one
// per type at most, no matter how many fields use it.
func CustomCodecs(usedBaseTypes map[string]bool) []model.CustomCodec {
	var out []model.CustomCodec
	for _, c := range customCodecCatalog {
		if usedBaseTypes[c.Type] {
			out = append(out, c)
		}
	}
	return out
}
