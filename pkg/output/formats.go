package output

import "strings"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatXML  = "xml"
)

// Formats lists every supported format
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatTOML, FormatXML}

// ValidFormat reports whether format is supported. Matching ignores case.
func ValidFormat(format string) bool {
	format = strings.ToLower(format)
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
