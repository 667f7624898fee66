package syntax

import (
	"path/filepath"
	"strings"
)

// MediaType classifies a source file by language flavor.
type MediaType int

// Supported media types.
const (
	MediaTypeUnknown MediaType = iota
	MediaTypeJavaScript
	MediaTypeJSX
	MediaTypeMjs
	MediaTypeCjs
	MediaTypeTypeScript
	MediaTypeMts
	MediaTypeCts
	MediaTypeDts
	MediaTypeTSX
)

var mediaTypeNames = map[MediaType]string{
	MediaTypeUnknown:    "unknown",
	MediaTypeJavaScript: "javascript",
	MediaTypeJSX:        "jsx",
	MediaTypeMjs:        "mjs",
	MediaTypeCjs:        "cjs",
	MediaTypeTypeScript: "typescript",
	MediaTypeMts:        "mts",
	MediaTypeCts:        "cts",
	MediaTypeDts:        "dts",
	MediaTypeTSX:        "tsx",
}

// String returns the lowercase name of the media type.
func (m MediaType) String() string {
	if name, ok := mediaTypeNames[m]; ok {
		return name
	}
	return "unknown"
}

// IsTypeScript reports whether the media type is a TypeScript flavor.
func (m MediaType) IsTypeScript() bool {
	switch m {
	case MediaTypeTypeScript, MediaTypeMts, MediaTypeCts, MediaTypeDts, MediaTypeTSX:
		return true
	default:
		return false
	}
}

// MediaTypeFromPath infers the media type from a file name.
func MediaTypeFromPath(path string) MediaType {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".d.ts"), strings.HasSuffix(base, ".d.mts"), strings.HasSuffix(base, ".d.cts"):
		return MediaTypeDts
	}
	switch filepath.Ext(base) {
	case ".js":
		return MediaTypeJavaScript
	case ".jsx":
		return MediaTypeJSX
	case ".mjs":
		return MediaTypeMjs
	case ".cjs":
		return MediaTypeCjs
	case ".ts":
		return MediaTypeTypeScript
	case ".mts":
		return MediaTypeMts
	case ".cts":
		return MediaTypeCts
	case ".tsx":
		return MediaTypeTSX
	default:
		return MediaTypeUnknown
	}
}

// ParseMediaType converts a name such as "tsx" or "javascript" to a MediaType.
// Returns MediaTypeUnknown and false for unrecognized names.
func ParseMediaType(name string) (MediaType, bool) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	for m, n := range mediaTypeNames {
		if n == name && m != MediaTypeUnknown {
			return m, true
		}
	}
	switch name {
	case "js":
		return MediaTypeJavaScript, true
	case "ts":
		return MediaTypeTypeScript, true
	}
	return MediaTypeUnknown, false
}

// SupportedExtensions lists the file extensions the parser understands.
func SupportedExtensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}
}
