package value

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// SourceFormat is the textual format a document was decoded from.
type SourceFormat string

const (
	// SourceFormatJSON is JSON text.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML is YAML text.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatUnknown means the format could not be determined.
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseSourceFormat maps a user-supplied name to a SourceFormat.
// The empty string and "auto" map to SourceFormatUnknown, which asks
// Decode to detect the format.
func ParseSourceFormat(name string) (SourceFormat, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return SourceFormatUnknown, nil
	case "json":
		return SourceFormatJSON, nil
	case "yaml", "yml":
		return SourceFormatYAML, nil
	default:
		return SourceFormatUnknown, fmt.Errorf("value: unknown source format %q", name)
	}
}

// DetectFormatFromPath detects the source format from a file extension.
func DetectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// DetectFormatFromContent guesses the format from the first non-blank byte.
// JSON documents handled here start with '{' or '['; anything else is
// treated as YAML, which is a superset of JSON scalars.
func DetectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
