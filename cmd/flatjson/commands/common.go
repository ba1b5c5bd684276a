// Package commands provides CLI command handlers for flatjson.
package commands

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/erraggy/flatjson/internal/cliutil"
	"github.com/erraggy/flatjson/value"
)

// Output format constants
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidFormats lists the accepted -format values.
var ValidFormats = []string{FormatJSON, FormatYAML, FormatText, FormatMsgpack}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// FormatInputPath returns a display-friendly path for the input document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatInputPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// MarshalFlat renders a flattened document in the given format. JSON is
// compact unless indent is set; the other formats ignore indent.
func MarshalFlat(flat *value.Map, format string, indent bool) ([]byte, error) {
	doc := value.Object(flat)
	switch format {
	case FormatJSON:
		if indent {
			return value.MarshalJSONIndent(doc, "", "  ")
		}
		return doc.MarshalJSON()
	case FormatYAML:
		return value.MarshalYAML(doc)
	case FormatMsgpack:
		return msgpack.Marshal(flat)
	case FormatText:
		return marshalText(flat), nil
	default:
		return nil, fmt.Errorf("invalid format for output: %s", format)
	}
}

// marshalText renders one "key  value" line per entry with the values
// aligned on display width, so wide runes in keys do not break the column.
func marshalText(flat *value.Map) []byte {
	width := 0
	for _, k := range flat.Keys() {
		width = max(width, runewidth.StringWidth(k))
	}

	var buf bytes.Buffer
	for k, v := range flat.All() {
		Writef(&buf, "%s  %s\n", runewidth.FillRight(k, width), v)
	}
	return buf.Bytes()
}
