// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/flatjson/internal/fileutil"
	"github.com/erraggy/flatjson/value"
)

// PersonJSON is a small document mixing nested objects and a scalar array.
const PersonJSON = `{
  "name": "John Doe",
  "age": 43,
  "address": {
    "street": "10 Downing Street",
    "city": "London"
  },
  "phones": [
    "+44 1234567",
    "+44 2345678"
  ]
}`

// PersonYAML is PersonJSON written as YAML.
const PersonYAML = `name: John Doe
age: 43
address:
  street: 10 Downing Street
  city: London
phones:
  - "+44 1234567"
  - "+44 2345678"
`

// MustDecodeJSON decodes s or fails the test.
func MustDecodeJSON(t testing.TB, s string) value.Value {
	t.Helper()
	v, err := value.DecodeJSON([]byte(s))
	if err != nil {
		t.Fatalf("Failed to decode JSON fixture: %v", err)
	}
	return v
}

// WriteTempFile writes content to name inside a fresh temp directory and
// returns the file path.
func WriteTempFile(t testing.TB, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), fileutil.OwnerReadWrite); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}

// WriteTempJSON writes v as indented JSON and returns the file path.
func WriteTempJSON(t testing.TB, v value.Value) string {
	t.Helper()

	data, err := value.MarshalJSONIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal value to JSON: %v", err)
	}
	return WriteTempFile(t, "test.json", string(data))
}

// WriteTempYAML writes v as YAML and returns the file path.
func WriteTempYAML(t testing.TB, v value.Value) string {
	t.Helper()

	data, err := value.MarshalYAML(v)
	if err != nil {
		t.Fatalf("Failed to marshal value to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", string(data))
}
