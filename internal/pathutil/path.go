package pathutil

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultSeparator joins key segments when no separator is configured.
const DefaultSeparator = "."

// Split breaks a flattened key into its segments. It is the inverse of
// repeated Key.Child calls only when no segment contains sep.
func Split(key, sep string) []string {
	if sep == "" {
		return []string{key}
	}
	return strings.Split(key, sep)
}

// Key is a flattened key under construction. The zero Key is the root,
// which has no segments.
type Key struct {
	path   string
	nested bool
}

// Child returns the key for segment below k: the segment itself below the
// root, and k+sep+segment otherwise. Segment contents pass through
// unchanged.
func (k Key) Child(segment, sep string) Key {
	if !k.nested {
		return Key{path: segment, nested: true}
	}
	return Key{path: k.path + sep + segment, nested: true}
}

// Index returns the key for array position i below k.
func (k Key) Index(i int, sep string) Key {
	return k.Child(strconv.Itoa(i), sep)
}

// IsRoot reports whether k has no segments.
func (k Key) IsRoot() bool {
	return !k.nested
}

// String returns the joined key. The root is "".
func (k Key) String() string {
	return k.path
}

// NormalizeSegment returns s in Unicode Normalization Form C, so that
// visually identical keys typed with different code point sequences land
// in the same column.
func NormalizeSegment(s string) string {
	return norm.NFC.String(s)
}
