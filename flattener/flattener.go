package flattener

import (
	"fmt"

	"github.com/erraggy/flatjson/flaterrors"
	"github.com/erraggy/flatjson/internal/pathutil"
	"github.com/erraggy/flatjson/value"
)

// Flattener turns a nested object into a flat mapping of separator-joined
// keys to scalars or arrays of scalars.
//
// A Flattener is read-only while flattening, so one instance can serve
// concurrent calls as long as its Logger is safe for concurrent use.
type Flattener struct {
	// Separator joins nested object keys. Empty means ".".
	Separator string

	// AltArrayFlattening walks arrays nested directly inside arrays instead
	// of keeping them whole, so every scalar below an array lands either on
	// the array's own key or on the key of the object field that holds it.
	AltArrayFlattening bool

	// PreserveArrays adds each array index to the key ("a.0.b") and turns
	// off array merging entirely.
	PreserveArrays bool

	// Collision decides what happens when two paths produce the same key.
	Collision CollisionPolicy

	// MaxDepth bounds the nesting depth of the input. 0 means unlimited,
	// though documents decoded by FlattenWithOptions are still held to
	// value.DefaultMaxDepth.
	MaxDepth int

	// NormalizeKeys converts every key segment to Unicode NFC.
	NormalizeKeys bool

	// Logger receives debug output. Nil means NopLogger.
	Logger Logger
}

// New returns a Flattener with the default configuration.
func New() *Flattener {
	return &Flattener{
		Separator: pathutil.DefaultSeparator,
		Collision: CollisionOverwrite,
		Logger:    NopLogger{},
	}
}

// Flatten flattens root with the default configuration.
func Flatten(root value.Value) (*value.Map, error) {
	return New().Flatten(root)
}

// Flatten flattens root, which must be an object, into a new map owned by
// the caller. The input tree is not modified.
//
// Object keys become key segments; arrays never add a segment. Scalars
// reached outside any array are stored as-is. Everything reached through
// an array is accumulated per key and stored as an array, so
//
//	{"a": [{"b": 1}, {"b": 2}]}  ->  {"a.b": [1, 2]}
//
// A root that is not an object fails with a *flaterrors.InvalidRootError.
func (f *Flattener) Flatten(root value.Value) (*value.Map, error) {
	out, _, err := f.flatten(root)
	return out, err
}

func (f *Flattener) flatten(root value.Value) (*value.Map, int, error) {
	c, err := f.newCollapser()
	if err != nil {
		return nil, 0, fmt.Errorf("flattener: %w", err)
	}

	if root.Kind() != value.KindObject {
		return nil, 0, fmt.Errorf("flattener: %w", &flaterrors.InvalidRootError{Kind: root.Kind().String()})
	}

	if err := c.collapse(root, pathutil.Key{}, 0); err != nil {
		return nil, 0, fmt.Errorf("flattener: %w", err)
	}

	c.logger.Debug("flattened document", "keys", c.out.Len(), "collisions", c.collisions)
	return c.out, c.collisions, nil
}

func (f *Flattener) newCollapser() (*collapser, error) {
	sep := f.Separator
	if sep == "" {
		sep = pathutil.DefaultSeparator
	}
	if !f.Collision.IsValid() {
		return nil, &flaterrors.ConfigError{
			Option:  "collision",
			Value:   f.Collision.String(),
			Message: "unknown collision policy",
		}
	}
	if f.MaxDepth < 0 {
		return nil, &flaterrors.ConfigError{
			Option:  "max-depth",
			Value:   f.MaxDepth,
			Message: "must not be negative",
		}
	}
	var logger Logger = NopLogger{}
	if f.Logger != nil {
		logger = f.Logger
	}

	return &collapser{
		sep:       sep,
		alt:       f.AltArrayFlattening,
		preserve:  f.PreserveArrays,
		normalize: f.NormalizeKeys,
		collision: f.Collision,
		maxDepth:  f.MaxDepth,
		logger:    logger,
		out:       value.NewMap(0),
	}, nil
}
