package flattener

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/flatjson/flaterrors"
	"github.com/erraggy/flatjson/internal/options"
	"github.com/erraggy/flatjson/value"
)

// Option is a function that configures a flatten operation.
type Option func(*flattenConfig) error

// flattenConfig holds configuration for a flatten operation.
type flattenConfig struct {
	// Input source (exactly one must be set)
	root     *value.Value
	filePath *string
	reader   io.Reader
	bytes    []byte

	sourceFormat value.SourceFormat
	flattener    Flattener
}

// Result is the outcome of FlattenWithOptions.
type Result struct {
	// Flat is the flattened document. It is owned by the caller.
	Flat *value.Map
	// KeyCount is the number of keys in Flat.
	KeyCount int
	// Collisions counts writes that hit an existing key.
	Collisions int
	// SourceFormat is the format the input was decoded from, or
	// SourceFormatUnknown when a value was passed directly.
	SourceFormat value.SourceFormat
	// SourcePath is the input file path, if any.
	SourcePath string
}

// FlattenWithOptions decodes an input and flattens it using functional
// options.
//
// Example:
//
//	result, err := flattener.FlattenWithOptions(
//	    flattener.WithFilePath("events.json"),
//	    flattener.WithSeparator("_"),
//	    flattener.WithAltArrayFlattening(true),
//	)
func FlattenWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("flattener: invalid options: %w", err)
	}

	result := &Result{SourceFormat: value.SourceFormatUnknown}
	var root value.Value
	switch {
	case cfg.root != nil:
		root = *cfg.root
	case cfg.filePath != nil:
		result.SourcePath = *cfg.filePath
		data, err := os.ReadFile(*cfg.filePath)
		if err != nil {
			return nil, fmt.Errorf("flattener: reading %s: %w", *cfg.filePath, err)
		}
		format := cfg.sourceFormat
		if format == value.SourceFormatUnknown {
			format = value.DetectFormatFromPath(*cfg.filePath)
		}
		root, result.SourceFormat, err = decode(data, format, *cfg.filePath, cfg.flattener.MaxDepth)
		if err != nil {
			return nil, err
		}
	case cfg.reader != nil:
		data, err := io.ReadAll(cfg.reader)
		if err != nil {
			return nil, fmt.Errorf("flattener: reading input: %w", err)
		}
		root, result.SourceFormat, err = decode(data, cfg.sourceFormat, "", cfg.flattener.MaxDepth)
		if err != nil {
			return nil, err
		}
	case cfg.bytes != nil:
		var err error
		root, result.SourceFormat, err = decode(cfg.bytes, cfg.sourceFormat, "", cfg.flattener.MaxDepth)
		if err != nil {
			return nil, err
		}
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("flattener: no input source specified")
	}

	flat, collisions, err := cfg.flattener.flatten(root)
	if err != nil {
		return nil, err
	}
	result.Flat = flat
	result.KeyCount = flat.Len()
	result.Collisions = collisions
	return result, nil
}

// decode applies the nesting limit while the tree is built. A maxDepth of
// zero leaves value.DefaultMaxDepth in force.
func decode(data []byte, format value.SourceFormat, path string, maxDepth int) (value.Value, value.SourceFormat, error) {
	root, used, err := value.DecodeWithOptions(data, format, value.DecodeOptions{MaxDepth: maxDepth})
	if err != nil {
		var pe *flaterrors.ParseError
		if path != "" && errors.As(err, &pe) {
			pe.Path = path
		}
		return value.Value{}, used, fmt.Errorf("flattener: %w", err)
	}
	return root, used, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*flattenConfig, error) {
	cfg := &flattenConfig{
		sourceFormat: value.SourceFormatUnknown,
		flattener:    *New(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		options.InputSource{Option: "WithValue", Set: cfg.root != nil},
		options.InputSource{Option: "WithFilePath", Set: cfg.filePath != nil},
		options.InputSource{Option: "WithReader", Set: cfg.reader != nil},
		options.InputSource{Option: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithValue specifies an already decoded tree as the input source.
func WithValue(root value.Value) Option {
	return func(cfg *flattenConfig) error {
		cfg.root = &root
		return nil
	}
}

// WithFilePath specifies a JSON or YAML file as the input source.
func WithFilePath(path string) Option {
	return func(cfg *flattenConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source.
func WithReader(r io.Reader) Option {
	return func(cfg *flattenConfig) error {
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies raw document bytes as the input source.
func WithBytes(data []byte) Option {
	return func(cfg *flattenConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.bytes = data
		return nil
	}
}

// WithSourceFormat forces the input format instead of detecting it.
func WithSourceFormat(format value.SourceFormat) Option {
	return func(cfg *flattenConfig) error {
		switch format {
		case value.SourceFormatJSON, value.SourceFormatYAML, value.SourceFormatUnknown:
			cfg.sourceFormat = format
			return nil
		default:
			return &flaterrors.ConfigError{Option: "source-format", Value: string(format), Message: "unsupported format"}
		}
	}
}

// WithSeparator sets the string placed between key segments (default ".").
func WithSeparator(sep string) Option {
	return func(cfg *flattenConfig) error {
		if sep == "" {
			return &flaterrors.ConfigError{Option: "separator", Value: sep, Message: "must not be empty"}
		}
		cfg.flattener.Separator = sep
		return nil
	}
}

// WithAltArrayFlattening enables walking arrays nested inside arrays.
func WithAltArrayFlattening(enabled bool) Option {
	return func(cfg *flattenConfig) error {
		cfg.flattener.AltArrayFlattening = enabled
		return nil
	}
}

// WithPreserveArrays keeps array indices as key segments.
func WithPreserveArrays(enabled bool) Option {
	return func(cfg *flattenConfig) error {
		cfg.flattener.PreserveArrays = enabled
		return nil
	}
}

// WithCollisionPolicy sets how colliding keys are resolved.
func WithCollisionPolicy(policy CollisionPolicy) Option {
	return func(cfg *flattenConfig) error {
		if !policy.IsValid() {
			return &flaterrors.ConfigError{Option: "collision", Value: policy.String(), Message: "unknown collision policy"}
		}
		cfg.flattener.Collision = policy
		return nil
	}
}

// WithMaxDepth limits the nesting depth of the input. 0 disables the limit.
func WithMaxDepth(depth int) Option {
	return func(cfg *flattenConfig) error {
		if depth < 0 {
			return &flaterrors.ConfigError{Option: "max-depth", Value: depth, Message: "must not be negative"}
		}
		cfg.flattener.MaxDepth = depth
		return nil
	}
}

// WithNormalizeKeys converts key segments to Unicode NFC.
func WithNormalizeKeys(enabled bool) Option {
	return func(cfg *flattenConfig) error {
		cfg.flattener.NormalizeKeys = enabled
		return nil
	}
}

// WithLogger sets the logger. Nil restores the no-op logger.
func WithLogger(l Logger) Option {
	return func(cfg *flattenConfig) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.flattener.Logger = l
		return nil
	}
}
