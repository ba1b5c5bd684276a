// Package flaterrors provides structured error types for the flatjson library.
//
// Import path: github.com/erraggy/flatjson/flaterrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between a bad input tree, a bad configuration,
// and an exceeded resource limit.
//
// # Error Types
//
//   - [InvalidRootError]: the value handed to the flattener is not an object
//   - [ConfigError]: invalid flattener configuration (empty separator, unknown policy)
//   - [ResourceLimitError]: the input nests deeper than the configured limit
//   - [ParseError]: the JSON or YAML source text could not be decoded
//
// # Sentinel Errors
//
//   - [ErrInvalidRoot]: Matches any [InvalidRootError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrParse]: Matches any [ParseError]
//
// # Usage Examples
//
//	flat, err := flattener.Flatten(root)
//	if errors.Is(err, flaterrors.ErrInvalidRoot) {
//	    // root was a scalar or an array
//	}
//
//	var rootErr *flaterrors.InvalidRootError
//	if errors.As(err, &rootErr) {
//	    fmt.Printf("got %s, want object\n", rootErr.Kind)
//	}
package flaterrors
