// Package options provides shared utilities for option validation.
package options

import (
	"strings"

	"github.com/erraggy/flatjson/flaterrors"
)

// InputSource names an input option and records whether it was supplied.
type InputSource struct {
	Option string
	Set    bool
}

// ValidateSingleInputSource ensures exactly one input source is specified.
// The returned error is a *flaterrors.ConfigError naming the options involved.
func ValidateSingleInputSource(sources ...InputSource) error {
	var all, set []string
	for _, s := range sources {
		all = append(all, s.Option)
		if s.Set {
			set = append(set, s.Option)
		}
	}

	switch len(set) {
	case 0:
		return &flaterrors.ConfigError{
			Option:  "input",
			Message: "must specify an input source (use " + strings.Join(all, ", ") + ")",
		}
	case 1:
		return nil
	default:
		return &flaterrors.ConfigError{
			Option:  "input",
			Message: "must specify exactly one input source, got " + strings.Join(set, " and "),
		}
	}
}
