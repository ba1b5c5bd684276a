// Package cliutil holds the output helpers shared by the flatjson
// subcommands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// diagnostics receives write failures. Tests replace it.
var diagnostics io.Writer = os.Stderr

// Writef prints to w. A failed write is reported on diagnostics instead of
// being returned.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(diagnostics, "flatjson: write failed: %v\n", err)
	}
}
