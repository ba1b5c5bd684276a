package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/flatjson/internal/mcpserver"
)

// HandleMCP executes the mcp command: it serves the flatten tool over stdio
// until the client disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: flatjson mcp\n\n")
		Writef(output, "Run a Model Context Protocol server on stdio exposing the 'flatten' tool.\n\n")
		Writef(output, "Configuration is read from FLATJSON_* environment variables\n")
		Writef(output, "(FLATJSON_SEPARATOR, FLATJSON_ALT_ARRAYS, FLATJSON_COLLISION, FLATJSON_MAX_DEPTH,\n")
		Writef(output, "FLATJSON_MAX_INLINE_SIZE, FLATJSON_CACHE_ENABLED, FLATJSON_CACHE_MAX_SIZE).\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
