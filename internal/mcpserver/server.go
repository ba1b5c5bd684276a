// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the flattener as an MCP tool over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/flatjson"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `flatjson MCP server: flattens nested JSON or YAML documents into a single level of separator-joined keys.

Configuration: All defaults are configurable via FLATJSON_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- FLATJSON_SEPARATOR (default: ".") - default key separator
- FLATJSON_ALT_ARRAYS (default: false) - walk arrays nested inside arrays by default
- FLATJSON_COLLISION (default: overwrite) - default collision policy (overwrite or merge)
- FLATJSON_MAX_DEPTH (default: 1000) - nesting depth limit, 0 disables it
- FLATJSON_MAX_INLINE_SIZE (default: 10485760) - maximum inline content size in bytes
- FLATJSON_CACHE_ENABLED (default: true) - disable result caching entirely
- FLATJSON_CACHE_MAX_SIZE (default: 64) - number of cached results

Caching: Results are cached per session in an LRU keyed by the document (content hash, or path+mtime for files) and the flatten settings.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "flatjson", Version: flatjson.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "flatten",
		Description: "Flatten a nested JSON or YAML object into a single-level object whose keys are the object paths joined by a separator. Arrays never add a key segment: scalars found under an array are collected into an array of scalars per key, so objects inside arrays merge field by field. Set alt_array_flattening to also walk arrays nested inside arrays, preserve_arrays to keep indices in keys instead, and collision=merge to keep every value when two paths produce the same key. Provide exactly one of content or file. Returns the flat document as JSON (default) or YAML text.",
	}, handleFlatten)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
