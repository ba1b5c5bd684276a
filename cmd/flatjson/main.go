package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/erraggy/flatjson"
	"github.com/erraggy/flatjson/cmd/flatjson/commands"
)

// commandNames lists every subcommand, used for typo suggestions.
var commandNames = []string{"flatten", "mcp", "version", "help"}

func main() {
	// A missing .env file is fine; the environment alone is used then.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("flatjson v%s\n", flatjson.Version())
		if len(os.Args) > 2 && os.Args[2] == "-verbose" {
			fmt.Println(flatjson.BuildInfo())
		}
	case "help", "-h", "--help":
		printUsage()
	case "flatten":
		if err := commands.HandleFlatten(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`flatjson - Flatten nested JSON and YAML documents

Usage:
  flatjson <command> [options]

Commands:
  flatten     Flatten a JSON or YAML object into separator-joined keys
  mcp         Run an MCP server on stdio exposing the flatten tool
  version     Show version information (-verbose for build details)
  help        Show this help message

Examples:
  flatjson flatten events.json
  flatjson flatten -separator _ -format yaml config.yaml
  cat events.json | flatjson flatten -alt-arrays -
  flatjson mcp

Environment variables are also read from a .env file in the working directory.

Run 'flatjson <command> --help' for more information on a command.`)
}
