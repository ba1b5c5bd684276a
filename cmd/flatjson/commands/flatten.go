package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/erraggy/flatjson/flattener"
	"github.com/erraggy/flatjson/internal/cliutil"
	"github.com/erraggy/flatjson/value"
)

// FlattenFlags contains flags for the flatten command
type FlattenFlags struct {
	Separator      string
	AltArrays      bool
	PreserveArrays bool
	Collision      string
	MaxDepth       int
	NormalizeKeys  bool
	InputFormat    string
	Format         string
	Indent         bool
	Output         string
	Verbose        bool
	Quiet          bool
}

// SetupFlattenFlags creates and configures a FlagSet for the flatten command.
// Returns the FlagSet and a FlattenFlags struct with bound flag variables.
func SetupFlattenFlags() (*flag.FlagSet, *FlattenFlags) {
	fs := flag.NewFlagSet("flatten", flag.ContinueOnError)
	flags := &FlattenFlags{}

	fs.StringVar(&flags.Separator, "separator", ".", "string placed between key segments")
	fs.StringVar(&flags.Separator, "s", ".", "string placed between key segments (shorthand)")
	fs.BoolVar(&flags.AltArrays, "alt-arrays", false, "walk arrays nested directly inside arrays instead of keeping them whole")
	fs.BoolVar(&flags.PreserveArrays, "preserve-arrays", false, "add array indices to keys (a.0.b) instead of collecting values")
	fs.StringVar(&flags.Collision, "collision", "overwrite", "key collision policy: overwrite or merge")
	fs.IntVar(&flags.MaxDepth, "max-depth", 0, "fail on documents nested deeper than this (0 = unlimited)")
	fs.BoolVar(&flags.NormalizeKeys, "normalize-keys", false, "normalize key segments to Unicode NFC")
	fs.StringVar(&flags.InputFormat, "input-format", "auto", "input format: auto, json, or yaml")
	fs.StringVar(&flags.Format, "format", FormatJSON, "output format: json, yaml, text, or msgpack")
	fs.BoolVar(&flags.Indent, "indent", false, "indent JSON output even when stdout is not a terminal")
	fs.StringVar(&flags.Output, "o", "", "write output to file instead of stdout")
	fs.StringVar(&flags.Output, "output", "", "write output to file instead of stdout")
	fs.BoolVar(&flags.Verbose, "v", false, "log key collisions to stderr")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no summary on stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: flatjson flatten [flags] <file|->\n\n")
		Writef(output, "Flatten a nested JSON or YAML object into separator-joined keys.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  flatjson flatten events.json\n")
		Writef(output, "  flatjson flatten -separator _ -format yaml config.yaml\n")
		Writef(output, "  flatjson flatten -alt-arrays -collision merge -o flat.json events.json\n")
		Writef(output, "  cat events.json | flatjson flatten -q -\n")
		Writef(output, "\nArrays:\n")
		Writef(output, "  Arrays never add a key segment. Scalars found under an array are\n")
		Writef(output, "  collected per key, so {\"a\":[{\"b\":1},{\"b\":2}]} becomes {\"a.b\":[1,2]}.\n")
		Writef(output, "  Arrays directly inside arrays are kept whole unless -alt-arrays is set.\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    Flattening successful\n")
		Writef(output, "  1    Invalid input, invalid flags, or non-object root\n")
	}

	return fs, flags
}

// HandleFlatten executes the flatten command
func HandleFlatten(args []string) error {
	fs, flags := SetupFlattenFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("flatten command requires exactly one file path or '-' for stdin")
	}

	fd := os.Stdout.Fd()
	terminal := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return runFlatten(flags, fs.Arg(0), os.Stdin, os.Stdout, os.Stderr, terminal)
}

// runFlatten does the work of HandleFlatten against explicit streams.
// JSON written to a terminal is indented.
func runFlatten(flags *FlattenFlags, inputPath string, stdin io.Reader, stdout, stderr io.Writer, terminal bool) error {
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	policy, err := flattener.ParseCollisionPolicy(flags.Collision)
	if err != nil {
		return err
	}
	inputFormat, err := value.ParseSourceFormat(flags.InputFormat)
	if err != nil {
		return err
	}

	var outputPath string
	if flags.Output != "" {
		outputPath, err = cliutil.SanitizeOutputPath(flags.Output, inputPath)
		if err != nil {
			return err
		}
	}

	opts := []flattener.Option{
		flattener.WithSeparator(flags.Separator),
		flattener.WithAltArrayFlattening(flags.AltArrays),
		flattener.WithPreserveArrays(flags.PreserveArrays),
		flattener.WithCollisionPolicy(policy),
		flattener.WithMaxDepth(flags.MaxDepth),
		flattener.WithNormalizeKeys(flags.NormalizeKeys),
		flattener.WithSourceFormat(inputFormat),
	}
	if flags.Verbose {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, flattener.WithLogger(flattener.NewSlogAdapter(slog.New(handler))))
	}
	if inputPath == StdinFilePath {
		opts = append(opts, flattener.WithReader(stdin))
	} else {
		opts = append(opts, flattener.WithFilePath(inputPath))
	}

	result, err := flattener.FlattenWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("flattening %s: %w", FormatInputPath(inputPath), err)
	}

	indent := flags.Indent || (terminal && outputPath == "")
	data, err := MarshalFlat(result.Flat, flags.Format, indent)
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", flags.Format, err)
	}

	if outputPath != "" {
		if err := cliutil.WriteOutputFile(outputPath, data); err != nil {
			return err
		}
	} else {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if flags.Format == FormatJSON {
			Writef(stdout, "\n")
		}
	}

	if !flags.Quiet {
		Writef(stderr, "Flattened %s (%s): %d keys", FormatInputPath(inputPath), result.SourceFormat, result.KeyCount)
		if result.Collisions > 0 {
			Writef(stderr, ", %d collisions resolved by %s", result.Collisions, policy)
		}
		if outputPath != "" {
			Writef(stderr, ", written to %s", outputPath)
		}
		Writef(stderr, "\n")
	}
	return nil
}
