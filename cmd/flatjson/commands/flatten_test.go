package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/flatjson/internal/testutil"
)

func parseFlattenFlags(t *testing.T, args ...string) *FlattenFlags {
	t.Helper()
	fs, flags := SetupFlattenFlags()
	fs.SetOutput(io.Discard)
	require.NoError(t, fs.Parse(args))
	return flags
}

type flattenRun struct {
	stdout string
	stderr string
	err    error
}

func runWith(t *testing.T, flags *FlattenFlags, input, stdin string, terminal bool) flattenRun {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := runFlatten(flags, input, strings.NewReader(stdin), &stdout, &stderr, terminal)
	return flattenRun{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestSetupFlattenFlags_Defaults(t *testing.T) {
	flags := parseFlattenFlags(t)
	assert.Equal(t, ".", flags.Separator)
	assert.False(t, flags.AltArrays)
	assert.False(t, flags.PreserveArrays)
	assert.Equal(t, "overwrite", flags.Collision)
	assert.Equal(t, 0, flags.MaxDepth)
	assert.Equal(t, "auto", flags.InputFormat)
	assert.Equal(t, FormatJSON, flags.Format)
	assert.False(t, flags.Indent)
	assert.Empty(t, flags.Output)
}

func TestRunFlatten_Stdin(t *testing.T) {
	run := runWith(t, parseFlattenFlags(t), StdinFilePath, `{"a": {"b": 1}}`, false)
	require.NoError(t, run.err)
	assert.Equal(t, "{\"a.b\":1}\n", run.stdout)
	assert.Equal(t, "Flattened <stdin> (json): 1 keys\n", run.stderr)
}

func TestRunFlatten_TerminalIndents(t *testing.T) {
	run := runWith(t, parseFlattenFlags(t), StdinFilePath, `{"a": {"b": 1}}`, true)
	require.NoError(t, run.err)
	assert.Equal(t, "{\n  \"a.b\": 1\n}\n", run.stdout)

	run = runWith(t, parseFlattenFlags(t, "-indent"), StdinFilePath, `{"a": {"b": 1}}`, false)
	require.NoError(t, run.err)
	assert.Equal(t, "{\n  \"a.b\": 1\n}\n", run.stdout)
}

func TestRunFlatten_Flags(t *testing.T) {
	input := `{"a": [["b","c"], {"d":"e"}, [{"h":"i"},{"d":"j"}]], "a.d": "k"}`

	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{
			name:       "defaults",
			args:       []string{"-q"},
			wantStdout: `{"a":[["b","c"],[{"h":"i"},{"d":"j"}]],"a.d":"k"}` + "\n",
		},
		{
			name:       "alt arrays and merge",
			args:       []string{"-alt-arrays", "-collision", "merge"},
			wantStdout: `{"a":["b","c"],"a.d":["e","j","k"],"a.h":["i"]}` + "\n",
			wantStderr: "Flattened <stdin> (json): 3 keys, 1 collisions resolved by merge\n",
		},
		{
			name:       "separator shorthand",
			args:       []string{"-q", "-s", "_", "-alt-arrays"},
			wantStdout: `{"a":["b","c"],"a_d":["e","j"],"a_h":["i"],"a.d":"k"}` + "\n",
		},
		{
			name:       "preserve arrays",
			args:       []string{"-q", "-preserve-arrays"},
			wantStdout: `{"a.0.0":"b","a.0.1":"c","a.1.d":"e","a.2.0.h":"i","a.2.1.d":"j","a.d":"k"}` + "\n",
		},
		{
			name:       "text output",
			args:       []string{"-q", "-format", "text", "-alt-arrays"},
			wantStdout: "a    [\"b\",\"c\"]\na.d  \"k\"\na.h  [\"i\"]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := runWith(t, parseFlattenFlags(t, tt.args...), StdinFilePath, input, false)
			require.NoError(t, run.err)
			assert.Equal(t, tt.wantStdout, run.stdout)
			assert.Equal(t, tt.wantStderr, run.stderr)
		})
	}
}

func TestRunFlatten_File(t *testing.T) {
	path := testutil.WriteTempFile(t, "person.yaml", testutil.PersonYAML)

	run := runWith(t, parseFlattenFlags(t, "-format", "yaml"), path, "", false)
	require.NoError(t, run.err)
	assert.Contains(t, run.stdout, "address.city: London")
	assert.Contains(t, run.stderr, "(yaml): 5 keys")
}

func TestRunFlatten_ForcedInputFormat(t *testing.T) {
	path := testutil.WriteTempFile(t, "person.txt", testutil.PersonYAML)

	run := runWith(t, parseFlattenFlags(t, "-q", "-input-format", "yaml"), path, "", false)
	require.NoError(t, run.err)
	assert.Contains(t, run.stdout, `"address.city":"London"`)
}

func TestRunFlatten_OutputFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"a": {"b": [1]}}`), 0o600))
	output := filepath.Join(dir, "out.json")

	run := runWith(t, parseFlattenFlags(t, "-o", output), input, "", true)
	require.NoError(t, run.err)
	assert.Empty(t, run.stdout)
	assert.Contains(t, run.stderr, "written to "+output)

	// Writing to a file never indents unless asked.
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, `{"a.b":[1]}`, string(data))

	run = runWith(t, parseFlattenFlags(t, "-o", input), input, "", false)
	require.Error(t, run.err)
	assert.Contains(t, run.err.Error(), "would overwrite input file")
}

func TestRunFlatten_Verbose(t *testing.T) {
	run := runWith(t, parseFlattenFlags(t, "-v", "-collision", "merge"), StdinFilePath, `{"a": {"b": 1}, "a.b": 2}`, false)
	require.NoError(t, run.err)
	assert.Equal(t, "{\"a.b\":[1,2]}\n", run.stdout)
	assert.Contains(t, run.stderr, "key collision")
	assert.Contains(t, run.stderr, "key=a.b")
}

func TestRunFlatten_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		wantErr string
	}{
		{"bad format", []string{"-format", "xml"}, `{}`, "invalid format"},
		{"bad collision", []string{"-collision", "concat"}, `{}`, "invalid collision policy"},
		{"bad input format", []string{"-input-format", "toml"}, `{}`, "unknown source format"},
		{"empty separator", []string{"-separator", ""}, `{}`, "separator"},
		{"negative depth", []string{"-max-depth", "-1"}, `{}`, "max-depth"},
		{"depth exceeded", []string{"-max-depth", "1"}, `{"a": {"b": 1}}`, "nesting_depth"},
		{"array root", nil, `[1, 2]`, "invalid root"},
		{"malformed input", nil, `{"a": `, "parse error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := runWith(t, parseFlattenFlags(t, tt.args...), StdinFilePath, tt.stdin, false)
			require.Error(t, run.err)
			assert.Contains(t, run.err.Error(), tt.wantErr)
			assert.Empty(t, run.stdout)
		})
	}
}

func TestHandleFlatten_Args(t *testing.T) {
	assert.NoError(t, HandleFlatten([]string{"-h"}))

	err := HandleFlatten(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one file path")

	err = HandleFlatten([]string{"a.json", "b.json"})
	require.Error(t, err)
}

func TestHandleMCP_Args(t *testing.T) {
	assert.NoError(t, HandleMCP([]string{"-h"}))

	err := HandleMCP([]string{"extra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "takes no arguments")
}
