package value

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/flatjson/flaterrors"
)

func TestDecodeJSON(t *testing.T) {
	t.Run("preserves key order", func(t *testing.T) {
		v := mustJSON(t, `{"z": 1, "a": 2, "m": {"y": 1, "b": 2}}`)
		require.Equal(t, KindObject, v.Kind())
		assert.Equal(t, []string{"z", "a", "m"}, v.Members().Keys())
		m, _ := v.Members().Get("m")
		assert.Equal(t, []string{"y", "b"}, m.Members().Keys())
	})

	t.Run("keeps number literals", func(t *testing.T) {
		v := mustJSON(t, `{"big": 12345678901234567890, "f": 1.50, "e": 1e3}`)
		assert.Equal(t, `{"big":12345678901234567890,"f":1.50,"e":1e3}`, v.String())
	})

	t.Run("all scalar kinds", func(t *testing.T) {
		v := mustJSON(t, `[null, true, false, 0, "s"]`)
		var kinds []Kind
		for _, e := range v.Elements() {
			kinds = append(kinds, e.Kind())
		}
		assert.Equal(t, []Kind{KindNull, KindBool, KindBool, KindNumber, KindString}, kinds)
	})

	t.Run("duplicate keys keep first position and last value", func(t *testing.T) {
		v := mustJSON(t, `{"a": 1, "b": 2, "a": 3}`)
		assert.Equal(t, `{"a":3,"b":2}`, v.String())
	})

	t.Run("empty containers", func(t *testing.T) {
		v := mustJSON(t, `{"o": {}, "a": []}`)
		assert.Equal(t, `{"o":{},"a":[]}`, v.String())
	})
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty", ``, "empty document"},
		{"truncated", `{"a": `, ""},
		{"trailing data", `{} {}`, "unexpected data after top-level value"},
		{"syntax", `{"a" 1}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, flaterrors.ErrParse))
			var pe *flaterrors.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "json", pe.Format)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, pe.Message)
			}
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	src := `
name: Ada
age: 36
ratio: 0.5
active: yes
nothing: ~
when: 2024-01-02
tags:
  - x
  - y
base: &base
  k: v
copy: *base
quoted: "123"
`
	v, err := DecodeYAML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"name", "age", "ratio", "active", "nothing", "when", "tags", "base", "copy", "quoted"},
		v.Members().Keys())

	got := v.ToAny().(map[string]any)
	want := map[string]any{
		"name":    "Ada",
		"age":     mustNumber("36"),
		"ratio":   mustNumber("0.5"),
		"active":  "yes",
		"nothing": nil,
		"when":    "2024-01-02",
		"tags":    []any{"x", "y"},
		"base":    map[string]any{"k": "v"},
		"copy":    map[string]any{"k": "v"},
		"quoted":  "123",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeYAML mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeYAML_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := DecodeYAML(nil)
		require.ErrorIs(t, err, flaterrors.ErrParse)
	})

	t.Run("syntax", func(t *testing.T) {
		_, err := DecodeYAML([]byte("a: [1, 2"))
		require.ErrorIs(t, err, flaterrors.ErrParse)
	})

	t.Run("non-scalar key", func(t *testing.T) {
		_, err := DecodeYAML([]byte("? [a, b]\n: 1\n"))
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "mapping key must be a scalar"))
	})
}

func TestDecode_DetectsFormat(t *testing.T) {
	v, format, err := Decode([]byte(`  {"a": 1}`), SourceFormatUnknown)
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, format)
	assert.Equal(t, `{"a":1}`, v.String())

	v, format, err = Decode([]byte("a: 1\n"), SourceFormatUnknown)
	require.NoError(t, err)
	assert.Equal(t, SourceFormatYAML, format)
	assert.Equal(t, `{"a":1}`, v.String())

	_, _, err = Decode([]byte("   "), SourceFormatUnknown)
	require.ErrorIs(t, err, flaterrors.ErrParse)
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(map[string]any{
		"b": []any{1, int64(2), uint8(3), 1.5, "s", nil, true},
		"a": map[string]any{"z": uint64(18446744073709551615)},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"z":18446744073709551615},"b":[1,2,3,1.5,"s",null,true]}`, v.String())

	_, err = FromAny(map[string]any{"bad": struct{}{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestFormatDetection(t *testing.T) {
	assert.Equal(t, SourceFormatJSON, DetectFormatFromPath("a/b.JSON"))
	assert.Equal(t, SourceFormatYAML, DetectFormatFromPath("b.yml"))
	assert.Equal(t, SourceFormatUnknown, DetectFormatFromPath("b.txt"))
	assert.Equal(t, SourceFormatJSON, DetectFormatFromContent([]byte("\n[1]")))
	assert.Equal(t, SourceFormatYAML, DetectFormatFromContent([]byte("a: 1")))
	assert.Equal(t, SourceFormatUnknown, DetectFormatFromContent(nil))

	f, err := ParseSourceFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, SourceFormatYAML, f)
	_, err = ParseSourceFormat("xml")
	assert.Error(t, err)
}

func TestDecodeWithOptions_MaxDepth(t *testing.T) {
	tests := []struct {
		name     string
		format   SourceFormat
		input    string
		maxDepth int
		wantErr  bool
	}{
		{"json at limit", SourceFormatJSON, `{"a": {"b": 1}}`, 2, false},
		{"json over limit", SourceFormatJSON, `{"a": {"b": 1}}`, 1, true},
		{"json arrays count", SourceFormatJSON, `[[[]]]`, 1, true},
		{"yaml at limit", SourceFormatYAML, "a:\n  b: 1\n", 2, false},
		{"yaml over limit", SourceFormatYAML, "a:\n  b: 1\n", 1, true},
		{"yaml alias keeps its depth", SourceFormatYAML, "x: &x 1\ny: *x\n", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeWithOptions([]byte(tt.input), tt.format, DecodeOptions{MaxDepth: tt.maxDepth})
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, flaterrors.ErrResourceLimit)
			var limitErr *flaterrors.ResourceLimitError
			require.True(t, errors.As(err, &limitErr))
			assert.Equal(t, "nesting_depth", limitErr.ResourceType)
			assert.EqualValues(t, tt.maxDepth, limitErr.Limit)
		})
	}

	t.Run("self-referencing alias", func(t *testing.T) {
		_, err := DecodeYAML([]byte("a: &a [*a]\n"))
		require.Error(t, err)
	})
}

// aliasBomb builds a document whose last anchor expands to 10^levels
// scalars.
func aliasBomb(levels int) string {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i < levels; i++ {
		prev := fmt.Sprintf("*l%d", i-1)
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, strings.TrimSuffix(strings.Repeat(prev+", ", 10), ", "))
	}
	return b.String()
}

func TestDecodeYAML_AliasExpansionLimit(t *testing.T) {
	t.Run("exponential expansion is rejected", func(t *testing.T) {
		_, err := DecodeYAML([]byte(aliasBomb(7)))
		require.ErrorIs(t, err, flaterrors.ErrResourceLimit)
		assert.False(t, errors.Is(err, flaterrors.ErrParse))

		var limitErr *flaterrors.ResourceLimitError
		require.True(t, errors.As(err, &limitErr))
		assert.Equal(t, "yaml_nodes", limitErr.ResourceType)
	})

	t.Run("modest reuse is accepted", func(t *testing.T) {
		v, err := DecodeYAML([]byte(aliasBomb(3)))
		require.NoError(t, err)
		l2, ok := v.Members().Get("l2")
		require.True(t, ok)
		assert.Len(t, l2.Elements(), 10)
	})

	t.Run("explicit budget", func(t *testing.T) {
		_, _, err := DecodeWithOptions([]byte(aliasBomb(3)), SourceFormatYAML, DecodeOptions{MaxNodes: 50})
		require.ErrorIs(t, err, flaterrors.ErrResourceLimit)
	})
}
