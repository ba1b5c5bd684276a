package mcpserver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/flatjson/flattener"
	"github.com/erraggy/flatjson/value"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type flattenInput struct {
	Content            string `json:"content,omitempty"              jsonschema:"Inline document content (JSON or YAML). The root must be an object"`
	File               string `json:"file,omitempty"                 jsonschema:"Path to a JSON or YAML file on disk"`
	Separator          string `json:"separator,omitempty"            jsonschema:"String placed between key segments (default from FLATJSON_SEPARATOR, else .)"`
	AltArrayFlattening *bool  `json:"alt_array_flattening,omitempty" jsonschema:"Walk arrays nested directly inside arrays instead of keeping them whole"`
	PreserveArrays     bool   `json:"preserve_arrays,omitempty"      jsonschema:"Add array indices to keys (a.0.b) instead of collecting values per key"`
	Collision          string `json:"collision,omitempty"            jsonschema:"What to do when two paths produce the same key: overwrite (last wins) or merge (keep all values)"`
	NormalizeKeys      bool   `json:"normalize_keys,omitempty"       jsonschema:"Normalize key segments to Unicode NFC"`
	Format             string `json:"format,omitempty"               jsonschema:"Output format: json (default) or yaml"`
}

type flattenOutput struct {
	KeyCount     int    `json:"key_count"`
	Collisions   int    `json:"collisions"`
	SourceFormat string `json:"source_format"`
	Format       string `json:"format"`
	Document     string `json:"document"`
	Cached       bool   `json:"cached,omitempty"`
}

// flattenSettings is the fully resolved configuration of one tool call.
type flattenSettings struct {
	separator string
	alt       bool
	preserve  bool
	normalize bool
	collision flattener.CollisionPolicy
	maxDepth  int
}

// settings merges the call arguments over the server defaults.
func (in flattenInput) settings() (flattenSettings, error) {
	s := flattenSettings{
		separator: cfg.Separator,
		alt:       cfg.AltArrayFlattening,
		preserve:  in.PreserveArrays,
		normalize: in.NormalizeKeys,
		collision: cfg.Collision,
		maxDepth:  cfg.MaxDepth,
	}
	if in.Separator != "" {
		s.separator = in.Separator
	}
	if in.AltArrayFlattening != nil {
		s.alt = *in.AltArrayFlattening
	}
	if in.Collision != "" {
		policy, err := flattener.ParseCollisionPolicy(in.Collision)
		if err != nil {
			return flattenSettings{}, err
		}
		s.collision = policy
	}
	return s, nil
}

func (s flattenSettings) options() []flattener.Option {
	return []flattener.Option{
		flattener.WithSeparator(s.separator),
		flattener.WithAltArrayFlattening(s.alt),
		flattener.WithPreserveArrays(s.preserve),
		flattener.WithNormalizeKeys(s.normalize),
		flattener.WithCollisionPolicy(s.collision),
		flattener.WithMaxDepth(s.maxDepth),
	}
}

// fingerprint distinguishes setting combinations inside cache keys.
func (s flattenSettings) fingerprint() string {
	return strings.Join([]string{
		strconv.Quote(s.separator),
		strconv.FormatBool(s.alt),
		strconv.FormatBool(s.preserve),
		strconv.FormatBool(s.normalize),
		s.collision.String(),
		strconv.Itoa(s.maxDepth),
	}, "|")
}

func handleFlatten(_ context.Context, _ *mcp.CallToolRequest, input flattenInput) (*mcp.CallToolResult, flattenOutput, error) {
	doc := documentInput{File: input.File, Content: input.Content}
	if err := doc.validate(); err != nil {
		return errResult(err), flattenOutput{}, nil
	}

	format := strings.ToLower(input.Format)
	switch format {
	case "":
		format = "json"
	case "json", "yaml":
	default:
		return errResult(fmt.Errorf("invalid format %q, valid formats: json, yaml", input.Format)), flattenOutput{}, nil
	}

	settings, err := input.settings()
	if err != nil {
		return errResult(err), flattenOutput{}, nil
	}

	var key string
	if cfg.CacheEnabled {
		if docKey := doc.cacheKey(); docKey != "" {
			key = docKey + "|" + settings.fingerprint()
		}
	}

	result, cached := flattenCache.get(key)
	if !cached {
		result, err = flattener.FlattenWithOptions(append(settings.options(), doc.source())...)
		if err != nil {
			return errResult(err), flattenOutput{}, nil
		}
		flattenCache.put(key, result)
	}

	rendered, err := renderFlat(result.Flat, format)
	if err != nil {
		return errResult(err), flattenOutput{}, nil
	}

	return nil, flattenOutput{
		KeyCount:     result.KeyCount,
		Collisions:   result.Collisions,
		SourceFormat: string(result.SourceFormat),
		Format:       format,
		Document:     string(rendered),
		Cached:       cached,
	}, nil
}

func renderFlat(flat *value.Map, format string) ([]byte, error) {
	if format == "yaml" {
		return value.MarshalYAML(value.Object(flat))
	}
	return value.MarshalJSONIndent(value.Object(flat), "", "  ")
}
