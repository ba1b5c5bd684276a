package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/flatjson/flaterrors"
	"github.com/erraggy/flatjson/internal/maputil"
)

// DefaultMaxDepth is the nesting limit applied when DecodeOptions.MaxDepth
// is zero.
const DefaultMaxDepth = 10000

const (
	minNodeBudget    = 1 << 16
	nodesPerYAMLNode = 16
)

// DecodeOptions bounds the trees built by the decoders.
type DecodeOptions struct {
	// MaxDepth is the deepest nesting level accepted, with the root at
	// depth 0. Zero or less selects DefaultMaxDepth.
	MaxDepth int
	// MaxNodes caps the values built from a YAML document, where every
	// alias expansion counts again. Zero or less selects a budget
	// proportional to the size of the parsed document.
	MaxNodes int
}

func (o DecodeOptions) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func depthError(limit, depth int) error {
	return &flaterrors.ResourceLimitError{
		ResourceType: "nesting_depth",
		Limit:        int64(limit),
		Actual:       int64(depth),
	}
}

func isLimitError(err error) bool {
	var limitErr *flaterrors.ResourceLimitError
	return errors.As(err, &limitErr)
}

// Decode decodes data in the given format. SourceFormatUnknown detects the
// format from the content. It returns the format that was actually used.
func Decode(data []byte, format SourceFormat) (Value, SourceFormat, error) {
	return DecodeWithOptions(data, format, DecodeOptions{})
}

// DecodeWithOptions is like Decode with explicit limits. Exceeding a limit
// returns a *flaterrors.ResourceLimitError.
func DecodeWithOptions(data []byte, format SourceFormat, opts DecodeOptions) (Value, SourceFormat, error) {
	if format == SourceFormatUnknown {
		format = DetectFormatFromContent(data)
	}
	switch format {
	case SourceFormatJSON:
		v, err := decodeJSON(bytes.NewReader(data), opts)
		return v, format, err
	case SourceFormatYAML:
		v, err := decodeYAML(data, opts)
		return v, format, err
	default:
		return Value{}, format, &flaterrors.ParseError{Message: "empty document"}
	}
}

// DecodeJSON decodes a single JSON document, keeping object key order and
// number literals exactly as written. Duplicate keys keep the position of
// the first occurrence and the value of the last. Nesting deeper than
// DefaultMaxDepth is rejected.
func DecodeJSON(data []byte) (Value, error) {
	return decodeJSON(bytes.NewReader(data), DecodeOptions{})
}

// DecodeJSONReader is like DecodeJSON but reads from r.
func DecodeJSONReader(r io.Reader) (Value, error) {
	return decodeJSON(r, DecodeOptions{})
}

func decodeJSON(r io.Reader, opts DecodeOptions) (Value, error) {
	d := &jsonDecoder{dec: json.NewDecoder(r), maxDepth: opts.maxDepth()}
	d.dec.UseNumber()

	v, err := d.value(0)
	if err != nil {
		if isLimitError(err) {
			return Value{}, err
		}
		if errors.Is(err, io.EOF) {
			msg := "unexpected end of input"
			if d.dec.InputOffset() == 0 {
				msg = "empty document"
			}
			return Value{}, &flaterrors.ParseError{Format: "json", Message: msg}
		}
		return Value{}, &flaterrors.ParseError{Format: "json", Offset: d.dec.InputOffset(), Cause: err}
	}

	if _, err := d.dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, &flaterrors.ParseError{
			Format:  "json",
			Offset:  d.dec.InputOffset(),
			Message: "unexpected data after top-level value",
			Cause:   err,
		}
	}
	return v, nil
}

type jsonDecoder struct {
	dec      *json.Decoder
	maxDepth int
}

func (d *jsonDecoder) value(depth int) (Value, error) {
	if depth > d.maxDepth {
		return Value{}, depthError(d.maxDepth, depth)
	}

	tok, err := d.dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return d.object(depth)
		case '[':
			return d.array(depth)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func (d *jsonDecoder) object(depth int) (Value, error) {
	m := NewMap(0)
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %T, want string", tok)
		}
		child, err := d.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		m.Set(key, child)
	}
	// closing '}'
	if _, err := d.dec.Token(); err != nil {
		return Value{}, err
	}
	return Object(m), nil
}

func (d *jsonDecoder) array(depth int) (Value, error) {
	elems := []Value{}
	for d.dec.More() {
		child, err := d.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, child)
	}
	// closing ']'
	if _, err := d.dec.Token(); err != nil {
		return Value{}, err
	}
	return Array(elems...), nil
}

// DecodeYAML decodes the first YAML document in data. Mapping order is
// kept, aliases are expanded, and scalars are typed by their resolved tag.
// The default limits of DecodeOptions apply.
func DecodeYAML(data []byte) (Value, error) {
	return decodeYAML(data, DecodeOptions{})
}

func decodeYAML(data []byte, opts DecodeOptions) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, &flaterrors.ParseError{Format: "yaml", Cause: err}
	}
	if doc.Kind == 0 {
		return Value{}, &flaterrors.ParseError{Format: "yaml", Message: "empty document"}
	}
	v, err := newYAMLConverter(&doc, opts).convert(&doc, 0)
	if err != nil {
		if isLimitError(err) {
			return Value{}, err
		}
		return Value{}, &flaterrors.ParseError{Format: "yaml", Cause: err}
	}
	return v, nil
}

// FromYAMLNode converts a yaml.Node tree into a Value under the default
// limits of DecodeOptions.
func FromYAMLNode(n *yaml.Node) (Value, error) {
	return newYAMLConverter(n, DecodeOptions{}).convert(n, 0)
}

// yamlConverter counts every value it builds. Aliases are expanded in
// place, so a small document can describe an exponentially large tree.
type yamlConverter struct {
	maxDepth int
	budget   int
	built    int
}

func newYAMLConverter(root *yaml.Node, opts DecodeOptions) *yamlConverter {
	budget := opts.MaxNodes
	if budget <= 0 {
		budget = minNodeBudget + nodesPerYAMLNode*countYAMLNodes(root)
	}
	return &yamlConverter{maxDepth: opts.maxDepth(), budget: budget}
}

// countYAMLNodes counts the nodes of the parsed tree without following
// aliases.
func countYAMLNodes(root *yaml.Node) int {
	count := 0
	stack := []*yaml.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		count++
		stack = append(stack, n.Content...)
	}
	return count
}

func (c *yamlConverter) convert(n *yaml.Node, depth int) (Value, error) {
	if n == nil {
		return Null(), nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return c.convert(n.Content[0], depth)
	case yaml.AliasNode:
		return c.convert(n.Alias, depth)
	}

	if depth > c.maxDepth {
		return Value{}, depthError(c.maxDepth, depth)
	}
	c.built++
	if c.built > c.budget {
		return Value{}, &flaterrors.ResourceLimitError{
			ResourceType: "yaml_nodes",
			Limit:        int64(c.budget),
			Actual:       int64(c.built),
		}
	}

	switch n.Kind {
	case yaml.MappingNode:
		m := NewMap(len(n.Content) / 2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind == yaml.AliasNode {
				keyNode = keyNode.Alias
			}
			if keyNode == nil || keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: mapping key must be a scalar", n.Content[i].Line)
			}
			child, err := c.convert(n.Content[i+1], depth+1)
			if err != nil {
				return Value{}, err
			}
			m.Set(keyNode.Value, child)
		}
		return Object(m), nil

	case yaml.SequenceNode:
		elems := make([]Value, 0, len(n.Content))
		for _, e := range n.Content {
			child, err := c.convert(e, depth+1)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, child)
		}
		return Array(elems...), nil

	case yaml.ScalarNode:
		return fromYAMLScalar(n)

	default:
		return Value{}, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return Number(json.Number(strconv.FormatUint(u, 10))), nil
		}
		// Out of range for 64 bits; keep the text.
		return String(n.Value), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return String(n.Value), nil
		}
		return Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text.
		return String(n.Value), nil
	}
}

// FromAny converts a generic Go tree, as produced by encoding/json or a
// YAML library, into a Value. Keys of Go maps carry no order and are
// sorted so the result is deterministic.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Map:
		return Object(t), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case float64:
		return Float(t), nil
	case float32:
		return Float(float64(t)), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Number(json.Number(strconv.FormatUint(uint64(t), 10))), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return Number(json.Number(strconv.FormatUint(uint64(t), 10))), nil
	case []any:
		elems := make([]Value, 0, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			elems = append(elems, v)
		}
		return Array(elems...), nil
	case map[string]any:
		m := NewMap(len(t))
		for _, k := range maputil.SortedKeys(t) {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			m.Set(k, v)
		}
		return Object(m), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported type %T", x)
	}
}
