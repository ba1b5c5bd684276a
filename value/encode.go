package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"go.yaml.in/yaml/v4"
)

// MarshalJSON implements json.Marshaler. Object keys are written in
// insertion order and numbers exactly as their literal.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for an object.
func (m *Map) MarshalJSON() ([]byte, error) {
	return Object(m).MarshalJSON()
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		// json.Number validates the literal.
		data, err := json.Marshal(json.Number(v.s))
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindString:
		data, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, k := range v.obj.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, v.obj.vals[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("value: unknown kind %d", v.kind)
	}
	return nil
}

// MarshalJSONIndent is like MarshalJSON with json.Indent applied.
func MarshalJSONIndent(v Value, prefix, indent string) ([]byte, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToAny converts v into the generic Go representation used by
// encoding/json: nil, bool, json.Number, string, []any and map[string]any.
// Object key order is lost.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(v.s)
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.ToAny()
		}
		return out
	case KindObject:
		return v.obj.ToAny()
	default:
		panic(fmt.Sprintf("value: unknown kind %d", v.kind))
	}
}

// ToAny converts the map into a map[string]any.
func (m *Map) ToAny() map[string]any {
	out := make(map[string]any, m.Len())
	for k, v := range m.All() {
		out[k] = v.ToAny()
	}
	return out
}

// ToYAMLNode converts v into a yaml.Node tree that marshals with object
// keys in insertion order.
func (v Value) ToYAMLNode() *yaml.Node {
	switch v.kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindNumber:
		tag := "!!int"
		if strings.ContainsAny(v.s, ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.s}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.arr {
			n.Content = append(n.Content, e.ToYAMLNode())
		}
		return n
	case KindObject:
		return v.obj.ToYAMLNode()
	default:
		panic(fmt.Sprintf("value: unknown kind %d", v.kind))
	}
}

// ToYAMLNode converts the map into an ordered YAML mapping node.
func (m *Map) ToYAMLNode() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range m.All() {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			v.ToYAMLNode(),
		)
	}
	return n
}

// MarshalYAML returns the YAML text of v with key order preserved.
func MarshalYAML(v Value) ([]byte, error) {
	return yaml.Marshal(v.ToYAMLNode())
}

var _ msgpack.CustomEncoder = Value{}
var _ msgpack.CustomEncoder = (*Map)(nil)

// EncodeMsgpack implements msgpack.CustomEncoder. Integer literals that fit
// 64 bits are encoded as integers, other numbers as float64.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch v.kind {
	case KindNull:
		return enc.EncodeNil()
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindNumber:
		if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return enc.EncodeInt(i)
		}
		if u, err := strconv.ParseUint(v.s, 10, 64); err == nil {
			return enc.EncodeUint(u)
		}
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return fmt.Errorf("value: number %q: %w", v.s, err)
		}
		return enc.EncodeFloat64(f)
	case KindString:
		return enc.EncodeString(v.s)
	case KindArray:
		if err := enc.EncodeArrayLen(len(v.arr)); err != nil {
			return err
		}
		for _, e := range v.arr {
			if err := e.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case KindObject:
		return v.obj.EncodeMsgpack(enc)
	default:
		return fmt.Errorf("value: unknown kind %d", v.kind)
	}
}

// EncodeMsgpack implements msgpack.CustomEncoder, writing keys in order.
func (m *Map) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(m.Len()); err != nil {
		return err
	}
	for k, v := range m.All() {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := v.EncodeMsgpack(enc); err != nil {
			return err
		}
	}
	return nil
}
