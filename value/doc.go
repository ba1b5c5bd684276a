// Package value models the JSON data model as a closed tagged union.
//
// A [Value] is exactly one of null, boolean, number, string, array, or
// object. Objects are represented by [Map], which keeps keys unique and
// remembers insertion order, so a document decoded from text iterates in
// the same order it was written. That order is what makes flattened output
// deterministic.
//
// # Building values
//
// Values are immutable once built and are usually produced by a decoder:
//
//	v, err := value.DecodeJSON([]byte(`{"a": {"b": 1}}`))
//	v, err := value.DecodeYAML(data)
//	v, err := value.FromAny(map[string]any{"a": 1})
//
// or assembled directly:
//
//	m := value.NewMap(2)
//	m.Set("name", value.String("Ada"))
//	m.Set("tags", value.Array(value.String("x"), value.String("y")))
//	v := value.Object(m)
//
// # Limits
//
// Decoders reject documents nested deeper than [DefaultMaxDepth], and YAML
// documents whose aliases expand beyond a node budget. Both fail with a
// *flaterrors.ResourceLimitError; [DecodeWithOptions] adjusts the limits.
//
// # Dispatching on the variant
//
// Switch on [Value.Kind] and handle every [Kind]:
//
//	switch v.Kind() {
//	case value.KindNull, value.KindBool, value.KindNumber, value.KindString:
//	case value.KindArray:
//	case value.KindObject:
//	}
//
// # Encoding
//
// [Value] and [Map] implement [encoding/json.Marshaler] with source order
// preserved, convert to an ordered yaml.Node via [Value.ToYAMLNode], and
// implement the msgpack CustomEncoder interface.
package value
