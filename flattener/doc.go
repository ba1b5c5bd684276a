// Package flattener converts nested JSON-model documents into flat
// mappings suitable for column-per-key stores such as Parquet or CSV.
//
// # Keys
//
// Every output key is the chain of object keys leading to a value, joined
// by a separator (default "."). Arrays never contribute a segment:
//
//	{"a": {"b": 1}}              ->  {"a.b": 1}
//	{"phones": ["x", "y"]}       ->  {"phones": ["x", "y"]}
//	{"a": [{"b": 1}, {"b": 2}]}  ->  {"a.b": [1, 2]}
//
// # Arrays
//
// Inside an array, writes become appends. Each key touched while walking
// an array collects every scalar that resolves to it, in depth-first,
// left-to-right order, and is stored as an array even when it holds a
// single element.
//
// By default an array found directly inside another array is kept whole
// as one element. With AltArrayFlattening it is walked instead, using the
// same key, so all scalars reachable from the outer array collapse onto
// the array's own key or onto one key per object field path:
//
//	{"a": [["b", "c"], {"d": "e"}, [{"h": "i"}, {"d": "j"}]]}
//	->  {"a": ["b", "c"], "a.d": ["e", "j"], "a.h": ["i"]}
//
// PreserveArrays replaces merging with index segments ("a.0.b").
//
// # Collisions
//
// Independent paths can produce the same key, e.g. {"a": {"b": 1}, "a.b": 2}.
// CollisionOverwrite (the default) keeps the last write; CollisionMerge
// keeps both as an array.
//
// # Usage
//
//	root, err := value.DecodeJSON(data)
//	if err != nil {
//		return err
//	}
//	flat, err := flattener.Flatten(root)
//
// or, decoding and configuring in one call:
//
//	result, err := flattener.FlattenWithOptions(
//		flattener.WithFilePath("events.yaml"),
//		flattener.WithSeparator("__"),
//		flattener.WithCollisionPolicy(flattener.CollisionMerge),
//	)
package flattener
