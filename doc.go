// Package flatjson flattens nested JSON and YAML documents into a single
// level of separator-joined keys.
//
// # Overview
//
// A nested object such as
//
//	{"name": "John Doe", "address": {"city": "London"}, "phones": ["+44 1", "+44 2"]}
//
// becomes
//
//	{"name": "John Doe", "address.city": "London", "phones": ["+44 1", "+44 2"]}
//
// Object keys are joined with a separator ("." by default). Arrays never
// add a key segment: every scalar found below an array is gathered, per
// key, into an array of scalars. Objects inside arrays therefore merge
// field by field:
//
//	{"a": [{"b": 1}, {"b": 2}]}  ->  {"a.b": [1, 2]}
//
// # Packages
//
//   - value: the document tree (Value, Map) with order-preserving JSON and
//     YAML decoding and JSON, YAML and msgpack encoding
//   - flattener: the Flattener type, Flatten, and FlattenWithOptions
//   - flaterrors: typed errors shared by every package
//
// # Quick Start
//
//	import "github.com/erraggy/flatjson/flattener"
//
//	result, err := flattener.FlattenWithOptions(
//		flattener.WithFilePath("events.json"),
//		flattener.WithAltArrayFlattening(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d keys\n", result.KeyCount)
//
// # Command Line
//
// The flatjson command wraps the flattener:
//
//	flatjson flatten -separator _ -format yaml events.json
//	cat events.json | flatjson flatten -
//	flatjson mcp
//
// The mcp subcommand serves the same operation as a Model Context Protocol
// tool over stdio.
package flatjson
