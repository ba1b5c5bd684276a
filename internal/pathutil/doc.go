// Package pathutil builds the flattened keys that name output columns.
//
// A flattened key is the ancestor object keys joined by a separator:
//
//	{"a": {"b": 1}}  ->  "a.b"
//
// [Key] is the builder: [Key.Child] is a pure function of the ancestor
// key, the segment and the separator. The root is kept distinct from a key
// made of the empty segment, so that {"": {"b": 1}} flattens to ".b"
// rather than "b".
//
// Segments are never escaped. A segment that contains the separator
// produces a key that cannot be split back unambiguously; [Split] only
// round-trips keys whose segments are separator-free.
package pathutil
