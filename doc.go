/*
Package jsonvalue implements a strict RFC 8259 JSON parser, value model,
and serializer.

Like the teacher package this one grew out of, jsonvalue is centered
around a tree model — Value — rather than streaming into a fixed Go
struct. A Value can be built by parsing (Parse, ParseWithConfig), by
reflecting over a Go value (NewJSONGo, Marshal), or by hand (Null, Bool,
Int, Float64, String, Array, Object), and read back out with JSON2Go,
Unmarshal, or the GetChild/SetChild/RemoveChild path API.

Parsing is fail-fast: the first malformed byte stops the scan and is
reported as an error wrapping a *ParseError (reachable through the
wrapper's Cause method) carrying a Status drawn from the fixed
enumeration in errors.go, along with the line and column of the failure.
*/
package jsonvalue // import "github.com/d1ced/jsonvalue"
