// Package jsonkit provides:
//
// - A closed tagged-union Value model for JSON data with exact numeric
//   variants (Int32/Int64/Float32/Float64/Decimal/BigInt)
// - A lax recursive-descent parser (dangling trailing commas, values
//   embedded after a protocol preamble via a start offset)
// - Null-safe, default-valued typed readers over Value trees
// - Order-preserving map/array builders for deterministic serialization
//
// Design policy:
// - Keep the public API in the root package; converters live in sibling
//   packages (yamlconv) and the CLI under cmd/jsonkit.
// - A Value never widens implicitly: reading an Int64 as Int32 through
//   the model accessors yields absent. The accessor library performs
//   documented range-limited widening on top.
// - Immutable leaves (including the shared Null/True/False) may be read
//   concurrently; Map/Array containers are not synchronized and belong
//   to one goroutine while mutated.
//
// Typical usage:
//
//	v, err := jsonkit.Parse(data)
//	name, _ := jsonkit.ReadString(v, "name")
//	n := jsonkit.ReadInt64Default(v, "num_replicas", 1)
//
//	body := jsonkit.NewMapBuilder().
//		Put("subject", subject).
//		Put("config", cfgBuilder).
//		JSON()
package jsonkit
