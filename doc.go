// Package idljson converts between Candid-style IDL values and
// schema-less JSON/YAML documents.
//
// Conversion is type-directed: both directions walk an IDL type and a
// value in lockstep, resolving named types through a type environment
// parsed from .did schema text. The document-to-value direction
// validates and can fail; the value-to-document direction always
// produces a rendering.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	idljson/             Root package with the convenience conversion API
//	├── candid/          IDL type system, typed values, type environment,
//	│                    principal text codec, textual value printer
//	├── did/             Parsers for .did schema text, type expressions,
//	│                    and the textual value grammar "(v1, v2)"
//	├── document/        Schema-less document trees; JSON/JSONC/YAML
//	│                    parsing and serialization
//	├── transcode/       The conversion engine: document→value decoder,
//	│                    value→document encoder, presentation options
//	├── errors/          Structured error types with field paths
//	├── cli/             Orchestration: schema loading and the flag
//	│                    decision table shared by both commands
//	└── cmd/
//	    ├── idl2json/    Candid text on stdin → JSON/YAML on stdout
//	    └── json2idl/    JSON/YAML on stdin → candid text on stdout
//
// # Quick Start
//
// Render candid argument text as JSON:
//
//	out, err := idljson.IDL2JSON(`(record { name = "Al"; age = 30 })`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out) // {"age":30,"name":"Al"}
//
// Construct candid text from JSON against a schema type:
//
//	env, err := did.ParseDID(schemaText)
//	out, err := idljson.JSON2IDL(`{"name":"Al","age":30}`, env, "Person")
//	fmt.Println(out) // (record { age = 30 : nat8; name = "Al" })
//
// The cli package exposes the full option surface (schema files, init
// arguments, byte formats, strict mode) behind the same decision table
// the commands use; transcode exposes the engine itself for callers
// that already hold parsed trees.
//
// # Numeric Fidelity
//
// Document numbers are carried in lexical form end to end. Integers
// beyond ±(2^53−1) render as JSON strings rather than numbers, and
// numeric strings are accepted back for the arbitrary-precision nat and
// int types, so round trips never silently lose precision to float64.
//
// # Thread Safety
//
// Environments, options, decoders and encoders are read-only after
// construction and safe for concurrent use. Each conversion is a pure
// function of its inputs.
package idljson
