// Package transcode is the type-directed conversion engine between
// schema-less document trees and typed Candid values.
//
// # Conversion model
//
// Both directions walk an IDL type and a value in lockstep, selecting a
// rule per type constructor and resolving named types through the
// environment carried in Options:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ document.Node ←─ Encoder ─ candid.Value ─ Decoder ─→ ... │
//	└──────────────────────────────────────────────────────────┘
//
//	Decoder   document → value; validating, every mismatch is a
//	          structured terminal error carrying the field path
//	Encoder   value → document; total, never fails
//
// # Decoder rules
//
//	named type     resolve against the environment, recurse
//	nat, int       number, or numeric string for values past float64
//	               precision
//	fixed ints     number within the target width; nat64 and int64 also
//	               accept a numeric string, matching the encoder's
//	               fallback past float64 precision
//	opt T          null becomes none, anything else recurses into T
//	vec T          list, element-wise; vec nat8 also accepts a hex or
//	               base64 string
//	record         object; absent non-option fields are errors, absent
//	               option fields become none; unknown keys are ignored
//	               unless Strict is set
//	variant        object with exactly one key naming the alternative
//
// # Encoder modes
//
// With a type (the "weak names" mode) record fields and variant cases
// emit their declared names, matched by structural hash when the value
// side carries only ids; byte vectors render per Options.Bytes. Without a
// type the value's own shape drives rendering: integers beyond ±(2^53-1)
// become strings to avoid silent precision loss, bare hashed ids become
// decimal string keys. On any disagreement between value and type the
// encoder downgrades to shape-driven rendering for that subtree rather
// than failing.
//
// # Argument tuples
//
// DecodeArgs requires a list of exactly the declared arity and converts
// each element independently. EncodeArgs pairs arguments with types
// positionally and downgrades to untyped rendering for any argument
// without one.
//
// # Concurrency
//
// Decoder and Encoder are stateless aside from the read-only Options and
// are safe for concurrent use.
package transcode
