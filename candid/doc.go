// Package candid defines the Candid IDL type system and typed value trees.
//
// # Types
//
// Type is a closed sum over the Candid type constructors:
//
//	PrimType      bool, nat, int, nat8..nat64, int8..int64,
//	              float32, float64, text, null, reserved, empty, principal
//	OptType       opt T
//	VecType       vec T
//	RecordType    record { field : T; ... }
//	VariantType   variant { case : T; ... }
//	FuncType      func (args) -> (rets) annotations
//	ServiceType   service { method : func ... }
//	NamedType     a symbolic reference resolved against an Env
//
// A NamedType is only meaningful relative to an Env, the resolved set of
// type definitions produced by parsing one schema source.
//
// # Values
//
// Value mirrors Type's shape but carries data. Record fields and variant
// cases are identified by Label: a declared name, or the 32-bit structural
// hash of one when only the wire form is known. Nat and Int carry
// arbitrary-precision integers.
//
// # Text forms
//
// FormatArgs and Value.String render values in the Candid textual value
// syntax. Principal implements the standard textual encoding (CRC-32
// checksum, base32, dash-grouped). Parsing of schema and value text lives
// in the did package.
package candid
