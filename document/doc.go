// Package document provides the schema-less value tree shared by both
// conversion directions, plus parsing and serialization.
//
// # The tree
//
// Node is a closed sum: Null, Bool, Number, String, List, Object. Numbers
// keep their lexical form so integers past float64 precision survive a
// parse/serialize round trip. Objects keep member order.
//
// # Input
//
// Both JSON and YAML input are parsed through the yaml.v3 node tree (JSON
// is a subset of YAML), which normalizes numeric and timestamp edge cases
// in one place. JSON input additionally passes through a JSONC filter, so
// comments and trailing commas are accepted.
//
// # Output
//
// EncodeJSON writes compact or indented JSON; numbers whose lexical form
// is not valid JSON (hex or inf/nan spellings from YAML input) are quoted.
// EncodeYAML writes YAML through the same yaml.v3 bridge.
package document
