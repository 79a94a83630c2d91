// Package did parses Candid textual syntax: .did schema files into type
// environments, type literals, and the textual value grammar.
//
// Three entry points cover the schema side:
//
//	ParseDID    a full schema: type definitions plus an optional service
//	            (actor) clause with init arguments
//	ParseType   a single type expression, e.g. "record { name : text }"
//	ParseTypes  a parenthesized tuple of types, e.g. "(nat, opt text)"
//
// and one the value side:
//
//	ParseArgs   an argument tuple in the value grammar, e.g.
//	            `(record { name = "Al" }, 42 : nat8)`
//
// The parsers cover the subset of the Candid grammar the conversion tools
// consume: primitives, opt/vec/blob, record/variant with named, quoted and
// numeric labels, func and service types, principal literals, numeric
// literals with underscores and type annotations, and nested comments.
//
// Printing is the inverse of ParseArgs and lives in the candid package.
package did
