// Package errors provides structured error types for the idljson module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, document/candid type names, and
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("user", "age").
//		DocKind("string").
//		IDLType("nat").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(path, "string", "nat")
//	err := errors.MissingField(path, "age")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
