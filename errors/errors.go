package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse   Phase = "parse"   // schema / value / document text parsing
	PhaseResolve Phase = "resolve" // named-type resolution against the environment
	PhaseDecode  Phase = "decode"  // document to IDL value
	PhaseEncode  Phase = "encode"  // IDL value to document
	PhaseLoad    Phase = "load"    // schema file loading
)

// Kind categorizes the error
type Kind string

const (
	KindMalformedInput Kind = "malformed_input"
	KindUnknownType    Kind = "unknown_type"
	KindTypeMismatch   Kind = "type_mismatch"
	KindOutOfRange     Kind = "out_of_range"
	KindMissingField   Kind = "missing_field"
	KindUnknownField   Kind = "unknown_field"
	KindUnknownVariant Kind = "unknown_variant"
	KindArityMismatch  Kind = "arity_mismatch"
	KindNoInitArgs     Kind = "no_init_args"
	KindIO             Kind = "io"
	KindInvalidInput   Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause   error
	Phase   Phase
	Kind    Kind
	DocKind string // document value kind (null, bool, number, string, list, object)
	IDLType string // candid type the conversion targeted
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.DocKind != "" || e.IDLType != "" {
		b.WriteString(": ")
		if e.DocKind != "" && e.IDLType != "" {
			b.WriteString("document ")
			b.WriteString(e.DocKind)
			b.WriteString(", candid type ")
			b.WriteString(e.IDLType)
		} else if e.DocKind != "" {
			b.WriteString("document ")
			b.WriteString(e.DocKind)
		} else {
			b.WriteString("candid type ")
			b.WriteString(e.IDLType)
		}
	}

	if e.Detail != "" {
		if e.DocKind != "" || e.IDLType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// DocKind sets the document value kind
func (b *Builder) DocKind(k string) *Builder {
	b.err.DocKind = k
	return b
}

// IDLType sets the candid type name
func (b *Builder) IDLType(t string) *Builder {
	b.err.IDLType = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(path []string, docKind, idlType string) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindTypeMismatch,
		Path:    path,
		DocKind: docKind,
		IDLType: idlType,
	}
}

// OutOfRange creates a numeric overflow error
func OutOfRange(path []string, value, targetType string) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindOutOfRange,
		Path:    path,
		IDLType: targetType,
		Detail:  fmt.Sprintf("value %s does not fit %s", value, targetType),
	}
}

// MissingField creates a missing record field error
func MissingField(path []string, fieldName string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMissingField,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// UnknownField creates an unknown record field error
func UnknownField(path []string, fieldName string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownField,
		Path:   path,
		Detail: fmt.Sprintf("unknown field %q", fieldName),
	}
}

// UnknownVariant creates an undeclared variant alternative error
func UnknownVariant(path []string, name, variantType string) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindUnknownVariant,
		Path:    path,
		IDLType: variantType,
		Detail:  fmt.Sprintf("%q is not an alternative", name),
	}
}

// ArityMismatch creates an argument-count error
func ArityMismatch(want, got int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindArityMismatch,
		Detail: fmt.Sprintf("expected %d argument(s) but got %d", want, got),
	}
}

// UnknownTypeName creates an unresolved type reference error
func UnknownTypeName(phase Phase, path []string, name string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindUnknownType,
		Path:    path,
		IDLType: name,
		Detail:  fmt.Sprintf("type %q is not defined", name),
	}
}

// NoInitArgs creates an error for init-argument lookup on a schema without one
func NoInitArgs(detail string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindNoInitArgs,
		Detail: detail,
	}
}

// MalformedInput creates a text parsing error
func MalformedInput(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedInput,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// IO creates a file access error
func IO(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
