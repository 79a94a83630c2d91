package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:   PhaseDecode,
				Kind:    KindTypeMismatch,
				Path:    []string{"user", "address", "zip"},
				DocKind: "string",
				IDLType: "nat32",
				Detail:  "cannot convert",
			},
			contains: []string{"[decode]", "type_mismatch", "user.address.zip", "string", "nat32", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindArityMismatch,
			},
			contains: []string{"[decode]", "arity_mismatch"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindIO,
				Detail: "read schema",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "io", "read schema", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindMalformedInput,
		Cause: cause,
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	a := MissingField([]string{"user"}, "age")
	b := &Error{Phase: PhaseDecode, Kind: KindMissingField}
	c := &Error{Phase: PhaseDecode, Kind: KindUnknownVariant}

	if !errors.Is(a, b) {
		t.Error("errors with the same Phase and Kind should match")
	}
	if errors.Is(a, c) {
		t.Error("errors with different Kind should not match")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseDecode, KindOutOfRange).
		Path("stats", "count").
		IDLType("nat8").
		Detail("value %d does not fit", 300).
		Build()

	if err.Phase != PhaseDecode || err.Kind != KindOutOfRange {
		t.Fatalf("builder lost phase/kind: %+v", err)
	}
	msg := err.Error()
	for _, s := range []string{"stats.count", "nat8", "300"} {
		if !strings.Contains(msg, s) {
			t.Errorf("error message %q does not contain %q", msg, s)
		}
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		kind Kind
	}{
		{TypeMismatch(nil, "list", "record"), KindTypeMismatch},
		{OutOfRange(nil, "300", "nat8"), KindOutOfRange},
		{MissingField(nil, "age"), KindMissingField},
		{UnknownField(nil, "extra"), KindUnknownField},
		{UnknownVariant(nil, "bad", "variant { ok; err }"), KindUnknownVariant},
		{ArityMismatch(2, 3), KindArityMismatch},
		{UnknownTypeName(PhaseResolve, nil, "Account"), KindUnknownType},
		{NoInitArgs("no service"), KindNoInitArgs},
		{MalformedInput("candid values", errors.New("bad token")), KindMalformedInput},
		{IO("read x.did", errors.New("no such file")), KindIO},
	}
	for _, tt := range tests {
		if tt.err.Kind != tt.kind {
			t.Errorf("constructor produced kind %q, want %q", tt.err.Kind, tt.kind)
		}
		if tt.err.Error() == "" {
			t.Error("empty error message")
		}
	}
}
