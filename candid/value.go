package candid

import "math/big"

// Value is the closed sum over typed Candid values. A Value produced
// against a Type is shape-compatible with it; values parsed from text
// without annotations may carry the weaker Number form.
type Value interface {
	isValue()
}

// NullValue is the null value.
type NullValue struct{}

// ReservedValue is a value of type reserved.
type ReservedValue struct{}

// BoolValue is a bool.
type BoolValue bool

// NatValue is an arbitrary-precision non-negative integer.
type NatValue struct {
	Big *big.Int
}

// IntValue is an arbitrary-precision signed integer.
type IntValue struct {
	Big *big.Int
}

// Fixed-width numerics.
type (
	Nat8Value    uint8
	Nat16Value   uint16
	Nat32Value   uint32
	Nat64Value   uint64
	Int8Value    int8
	Int16Value   int16
	Int32Value   int32
	Int64Value   int64
	Float32Value float32
	Float64Value float64
)

// TextValue is a text string.
type TextValue string

// NumberValue is an unannotated numeric literal kept in lexical form. It
// appears only in value trees parsed from text without enough type
// information to commit to a width.
type NumberValue string

// NoneValue is the absent option value.
type NoneValue struct{}

// OptValue is a present option value.
type OptValue struct {
	Elem Value
}

// VecValue is an ordered sequence.
type VecValue struct {
	Elems []Value
}

// FieldValue is one labelled component of a record value.
type FieldValue struct {
	Value Value
	Label Label
}

// RecordValue is a record. Fields are kept sorted by label id, the
// canonical Candid field order.
type RecordValue struct {
	Fields []FieldValue
}

// VariantValue is a variant with its selected alternative.
type VariantValue struct {
	Value Value
	Label Label
}

// PrincipalValue is a principal reference.
type PrincipalValue struct {
	Principal Principal
}

// ServiceValue is a service reference.
type ServiceValue struct {
	Principal Principal
}

// FuncValue is a function reference.
type FuncValue struct {
	Method    string
	Principal Principal
}

func (NullValue) isValue()      {}
func (ReservedValue) isValue()  {}
func (BoolValue) isValue()      {}
func (NatValue) isValue()       {}
func (IntValue) isValue()       {}
func (Nat8Value) isValue()      {}
func (Nat16Value) isValue()     {}
func (Nat32Value) isValue()     {}
func (Nat64Value) isValue()     {}
func (Int8Value) isValue()      {}
func (Int16Value) isValue()     {}
func (Int32Value) isValue()     {}
func (Int64Value) isValue()     {}
func (Float32Value) isValue()   {}
func (Float64Value) isValue()   {}
func (TextValue) isValue()      {}
func (NumberValue) isValue()    {}
func (NoneValue) isValue()      {}
func (OptValue) isValue()       {}
func (VecValue) isValue()       {}
func (RecordValue) isValue()    {}
func (VariantValue) isValue()   {}
func (PrincipalValue) isValue() {}
func (ServiceValue) isValue()   {}
func (FuncValue) isValue()      {}

// Field returns the record field with the given label id.
func (r RecordValue) Field(id uint32) (FieldValue, bool) {
	for _, f := range r.Fields {
		if f.Label.ID == id {
			return f, true
		}
	}
	return FieldValue{}, false
}

// IsBytes reports whether every element of the vector is a nat8, making
// the vector eligible for blob presentation.
func (v VecValue) IsBytes() bool {
	if len(v.Elems) == 0 {
		return false
	}
	for _, e := range v.Elems {
		if _, ok := e.(Nat8Value); !ok {
			return false
		}
	}
	return true
}

// Bytes flattens a vector of nat8 values. Callers should check IsBytes
// first; non-byte elements are skipped.
func (v VecValue) Bytes() []byte {
	out := make([]byte, 0, len(v.Elems))
	for _, e := range v.Elems {
		if b, ok := e.(Nat8Value); ok {
			out = append(out, byte(b))
		}
	}
	return out
}
