package candid

import (
	"strconv"
	"strings"
)

// Prim enumerates the primitive type constructors.
type Prim int

const (
	PrimNull Prim = iota
	PrimBool
	PrimNat
	PrimInt
	PrimNat8
	PrimNat16
	PrimNat32
	PrimNat64
	PrimInt8
	PrimInt16
	PrimInt32
	PrimInt64
	PrimFloat32
	PrimFloat64
	PrimText
	PrimReserved
	PrimEmpty
	PrimPrincipal
)

var primNames = map[Prim]string{
	PrimNull:      "null",
	PrimBool:      "bool",
	PrimNat:       "nat",
	PrimInt:       "int",
	PrimNat8:      "nat8",
	PrimNat16:     "nat16",
	PrimNat32:     "nat32",
	PrimNat64:     "nat64",
	PrimInt8:      "int8",
	PrimInt16:     "int16",
	PrimInt32:     "int32",
	PrimInt64:     "int64",
	PrimFloat32:   "float32",
	PrimFloat64:   "float64",
	PrimText:      "text",
	PrimReserved:  "reserved",
	PrimEmpty:     "empty",
	PrimPrincipal: "principal",
}

func (p Prim) String() string {
	if s, ok := primNames[p]; ok {
		return s
	}
	return "prim(" + strconv.Itoa(int(p)) + ")"
}

// PrimFromName maps a keyword to its primitive constructor.
func PrimFromName(name string) (Prim, bool) {
	for p, s := range primNames {
		if s == name {
			return p, true
		}
	}
	return 0, false
}

// Type is the closed sum over Candid type constructors.
type Type interface {
	isType()
	String() string
}

// PrimType is a primitive type.
type PrimType struct {
	Prim Prim
}

func (PrimType) isType() {}

func (t PrimType) String() string { return t.Prim.String() }

// OptType is opt T.
type OptType struct {
	Elem Type
}

func (OptType) isType() {}

func (t OptType) String() string { return "opt " + t.Elem.String() }

// VecType is vec T.
type VecType struct {
	Elem Type
}

func (VecType) isType() {}

func (t VecType) String() string { return "vec " + t.Elem.String() }

// Field is a labelled component of a record or variant type.
type Field struct {
	Type  Type
	Label Label
}

// RecordType is record { fields }. Field order follows the declaration.
type RecordType struct {
	Fields []Field
}

func (RecordType) isType() {}

func (t RecordType) String() string { return fieldList("record", t.Fields) }

// VariantType is variant { cases }. Cases without a declared payload carry
// the null primitive type.
type VariantType struct {
	Cases []Field
}

func (VariantType) isType() {}

func (t VariantType) String() string { return fieldList("variant", t.Cases) }

// FuncType is a method signature.
type FuncType struct {
	Args        []Type
	Rets        []Type
	Annotations []string // query, oneway, composite_query
}

func (FuncType) isType() {}

func (t FuncType) String() string {
	var b strings.Builder
	b.WriteString("func ")
	writeTuple(&b, t.Args)
	b.WriteString(" -> ")
	writeTuple(&b, t.Rets)
	for _, a := range t.Annotations {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	return b.String()
}

// Method is one named signature of a service. Type is a FuncType or a
// NamedType referring to one.
type Method struct {
	Name string
	Type Type
}

// ServiceType is service { methods }.
type ServiceType struct {
	Methods []Method
}

func (ServiceType) isType() {}

func (t ServiceType) String() string {
	var b strings.Builder
	b.WriteString("service {")
	for _, m := range t.Methods {
		b.WriteByte(' ')
		b.WriteString(m.Name)
		b.WriteString(" : ")
		b.WriteString(strings.TrimPrefix(m.Type.String(), "func "))
		b.WriteByte(';')
	}
	b.WriteString(" }")
	return b.String()
}

// NamedType is a symbolic reference into a type environment.
type NamedType struct {
	Name string
}

func (NamedType) isType() {}

func (t NamedType) String() string { return t.Name }

func fieldList(keyword string, fields []Field) string {
	var b strings.Builder
	b.WriteString(keyword)
	b.WriteString(" {")
	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f.Label.String())
		if pt, ok := f.Type.(PrimType); !ok || pt.Prim != PrimNull || keyword == "record" {
			b.WriteString(" : ")
			b.WriteString(f.Type.String())
		}
		b.WriteByte(';')
	}
	b.WriteString(" }")
	return b.String()
}

func writeTuple(b *strings.Builder, types []Type) {
	b.WriteByte('(')
	for i, t := range types {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteByte(')')
}
