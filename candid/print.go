package candid

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatArgs renders an argument tuple in the Candid textual value syntax:
// "(v1, v2, ...)".
func FormatArgs(args []Value) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		writeValue(&b, v)
	}
	b.WriteByte(')')
	return b.String()
}

// Format renders a single value in the Candid textual value syntax.
func Format(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v := v.(type) {
	case NullValue, NoneValue, ReservedValue:
		b.WriteString("null")
	case BoolValue:
		b.WriteString(strconv.FormatBool(bool(v)))
	case NatValue:
		b.WriteString(v.Big.String())
	case IntValue:
		b.WriteString(v.Big.String())
	case Nat8Value:
		fmt.Fprintf(b, "%d : nat8", uint8(v))
	case Nat16Value:
		fmt.Fprintf(b, "%d : nat16", uint16(v))
	case Nat32Value:
		fmt.Fprintf(b, "%d : nat32", uint32(v))
	case Nat64Value:
		fmt.Fprintf(b, "%d : nat64", uint64(v))
	case Int8Value:
		fmt.Fprintf(b, "%d : int8", int8(v))
	case Int16Value:
		fmt.Fprintf(b, "%d : int16", int16(v))
	case Int32Value:
		fmt.Fprintf(b, "%d : int32", int32(v))
	case Int64Value:
		fmt.Fprintf(b, "%d : int64", int64(v))
	case Float32Value:
		b.WriteString(formatFloat(float64(v), 32))
		b.WriteString(" : float32")
	case Float64Value:
		b.WriteString(formatFloat(float64(v), 64))
	case NumberValue:
		b.WriteString(string(v))
	case TextValue:
		writeText(b, string(v))
	case OptValue:
		b.WriteString("opt ")
		writeValue(b, v.Elem)
	case VecValue:
		writeVec(b, v)
	case RecordValue:
		writeRecord(b, v)
	case VariantValue:
		b.WriteString("variant { ")
		b.WriteString(v.Label.String())
		if _, isNull := v.Value.(NullValue); !isNull {
			b.WriteString(" = ")
			writeValue(b, v.Value)
		}
		b.WriteString(" }")
	case PrincipalValue:
		fmt.Fprintf(b, "principal %q", v.Principal.String())
	case ServiceValue:
		fmt.Fprintf(b, "service %q", v.Principal.String())
	case FuncValue:
		fmt.Fprintf(b, "func %q.%s", v.Principal.String(), quoteMethod(v.Method))
	}
}

func writeVec(b *strings.Builder, v VecValue) {
	if v.IsBytes() {
		writeBlob(b, v.Bytes())
		return
	}
	if len(v.Elems) == 0 {
		b.WriteString("vec {}")
		return
	}
	b.WriteString("vec { ")
	for i, e := range v.Elems {
		if i > 0 {
			b.WriteString("; ")
		}
		writeValue(b, e)
	}
	b.WriteString(" }")
}

func writeRecord(b *strings.Builder, r RecordValue) {
	if len(r.Fields) == 0 {
		b.WriteString("record {}")
		return
	}
	b.WriteString("record { ")
	tuple := isTuple(r)
	for i, f := range r.Fields {
		if i > 0 {
			b.WriteString("; ")
		}
		if !tuple {
			b.WriteString(f.Label.String())
			b.WriteString(" = ")
		}
		writeValue(b, f.Value)
	}
	b.WriteString(" }")
}

// isTuple reports whether the record's labels are exactly the indices
// 0..n-1, in which case the textual form omits them.
func isTuple(r RecordValue) bool {
	for i, f := range r.Fields {
		if f.Label.Name != "" || f.Label.ID != uint32(i) {
			return false
		}
	}
	return true
}

func writeBlob(b *strings.Builder, data []byte) {
	b.WriteString(`blob "`)
	for _, c := range data {
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(b, "\\%02x", c)
		}
	}
	b.WriteByte('"')
}

func writeText(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, "\\u{%x}", r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

// formatFloat keeps a decimal point or exponent in the output so the text
// re-parses as a float rather than an integer.
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") && !strings.ContainsAny(s, "nN") {
		s += ".0"
	}
	return s
}

// quoteMethod quotes a method name unless it is a plain identifier.
func quoteMethod(name string) string {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return strconv.Quote(name)
		}
	}
	if name == "" {
		return `""`
	}
	return name
}
