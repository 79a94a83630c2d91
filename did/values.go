package did

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/wippyai/idljson/candid"
	"github.com/wippyai/idljson/errors"
)

// ParseArgs parses an argument tuple in the Candid textual value grammar:
// "(v1, v2, ...)". Numeric literals without a type annotation stay in
// lexical form (candid.NumberValue); annotated literals are committed to
// the annotated width immediately.
func ParseArgs(source string) ([]candid.Value, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, errors.MalformedInput("candid values", err)
	}
	args, err := p.parseArgs()
	if err == nil {
		err = p.expectEOF()
	}
	if err != nil {
		return nil, errors.MalformedInput("candid values", err)
	}
	return args, nil
}

func (p *parser) parseArgs() ([]candid.Value, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []candid.Value
	for !p.isPunct(")") {
		v, err := p.parseAnnotatedValue()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		if !p.acceptPunct(",") {
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseAnnotatedValue parses a value with an optional ": type" suffix.
func (p *parser) parseAnnotatedValue() (candid.Value, error) {
	line := p.peek().line
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.acceptPunct(":") {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		coerced, err := annotate(v, t)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		return coerced, nil
	}
	return v, nil
}

func (p *parser) parseValue() (candid.Value, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numberValue(t.text)
	case tokText:
		s, err := unescapeText(t.text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", t.line, err)
		}
		return candid.TextValue(s), nil
	case tokIdent:
		return p.parseKeywordValue(t)
	default:
		return nil, p.unexpected(t, "a value")
	}
}

func (p *parser) parseKeywordValue(t token) (candid.Value, error) {
	switch t.text {
	case "true":
		return candid.BoolValue(true), nil
	case "false":
		return candid.BoolValue(false), nil
	case "null":
		return candid.NullValue{}, nil
	case "opt":
		elem, err := p.parseAnnotatedValue()
		if err != nil {
			return nil, err
		}
		return candid.OptValue{Elem: elem}, nil
	case "vec":
		return p.parseVecValue()
	case "blob":
		lit := p.next()
		if lit.kind != tokText {
			return nil, p.unexpected(lit, "a blob literal")
		}
		data, err := unescapeBlob(lit.text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", lit.line, err)
		}
		elems := make([]candid.Value, len(data))
		for i, b := range data {
			elems[i] = candid.Nat8Value(b)
		}
		return candid.VecValue{Elems: elems}, nil
	case "record":
		return p.parseRecordValue()
	case "variant":
		return p.parseVariantValue()
	case "principal":
		pr, err := p.parsePrincipalLiteral()
		if err != nil {
			return nil, err
		}
		return candid.PrincipalValue{Principal: pr}, nil
	case "service":
		pr, err := p.parsePrincipalLiteral()
		if err != nil {
			return nil, err
		}
		return candid.ServiceValue{Principal: pr}, nil
	case "func":
		pr, err := p.parsePrincipalLiteral()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("."); err != nil {
			return nil, err
		}
		m := p.next()
		var method string
		switch m.kind {
		case tokIdent:
			method = m.text
		case tokText:
			var err error
			method, err = unescapeText(m.text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", m.line, err)
			}
		default:
			return nil, p.unexpected(m, "a method name")
		}
		return candid.FuncValue{Principal: pr, Method: method}, nil
	default:
		return nil, p.unexpected(t, "a value")
	}
}

func (p *parser) parsePrincipalLiteral() (candid.Principal, error) {
	lit := p.next()
	if lit.kind != tokText {
		return candid.Principal{}, p.unexpected(lit, "a principal literal")
	}
	pr, err := candid.PrincipalFromText(lit.text)
	if err != nil {
		return candid.Principal{}, fmt.Errorf("line %d: %v", lit.line, err)
	}
	return pr, nil
}

func (p *parser) parseVecValue() (candid.Value, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var elems []candid.Value
	for !p.isPunct("}") {
		v, err := p.parseAnnotatedValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		if !p.acceptPunct(";") {
			break
		}
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return candid.VecValue{Elems: elems}, nil
}

func (p *parser) parseRecordValue() (candid.Value, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var fields []candid.FieldValue
	var nextIndex uint32
	for !p.isPunct("}") {
		label, labelled, err := p.tryParseValueLabel()
		if err != nil {
			return nil, err
		}
		if !labelled {
			label = candid.IDLabel(nextIndex)
		}
		if label.Name == "" {
			nextIndex = label.ID + 1
		}
		v, err := p.parseAnnotatedValue()
		if err != nil {
			return nil, err
		}
		fields = append(fields, candid.FieldValue{Label: label, Value: v})
		if !p.acceptPunct(";") {
			break
		}
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	sortFields(fields)
	return candid.RecordValue{Fields: fields}, nil
}

func (p *parser) parseVariantValue() (candid.Value, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	t := p.next()
	label, err := valueLabel(t)
	if err != nil {
		return nil, err
	}
	var payload candid.Value = candid.NullValue{}
	if p.acceptPunct("=") {
		payload, err = p.parseAnnotatedValue()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return candid.VariantValue{Label: label, Value: payload}, nil
}

// tryParseValueLabel consumes "label =" when present.
func (p *parser) tryParseValueLabel() (candid.Label, bool, error) {
	t0, t1 := p.peek(), p.peekAt(1)
	isName := t0.kind == tokIdent || t0.kind == tokText || t0.kind == tokNumber
	if !isName || t1.kind != tokPunct || t1.text != "=" {
		return candid.Label{}, false, nil
	}
	p.next()
	p.next()
	label, err := valueLabel(t0)
	if err != nil {
		return candid.Label{}, false, err
	}
	return label, true, nil
}

func valueLabel(t token) (candid.Label, error) {
	switch t.kind {
	case tokIdent:
		return candid.NameLabel(t.text), nil
	case tokText:
		s, err := unescapeText(t.text)
		if err != nil {
			return candid.Label{}, fmt.Errorf("line %d: %v", t.line, err)
		}
		return candid.NameLabel(s), nil
	case tokNumber:
		id, err := parseLabelID(t.text)
		if err != nil {
			return candid.Label{}, fmt.Errorf("line %d: %v", t.line, err)
		}
		return candid.IDLabel(id), nil
	default:
		return candid.Label{}, fmt.Errorf("line %d: %q is not a field label", t.line, t.text)
	}
}

func sortFields(fields []candid.FieldValue) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Label.ID < fields[j].Label.ID
	})
}

// numberValue classifies a bare numeric literal: a decimal point or
// exponent makes it a float64, hex is normalized to decimal, anything
// else stays lexical until a type annotation or conversion target
// decides its width.
func numberValue(text string) (candid.Value, error) {
	clean := strings.ReplaceAll(text, "_", "")
	if isHexLexeme(clean) {
		n, ok := new(big.Int).SetString(clean, 0)
		if !ok {
			return nil, fmt.Errorf("bad integer literal %q", text)
		}
		return candid.NumberValue(n.String()), nil
	}
	if strings.ContainsAny(clean, ".eE") {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return nil, fmt.Errorf("bad float literal %q", text)
		}
		return candid.Float64Value(f), nil
	}
	return candid.NumberValue(clean), nil
}

func isHexLexeme(s string) bool {
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// annotate commits a parsed value to an annotated type. Only numeric
// literals and null change representation; other values are left alone,
// matching the lenient handling of redundant annotations like `"x" : text`.
func annotate(v candid.Value, t candid.Type) (candid.Value, error) {
	pt, ok := t.(candid.PrimType)
	if !ok {
		if _, isOpt := t.(candid.OptType); isOpt {
			if _, isNull := v.(candid.NullValue); isNull {
				return candid.NoneValue{}, nil
			}
		}
		return v, nil
	}
	num, ok := v.(candid.NumberValue)
	if !ok {
		if f, isFloat := v.(candid.Float64Value); isFloat && pt.Prim == candid.PrimFloat32 {
			return candid.Float32Value(float64(f)), nil
		}
		return v, nil
	}
	return commitNumber(string(num), pt.Prim)
}

func commitNumber(lexical string, prim candid.Prim) (candid.Value, error) {
	switch prim {
	case candid.PrimNat, candid.PrimInt:
		n, ok := new(big.Int).SetString(lexical, 0)
		if !ok {
			return nil, fmt.Errorf("bad integer literal %q", lexical)
		}
		if prim == candid.PrimNat {
			if n.Sign() < 0 {
				return nil, fmt.Errorf("negative literal %q annotated as nat", lexical)
			}
			return candid.NatValue{Big: n}, nil
		}
		return candid.IntValue{Big: n}, nil
	case candid.PrimFloat32, candid.PrimFloat64:
		f, err := strconv.ParseFloat(lexical, 64)
		if err != nil {
			return nil, fmt.Errorf("bad float literal %q", lexical)
		}
		if prim == candid.PrimFloat32 {
			return candid.Float32Value(f), nil
		}
		return candid.Float64Value(f), nil
	}

	bits, unsigned := primWidth(prim)
	if bits == 0 {
		return nil, fmt.Errorf("literal %q annotated with non-numeric type %s", lexical, prim)
	}
	if unsigned {
		n, err := strconv.ParseUint(lexical, 0, bits)
		if err != nil {
			return nil, fmt.Errorf("literal %q does not fit %s", lexical, prim)
		}
		switch prim {
		case candid.PrimNat8:
			return candid.Nat8Value(n), nil
		case candid.PrimNat16:
			return candid.Nat16Value(n), nil
		case candid.PrimNat32:
			return candid.Nat32Value(n), nil
		default:
			return candid.Nat64Value(n), nil
		}
	}
	n, err := strconv.ParseInt(lexical, 0, bits)
	if err != nil {
		return nil, fmt.Errorf("literal %q does not fit %s", lexical, prim)
	}
	switch prim {
	case candid.PrimInt8:
		return candid.Int8Value(n), nil
	case candid.PrimInt16:
		return candid.Int16Value(n), nil
	case candid.PrimInt32:
		return candid.Int32Value(n), nil
	default:
		return candid.Int64Value(n), nil
	}
}

// primWidth returns the bit width and signedness of a fixed-width numeric
// primitive, or 0 for anything else.
func primWidth(p candid.Prim) (bits int, unsigned bool) {
	switch p {
	case candid.PrimNat8:
		return 8, true
	case candid.PrimNat16:
		return 16, true
	case candid.PrimNat32:
		return 32, true
	case candid.PrimNat64:
		return 64, true
	case candid.PrimInt8:
		return 8, false
	case candid.PrimInt16:
		return 16, false
	case candid.PrimInt32:
		return 32, false
	case candid.PrimInt64:
		return 64, false
	}
	return 0, false
}

// unescapeText resolves the escape sequences of a text literal.
func unescapeText(raw string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(raw) {
			return "", fmt.Errorf("dangling escape in %q", raw)
		}
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\', '"', '\'':
			b.WriteByte(raw[i])
		case 'u':
			if i+1 >= len(raw) || raw[i+1] != '{' {
				return "", fmt.Errorf("bad unicode escape in %q", raw)
			}
			end := strings.IndexByte(raw[i+2:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated unicode escape in %q", raw)
			}
			code, err := strconv.ParseUint(raw[i+2:i+2+end], 16, 32)
			if err != nil || code > math.MaxInt32 {
				return "", fmt.Errorf("bad unicode escape in %q", raw)
			}
			b.WriteRune(rune(code))
			i += 2 + end
		default:
			// two-digit hex escape
			if i+1 >= len(raw) {
				return "", fmt.Errorf("bad escape in %q", raw)
			}
			n, err := strconv.ParseUint(raw[i:i+2], 16, 8)
			if err != nil {
				return "", fmt.Errorf("bad escape \\%s", raw[i:i+2])
			}
			b.WriteByte(byte(n))
			i++
		}
	}
	return b.String(), nil
}

// unescapeBlob resolves the escapes of a blob literal, where \HH is a raw
// byte.
func unescapeBlob(raw string) ([]byte, error) {
	s, err := unescapeText(raw)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
