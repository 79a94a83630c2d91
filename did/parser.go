package did

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/idljson/candid"
	"github.com/wippyai/idljson/errors"
)

type parser struct {
	tokens []token
	pos    int
}

func newParser(source string) (*parser, error) {
	tokens, err := tokenize(source)
	if err != nil {
		return nil, err
	}
	return &parser{tokens: tokens}, nil
}

var eof = token{kind: tokEOF}

func (p *parser) peek() token {
	if p.pos >= len(p.tokens) {
		return eof
	}
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) token {
	if p.pos+offset >= len(p.tokens) {
		return eof
	}
	return p.tokens[p.pos+offset]
}

func (p *parser) next() token {
	t := p.peek()
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isPunct(s string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == s
}

func (p *parser) acceptPunct(s string) bool {
	if p.isPunct(s) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectPunct(s string) error {
	t := p.next()
	if t.kind != tokPunct || t.text != s {
		return p.unexpected(t, fmt.Sprintf("%q", s))
	}
	return nil
}

func (p *parser) expectEOF() error {
	if t := p.peek(); t.kind != tokEOF {
		return p.unexpected(t, "end of input")
	}
	return nil
}

func (p *parser) unexpected(t token, want string) error {
	if t.kind == tokEOF {
		return fmt.Errorf("unexpected end of input, expected %s", want)
	}
	return fmt.Errorf("line %d: unexpected %q, expected %s", t.line, t.text, want)
}

// ParseType parses a single type expression. A bare identifier that is
// not a primitive keyword parses as a named reference; whether the name
// exists is decided at resolution time, not here.
func ParseType(source string) (candid.Type, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, errors.MalformedInput("type", err)
	}
	t, err := p.parseType()
	if err == nil {
		err = p.expectEOF()
	}
	if err != nil {
		return nil, errors.MalformedInput("type", err)
	}
	return t, nil
}

// ParseTypes parses a parenthesized tuple of types: "(t1, t2, ...)".
func ParseTypes(source string) ([]candid.Type, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, errors.MalformedInput("type tuple", err)
	}
	types, err := p.parseTypeTuple()
	if err == nil {
		err = p.expectEOF()
	}
	if err != nil {
		return nil, errors.MalformedInput("type tuple", err)
	}
	return types, nil
}

func (p *parser) parseType() (candid.Type, error) {
	t := p.next()
	if t.kind != tokIdent {
		return nil, p.unexpected(t, "a type")
	}
	switch t.text {
	case "opt":
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return candid.OptType{Elem: elem}, nil
	case "vec":
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return candid.VecType{Elem: elem}, nil
	case "blob":
		return candid.VecType{Elem: candid.PrimType{Prim: candid.PrimNat8}}, nil
	case "record":
		fields, err := p.parseFieldTypes(false)
		if err != nil {
			return nil, err
		}
		return candid.RecordType{Fields: fields}, nil
	case "variant":
		cases, err := p.parseFieldTypes(true)
		if err != nil {
			return nil, err
		}
		return candid.VariantType{Cases: cases}, nil
	case "func":
		ft, err := p.parseFuncType()
		if err != nil {
			return nil, err
		}
		return ft, nil
	case "service":
		return p.parseServiceBody()
	case "principal":
		return candid.PrimType{Prim: candid.PrimPrincipal}, nil
	default:
		if prim, ok := candid.PrimFromName(t.text); ok {
			return candid.PrimType{Prim: prim}, nil
		}
		return candid.NamedType{Name: t.text}, nil
	}
}

// parseFieldTypes parses "{ field; field; }" for records and variants.
// Variant cases may omit the payload type, which defaults to null. Fields
// without an explicit label get sequential numeric labels, continuing
// after any explicit numeric label.
func (p *parser) parseFieldTypes(variant bool) ([]candid.Field, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var fields []candid.Field
	var nextIndex uint32
	for !p.isPunct("}") {
		label, labelled, err := p.tryParseLabel(variant)
		if err != nil {
			return nil, err
		}
		var fieldType candid.Type = candid.PrimType{Prim: candid.PrimNull}
		switch {
		case labelled && p.acceptPunct(":"):
			fieldType, err = p.parseType()
			if err != nil {
				return nil, err
			}
		case labelled && variant:
			// payload-free case, keeps the null type
		case labelled:
			return nil, p.unexpected(p.peek(), `":"`)
		default:
			// tuple field: the current tokens are a bare type
			fieldType, err = p.parseType()
			if err != nil {
				return nil, err
			}
			label = candid.IDLabel(nextIndex)
		}
		if label.Name == "" {
			nextIndex = label.ID + 1
		}
		fields = append(fields, candid.Field{Label: label, Type: fieldType})
		if !p.acceptPunct(";") {
			break
		}
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return fields, nil
}

// tryParseLabel consumes a field label when the lookahead shows one. In
// records a label must be followed by ":"; in variants a bare name is a
// payload-free case.
func (p *parser) tryParseLabel(variant bool) (candid.Label, bool, error) {
	t0, t1 := p.peek(), p.peekAt(1)
	isName := t0.kind == tokIdent || t0.kind == tokText || t0.kind == tokNumber
	if !isName {
		return candid.Label{}, false, nil
	}
	colon := t1.kind == tokPunct && t1.text == ":"
	bareCase := variant && (t1.kind == tokEOF || t1.kind == tokPunct && (t1.text == ";" || t1.text == "}"))
	if !colon && !bareCase {
		return candid.Label{}, false, nil
	}
	p.next()
	if t0.kind == tokNumber {
		id, err := parseLabelID(t0.text)
		if err != nil {
			return candid.Label{}, false, fmt.Errorf("line %d: %v", t0.line, err)
		}
		return candid.IDLabel(id), true, nil
	}
	name := t0.text
	if t0.kind == tokText {
		unescaped, err := unescapeText(t0.text)
		if err != nil {
			return candid.Label{}, false, fmt.Errorf("line %d: %v", t0.line, err)
		}
		name = unescaped
	}
	return candid.NameLabel(name), true, nil
}

func parseLabelID(text string) (uint32, error) {
	n, err := strconv.ParseUint(strings.ReplaceAll(text, "_", ""), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("field id %q out of range", text)
	}
	return uint32(n), nil
}

// parseTypeTuple parses "( [name :] type, ... )"; argument names are
// allowed by the grammar but carry no meaning here.
func (p *parser) parseTypeTuple() ([]candid.Type, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var types []candid.Type
	for !p.isPunct(")") {
		if p.peek().kind == tokIdent && p.peekAt(1).kind == tokPunct && p.peekAt(1).text == ":" {
			p.next()
			p.next()
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if !p.acceptPunct(",") {
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return types, nil
}

// parseFuncType parses "(args) -> (rets) annotations" (the leading
// "func" keyword has already been consumed where it applies).
func (p *parser) parseFuncType() (candid.FuncType, error) {
	args, err := p.parseTypeTuple()
	if err != nil {
		return candid.FuncType{}, err
	}
	if err := p.expectPunct("->"); err != nil {
		return candid.FuncType{}, err
	}
	rets, err := p.parseTypeTuple()
	if err != nil {
		return candid.FuncType{}, err
	}
	var annotations []string
	for {
		t := p.peek()
		if t.kind == tokIdent && (t.text == "query" || t.text == "oneway" || t.text == "composite_query") {
			annotations = append(annotations, t.text)
			p.next()
			continue
		}
		break
	}
	return candid.FuncType{Args: args, Rets: rets, Annotations: annotations}, nil
}

// parseServiceBody parses "{ name : signature; ... }".
func (p *parser) parseServiceBody() (candid.ServiceType, error) {
	if err := p.expectPunct("{"); err != nil {
		return candid.ServiceType{}, err
	}
	var methods []candid.Method
	for !p.isPunct("}") {
		t := p.next()
		if t.kind != tokIdent && t.kind != tokText {
			return candid.ServiceType{}, p.unexpected(t, "a method name")
		}
		name := t.text
		if t.kind == tokText {
			unescaped, err := unescapeText(t.text)
			if err != nil {
				return candid.ServiceType{}, fmt.Errorf("line %d: %v", t.line, err)
			}
			name = unescaped
		}
		if err := p.expectPunct(":"); err != nil {
			return candid.ServiceType{}, err
		}
		var sig candid.Type
		if p.isPunct("(") {
			ft, err := p.parseFuncType()
			if err != nil {
				return candid.ServiceType{}, err
			}
			sig = ft
		} else {
			// reference to a named func type
			ref := p.next()
			if ref.kind != tokIdent {
				return candid.ServiceType{}, p.unexpected(ref, "a signature")
			}
			sig = candid.NamedType{Name: ref.text}
		}
		methods = append(methods, candid.Method{Name: name, Type: sig})
		if !p.acceptPunct(";") {
			break
		}
	}
	if err := p.expectPunct("}"); err != nil {
		return candid.ServiceType{}, err
	}
	return candid.ServiceType{Methods: methods}, nil
}
