package transcode

import (
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/wippyai/idljson/candid"
	"github.com/wippyai/idljson/document"
	"github.com/wippyai/idljson/errors"
)

// Decoder converts schema-less document trees into typed Candid values.
type Decoder struct {
	opts Options
}

// NewDecoder creates a decoder with the given options.
func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts}
}

// Decode converts a document node against a type. The result is
// shape-compatible with the resolved type; any mismatch is a terminal
// error carrying the path to the offending node.
func (d *Decoder) Decode(node document.Node, typ candid.Type) (candid.Value, error) {
	return d.decode(node, typ, nil)
}

// DecodeArgs converts a document list into an argument tuple, one
// element per declared type. The list length must match the arity.
func (d *Decoder) DecodeArgs(node document.Node, types []candid.Type) ([]candid.Value, error) {
	list, ok := node.(document.List)
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			DocKind(document.Kind(node)).
			Detail("argument tuple must be a list").
			Build()
	}
	if len(list) != len(types) {
		return nil, errors.ArityMismatch(len(types), len(list))
	}
	args := make([]candid.Value, len(list))
	for i, elem := range list {
		v, err := d.decode(elem, types[i], []string{strconv.Itoa(i)})
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (d *Decoder) decode(node document.Node, typ candid.Type, path []string) (candid.Value, error) {
	resolved, err := d.opts.env().Resolve(typ)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && len(e.Path) == 0 {
			e.Path = path
		}
		return nil, err
	}

	switch t := resolved.(type) {
	case candid.PrimType:
		return d.decodePrim(node, t.Prim, path)
	case candid.OptType:
		if _, ok := node.(document.Null); ok {
			return candid.NoneValue{}, nil
		}
		elem, err := d.decode(node, t.Elem, path)
		if err != nil {
			return nil, err
		}
		return candid.OptValue{Elem: elem}, nil
	case candid.VecType:
		return d.decodeVec(node, t, path)
	case candid.RecordType:
		return d.decodeRecord(node, t, path)
	case candid.VariantType:
		return d.decodeVariant(node, t, path)
	case candid.FuncType:
		return d.decodeFunc(node, path)
	case candid.ServiceType:
		return d.decodeService(node, path)
	default:
		return nil, errors.TypeMismatch(path, document.Kind(node), resolved.String())
	}
}

func (d *Decoder) decodePrim(node document.Node, prim candid.Prim, path []string) (candid.Value, error) {
	mismatch := func() error {
		return errors.TypeMismatch(path, document.Kind(node), prim.String())
	}

	switch prim {
	case candid.PrimNull:
		if _, ok := node.(document.Null); ok {
			return candid.NullValue{}, nil
		}
		return nil, mismatch()

	case candid.PrimReserved:
		// reserved absorbs any value.
		return candid.ReservedValue{}, nil

	case candid.PrimEmpty:
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(path...).
			DocKind(document.Kind(node)).
			IDLType("empty").
			Detail("the empty type has no values").
			Build()

	case candid.PrimBool:
		if b, ok := node.(document.Bool); ok {
			return candid.BoolValue(bool(b)), nil
		}
		return nil, mismatch()

	case candid.PrimText:
		if s, ok := node.(document.String); ok {
			return candid.TextValue(string(s)), nil
		}
		return nil, mismatch()

	case candid.PrimPrincipal:
		s, ok := node.(document.String)
		if !ok {
			return nil, mismatch()
		}
		p, err := candid.PrincipalFromText(string(s))
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Path(path...).
				IDLType("principal").
				Cause(err).
				Detail("invalid principal text %q", string(s)).
				Build()
		}
		return candid.PrincipalValue{Principal: p}, nil

	case candid.PrimNat, candid.PrimInt:
		return d.decodeBigInt(node, prim, path)

	case candid.PrimNat8, candid.PrimNat16, candid.PrimNat32, candid.PrimNat64,
		candid.PrimInt8, candid.PrimInt16, candid.PrimInt32, candid.PrimInt64:
		return d.decodeFixedInt(node, prim, path)

	case candid.PrimFloat32, candid.PrimFloat64:
		num, ok := node.(document.Number)
		if !ok {
			return nil, mismatch()
		}
		bits := 64
		if prim == candid.PrimFloat32 {
			bits = 32
		}
		f, err := strconv.ParseFloat(string(num), bits)
		if err != nil {
			return nil, errors.OutOfRange(path, string(num), prim.String())
		}
		if prim == candid.PrimFloat32 {
			return candid.Float32Value(float32(f)), nil
		}
		return candid.Float64Value(f), nil
	}
	return nil, mismatch()
}

// decodeBigInt handles nat and int. Numeric strings are accepted
// alongside numbers so integers past float64 precision survive the
// document layer.
func (d *Decoder) decodeBigInt(node document.Node, prim candid.Prim, path []string) (candid.Value, error) {
	var lexeme string
	switch n := node.(type) {
	case document.Number:
		lexeme = string(n)
	case document.String:
		lexeme = strings.TrimSpace(string(n))
	default:
		return nil, errors.TypeMismatch(path, document.Kind(node), prim.String())
	}

	n, ok := integerLexeme(lexeme)
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(path...).
			DocKind(document.Kind(node)).
			IDLType(prim.String()).
			Detail("%q is not an integer", lexeme).
			Build()
	}
	if prim == candid.PrimNat {
		if n.Sign() < 0 {
			return nil, errors.OutOfRange(path, lexeme, "nat")
		}
		return candid.NatValue{Big: n}, nil
	}
	return candid.IntValue{Big: n}, nil
}

func (d *Decoder) decodeFixedInt(node document.Node, prim candid.Prim, path []string) (candid.Value, error) {
	var lexeme string
	switch n := node.(type) {
	case document.Number:
		lexeme = string(n)
	case document.String:
		// The 64-bit widths exceed float64 precision, so the encoder
		// falls back to strings for them; take those back.
		if prim != candid.PrimNat64 && prim != candid.PrimInt64 {
			return nil, errors.TypeMismatch(path, "string", prim.String())
		}
		lexeme = strings.TrimSpace(string(n))
	default:
		return nil, errors.TypeMismatch(path, document.Kind(node), prim.String())
	}

	n, ok := integerLexeme(lexeme)
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(path...).
			DocKind(document.Kind(node)).
			IDLType(prim.String()).
			Detail("%q is not an integer", lexeme).
			Build()
	}

	switch prim {
	case candid.PrimNat8, candid.PrimNat16, candid.PrimNat32, candid.PrimNat64:
		u, err := strconv.ParseUint(n.String(), 10, natWidth(prim))
		if err != nil {
			return nil, errors.OutOfRange(path, lexeme, prim.String())
		}
		switch prim {
		case candid.PrimNat8:
			return candid.Nat8Value(u), nil
		case candid.PrimNat16:
			return candid.Nat16Value(u), nil
		case candid.PrimNat32:
			return candid.Nat32Value(u), nil
		default:
			return candid.Nat64Value(u), nil
		}
	default:
		i, err := strconv.ParseInt(n.String(), 10, natWidth(prim))
		if err != nil {
			return nil, errors.OutOfRange(path, lexeme, prim.String())
		}
		switch prim {
		case candid.PrimInt8:
			return candid.Int8Value(i), nil
		case candid.PrimInt16:
			return candid.Int16Value(i), nil
		case candid.PrimInt32:
			return candid.Int32Value(i), nil
		default:
			return candid.Int64Value(i), nil
		}
	}
}

func (d *Decoder) decodeVec(node document.Node, t candid.VecType, path []string) (candid.Value, error) {
	elemPrim, isPrim := asPrim(d.opts.env(), t.Elem)

	// vec nat8 doubles as a blob type; accept its string renderings.
	if isPrim && elemPrim == candid.PrimNat8 {
		if s, ok := node.(document.String); ok {
			raw, err := decodeBytesString(string(s))
			if err != nil {
				return nil, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
					Path(path...).
					IDLType("vec nat8").
					Cause(err).
					Detail("string is neither hex nor base64").
					Build()
			}
			elems := make([]candid.Value, len(raw))
			for i, b := range raw {
				elems[i] = candid.Nat8Value(b)
			}
			return candid.VecValue{Elems: elems}, nil
		}
	}

	list, ok := node.(document.List)
	if !ok {
		return nil, errors.TypeMismatch(path, document.Kind(node), t.String())
	}
	elems := make([]candid.Value, len(list))
	for i, elem := range list {
		v, err := d.decode(elem, t.Elem, appendPath(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return candid.VecValue{Elems: elems}, nil
}

func (d *Decoder) decodeRecord(node document.Node, t candid.RecordType, path []string) (candid.Value, error) {
	obj, ok := node.(document.Object)
	if !ok {
		return nil, errors.TypeMismatch(path, document.Kind(node), "record")
	}

	fields := make([]candid.FieldValue, 0, len(t.Fields))
	for _, ft := range t.Fields {
		member, memberOK := lookupMember(obj, ft.Label)
		if !memberOK {
			// Absent option fields default to none; everything else
			// is required.
			if _, isOpt := mustResolve(d.opts.env(), ft.Type).(candid.OptType); isOpt {
				fields = append(fields, candid.FieldValue{Label: ft.Label, Value: candid.NoneValue{}})
				continue
			}
			return nil, errors.MissingField(path, ft.Label.String())
		}
		v, err := d.decode(member, ft.Type, appendPath(path, ft.Label.String()))
		if err != nil {
			return nil, err
		}
		fields = append(fields, candid.FieldValue{Label: ft.Label, Value: v})
	}

	if d.opts.Strict {
		for _, m := range obj {
			if !fieldAccepts(t.Fields, m.Key) {
				return nil, errors.UnknownField(path, m.Key)
			}
		}
	}

	sortFieldValues(fields)
	return candid.RecordValue{Fields: fields}, nil
}

func (d *Decoder) decodeVariant(node document.Node, t candid.VariantType, path []string) (candid.Value, error) {
	obj, ok := node.(document.Object)
	if !ok || len(obj) != 1 {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(path...).
			DocKind(document.Kind(node)).
			IDLType("variant").
			Detail("variant requires an object with exactly one key").
			Build()
	}
	member := obj[0]
	for _, c := range t.Cases {
		if !labelAccepts(c.Label, member.Key) {
			continue
		}
		v, err := d.decode(member.Value, c.Type, appendPath(path, c.Label.String()))
		if err != nil {
			return nil, err
		}
		return candid.VariantValue{Label: c.Label, Value: v}, nil
	}
	return nil, errors.UnknownVariant(path, member.Key, t.String())
}

func (d *Decoder) decodeFunc(node document.Node, path []string) (candid.Value, error) {
	obj, ok := node.(document.Object)
	if !ok {
		return nil, errors.TypeMismatch(path, document.Kind(node), "func")
	}
	principalNode, hasPrincipal := obj.Get("principal")
	methodNode, hasMethod := obj.Get("method")
	principalText, pOK := principalNode.(document.String)
	method, mOK := methodNode.(document.String)
	if !hasPrincipal || !hasMethod || !pOK || !mOK {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(path...).
			DocKind("object").
			IDLType("func").
			Detail(`func requires string members "principal" and "method"`).
			Build()
	}
	p, err := candid.PrincipalFromText(string(principalText))
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Path(path...).
			IDLType("func").
			Cause(err).
			Detail("invalid principal text %q", string(principalText)).
			Build()
	}
	return candid.FuncValue{Principal: p, Method: string(method)}, nil
}

func (d *Decoder) decodeService(node document.Node, path []string) (candid.Value, error) {
	s, ok := node.(document.String)
	if !ok {
		return nil, errors.TypeMismatch(path, document.Kind(node), "service")
	}
	p, err := candid.PrincipalFromText(string(s))
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Path(path...).
			IDLType("service").
			Cause(err).
			Detail("invalid principal text %q", string(s)).
			Build()
	}
	return candid.ServiceValue{Principal: p}, nil
}

// integerLexeme parses a decimal integer, also accepting float notation
// that denotes a whole number (the document layer may have normalized a
// large integer into exponent form).
func integerLexeme(s string) (*big.Int, bool) {
	if n, ok := new(big.Int).SetString(s, 10); ok {
		return n, true
	}
	f, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
	if err != nil {
		return nil, false
	}
	if !f.IsInt() {
		return nil, false
	}
	n, _ := f.Int(nil)
	return n, true
}

func natWidth(p candid.Prim) int {
	switch p {
	case candid.PrimNat8, candid.PrimInt8:
		return 8
	case candid.PrimNat16, candid.PrimInt16:
		return 16
	case candid.PrimNat32, candid.PrimInt32:
		return 32
	default:
		return 64
	}
}

// decodeBytesString tries hex first, base64 second.
func decodeBytesString(s string) ([]byte, error) {
	if raw, err := hex.DecodeString(s); err == nil {
		return raw, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

// lookupMember finds an object member by declared label: the field name
// when the label has one, always also the decimal id so untyped output
// round-trips.
func lookupMember(obj document.Object, label candid.Label) (document.Node, bool) {
	if label.Name != "" {
		if n, ok := obj.Get(label.Name); ok {
			return n, true
		}
	}
	return obj.Get(strconv.FormatUint(uint64(label.ID), 10))
}

func labelAccepts(label candid.Label, key string) bool {
	if label.Name != "" && label.Name == key {
		return true
	}
	return key == strconv.FormatUint(uint64(label.ID), 10)
}

func fieldAccepts(fields []candid.Field, key string) bool {
	for _, f := range fields {
		if labelAccepts(f.Label, key) {
			return true
		}
	}
	return false
}

// asPrim resolves a type and reports its primitive constructor.
func asPrim(env *candid.Env, t candid.Type) (candid.Prim, bool) {
	resolved, err := env.Resolve(t)
	if err != nil {
		return 0, false
	}
	p, ok := resolved.(candid.PrimType)
	if !ok {
		return 0, false
	}
	return p.Prim, true
}

// mustResolve resolves a type, returning it unchanged on failure; the
// caller's main decode path reports unresolved names.
func mustResolve(env *candid.Env, t candid.Type) candid.Type {
	resolved, err := env.Resolve(t)
	if err != nil {
		return t
	}
	return resolved
}

// appendPath extends a path without sharing the backing array with
// sibling branches.
func appendPath(path []string, seg string) []string {
	return append(path[:len(path):len(path)], seg)
}

func sortFieldValues(fields []candid.FieldValue) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Label.ID < fields[j].Label.ID
	})
}
