package transcode

import (
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"strconv"

	"github.com/wippyai/idljson/candid"
	"github.com/wippyai/idljson/document"
)

// maxSafeInteger is the largest integer a float64 represents exactly.
// Integers past it render as strings so document consumers that funnel
// numbers through float64 cannot silently corrupt them.
var maxSafeInteger = big.NewInt(1<<53 - 1)

// Encoder converts Candid values into schema-less document trees. Both
// modes are total: a value always has a rendering.
type Encoder struct {
	opts Options
}

// NewEncoder creates an encoder with the given options.
func NewEncoder(opts Options) *Encoder {
	return &Encoder{opts: opts}
}

// Encode renders a value without type guidance. Record fields and
// variant cases keep whatever label the value carries; bare ids become
// decimal string keys.
func (e *Encoder) Encode(v candid.Value) document.Node {
	switch val := v.(type) {
	case candid.NullValue, candid.NoneValue, candid.ReservedValue:
		return document.Null{}
	case candid.BoolValue:
		return document.Bool(bool(val))
	case candid.NatValue:
		return bigNode(val.Big)
	case candid.IntValue:
		return bigNode(val.Big)
	case candid.Nat8Value:
		return document.Number(strconv.FormatUint(uint64(val), 10))
	case candid.Nat16Value:
		return document.Number(strconv.FormatUint(uint64(val), 10))
	case candid.Nat32Value:
		return document.Number(strconv.FormatUint(uint64(val), 10))
	case candid.Nat64Value:
		return bigNode(new(big.Int).SetUint64(uint64(val)))
	case candid.Int8Value:
		return document.Number(strconv.FormatInt(int64(val), 10))
	case candid.Int16Value:
		return document.Number(strconv.FormatInt(int64(val), 10))
	case candid.Int32Value:
		return document.Number(strconv.FormatInt(int64(val), 10))
	case candid.Int64Value:
		return bigNode(big.NewInt(int64(val)))
	case candid.Float32Value:
		return document.Number(strconv.FormatFloat(float64(val), 'g', -1, 32))
	case candid.Float64Value:
		return document.Number(strconv.FormatFloat(float64(val), 'g', -1, 64))
	case candid.NumberValue:
		return numberNode(string(val))
	case candid.TextValue:
		return document.String(string(val))
	case candid.OptValue:
		// Present options wrap in a one-element list so they stay
		// distinguishable from their payload without a type.
		return document.List{e.Encode(val.Elem)}
	case candid.VecValue:
		return e.encodeVec(val)
	case candid.RecordValue:
		obj := make(document.Object, 0, len(val.Fields))
		for _, f := range val.Fields {
			obj = append(obj, document.Member{Key: f.Label.String(), Value: e.Encode(f.Value)})
		}
		return obj
	case candid.VariantValue:
		return document.Object{{Key: val.Label.String(), Value: e.Encode(val.Value)}}
	case candid.PrincipalValue:
		return document.String(val.Principal.String())
	case candid.ServiceValue:
		return document.String(val.Principal.String())
	case candid.FuncValue:
		return document.Object{
			{Key: "principal", Value: document.String(val.Principal.String())},
			{Key: "method", Value: document.String(val.Method)},
		}
	default:
		return document.Null{}
	}
}

// EncodeWithType renders a value guided by a type: record fields and
// variant cases take their declared names, byte vectors honor the
// configured format, and present options collapse onto their payload.
// The type is advisory; any shape disagreement downgrades that subtree
// to the untyped rendering.
func (e *Encoder) EncodeWithType(v candid.Value, typ candid.Type) document.Node {
	resolved, err := e.opts.env().Resolve(typ)
	if err != nil {
		return e.Encode(v)
	}

	switch t := resolved.(type) {
	case candid.PrimType:
		return e.encodePrimTyped(v, t.Prim)

	case candid.OptType:
		switch val := v.(type) {
		case candid.NoneValue, candid.NullValue:
			return document.Null{}
		case candid.OptValue:
			return e.EncodeWithType(val.Elem, t.Elem)
		default:
			// A bare payload under an option type renders as if
			// present.
			return e.EncodeWithType(v, t.Elem)
		}

	case candid.VecType:
		vec, ok := v.(candid.VecValue)
		if !ok {
			return e.Encode(v)
		}
		if p, isPrim := asPrim(e.opts.env(), t.Elem); isPrim && p == candid.PrimNat8 && vec.IsBytes() {
			return e.bytesNode(vec.Bytes())
		}
		list := make(document.List, len(vec.Elems))
		for i, elem := range vec.Elems {
			list[i] = e.EncodeWithType(elem, t.Elem)
		}
		return list

	case candid.RecordType:
		rec, ok := v.(candid.RecordValue)
		if !ok {
			return e.Encode(v)
		}
		obj := make(document.Object, 0, len(rec.Fields))
		for _, f := range rec.Fields {
			ft, declared := fieldByID(t.Fields, f.Label.ID)
			if !declared {
				obj = append(obj, document.Member{Key: f.Label.String(), Value: e.Encode(f.Value)})
				continue
			}
			obj = append(obj, document.Member{
				Key:   preferName(ft.Label, f.Label),
				Value: e.EncodeWithType(f.Value, ft.Type),
			})
		}
		return obj

	case candid.VariantType:
		variant, ok := v.(candid.VariantValue)
		if !ok {
			return e.Encode(v)
		}
		ct, declared := fieldByID(t.Cases, variant.Label.ID)
		if !declared {
			return document.Object{{Key: variant.Label.String(), Value: e.Encode(variant.Value)}}
		}
		return document.Object{{
			Key:   preferName(ct.Label, variant.Label),
			Value: e.EncodeWithType(variant.Value, ct.Type),
		}}

	default:
		// func and service references render the same either way.
		return e.Encode(v)
	}
}

// EncodeArgs renders an argument tuple as one document list, pairing
// arguments with types positionally. Arguments past the declared types
// render untyped.
func (e *Encoder) EncodeArgs(args []candid.Value, types []candid.Type) document.Node {
	list := make(document.List, len(args))
	for i, arg := range args {
		if i < len(types) {
			list[i] = e.EncodeWithType(arg, types[i])
		} else {
			list[i] = e.Encode(arg)
		}
	}
	return list
}

func (e *Encoder) encodePrimTyped(v candid.Value, prim candid.Prim) document.Node {
	if prim == candid.PrimReserved {
		return document.Null{}
	}
	// Primitive values self-describe; the untyped rendering is already
	// the typed one.
	return e.Encode(v)
}

func (e *Encoder) encodeVec(v candid.VecValue) document.Node {
	if v.IsBytes() && e.opts.Bytes != BytesNumbers {
		return e.bytesNode(v.Bytes())
	}
	list := make(document.List, len(v.Elems))
	for i, elem := range v.Elems {
		list[i] = e.Encode(elem)
	}
	return list
}

func (e *Encoder) bytesNode(raw []byte) document.Node {
	switch e.opts.Bytes {
	case BytesHex:
		return document.String(hex.EncodeToString(raw))
	case BytesBase64:
		return document.String(base64.StdEncoding.EncodeToString(raw))
	default:
		list := make(document.List, len(raw))
		for i, b := range raw {
			list[i] = document.Number(strconv.Itoa(int(b)))
		}
		return list
	}
}

// bigNode renders an integer as a number inside the float64-safe range
// and as a string beyond it.
func bigNode(n *big.Int) document.Node {
	if n.CmpAbs(maxSafeInteger) <= 0 {
		return document.Number(n.String())
	}
	return document.String(n.String())
}

// numberNode renders an unannotated numeric lexeme. Integer lexemes get
// the safe-range treatment; float lexemes pass through.
func numberNode(lexeme string) document.Node {
	if n, ok := new(big.Int).SetString(lexeme, 10); ok {
		return bigNode(n)
	}
	return document.Number(lexeme)
}

func fieldByID(fields []candid.Field, id uint32) (candid.Field, bool) {
	for _, f := range fields {
		if f.Label.ID == id {
			return f, true
		}
	}
	return candid.Field{}, false
}

// preferName picks the declared name over whatever the value side
// carries, falling back to the value label when the declaration is a
// bare id.
func preferName(declared, carried candid.Label) string {
	if declared.Name != "" {
		return declared.Name
	}
	if carried.Name != "" {
		return carried.Name
	}
	return declared.String()
}
