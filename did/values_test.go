package did

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/idljson/candid"
)

var bigCmp = cmp.Comparer(func(x, y *big.Int) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.Cmp(y) == 0
})

func TestParseArgsScalars(t *testing.T) {
	got, err := ParseArgs(`(true, false, null, "hi\n", 42, -7, 1_000, 3.5, 42 : nat8, -1 : int64, 2 : float64)`)
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	want := []candid.Value{
		candid.BoolValue(true),
		candid.BoolValue(false),
		candid.NullValue{},
		candid.TextValue("hi\n"),
		candid.NumberValue("42"),
		candid.NumberValue("-7"),
		candid.NumberValue("1000"),
		candid.Float64Value(3.5),
		candid.Nat8Value(42),
		candid.Int64Value(-1),
		candid.Float64Value(2),
	}
	if diff := cmp.Diff(want, got, bigCmp); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArgsHexNormalizes(t *testing.T) {
	got, err := ParseArgs(`(0x2a, -0x10, 0xdead_beef, 0xFF : nat8)`)
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	want := []candid.Value{
		candid.NumberValue("42"),
		candid.NumberValue("-16"),
		candid.NumberValue("3735928559"),
		candid.Nat8Value(255),
	}
	if diff := cmp.Diff(want, got, bigCmp); diff != "" {
		t.Errorf("hex literals (-want +got):\n%s", diff)
	}
}

func TestParseArgsBigAnnotated(t *testing.T) {
	got, err := ParseArgs(`(123456789012345678901234567890 : nat)`)
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	nat, ok := got[0].(candid.NatValue)
	if !ok {
		t.Fatalf("got %T, want NatValue", got[0])
	}
	if nat.Big.String() != "123456789012345678901234567890" {
		t.Errorf("big nat lost precision: %s", nat.Big)
	}
}

func TestParseArgsContainers(t *testing.T) {
	got, err := ParseArgs(`(vec { 1; 2; 3 }, opt "x", record { name = "Al"; age = 30 : nat }, variant { ok = "done" }, variant { idle })`)
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	want := []candid.Value{
		candid.VecValue{Elems: []candid.Value{
			candid.NumberValue("1"), candid.NumberValue("2"), candid.NumberValue("3"),
		}},
		candid.OptValue{Elem: candid.TextValue("x")},
		candid.RecordValue{Fields: []candid.FieldValue{
			{Label: candid.NameLabel("age"), Value: candid.NatValue{Big: big.NewInt(30)}},
			{Label: candid.NameLabel("name"), Value: candid.TextValue("Al")},
		}},
		candid.VariantValue{Label: candid.NameLabel("ok"), Value: candid.TextValue("done")},
		candid.VariantValue{Label: candid.NameLabel("idle"), Value: candid.NullValue{}},
	}
	if diff := cmp.Diff(want, got, bigCmp); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArgsRecordFieldOrder(t *testing.T) {
	// Fields come back sorted by label id regardless of source order;
	// hash("age") < hash("name").
	got, err := ParseArgs(`(record { name = "x"; age = 1 })`)
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	record := got[0].(candid.RecordValue)
	if record.Fields[0].Label.Name != "age" || record.Fields[1].Label.Name != "name" {
		t.Errorf("fields not in id order: %+v", record.Fields)
	}
}

func TestParseArgsTupleRecord(t *testing.T) {
	got, err := ParseArgs(`(record { "a"; "b"; 5 = "c" })`)
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	record := got[0].(candid.RecordValue)
	ids := []uint32{0, 1, 5}
	for i, f := range record.Fields {
		if f.Label.ID != ids[i] {
			t.Errorf("field %d has id %d, want %d", i, f.Label.ID, ids[i])
		}
	}
}

func TestParseArgsBlob(t *testing.T) {
	got, err := ParseArgs(`(blob "\de\adAB")`)
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	vec, ok := got[0].(candid.VecValue)
	if !ok || !vec.IsBytes() {
		t.Fatalf("blob did not parse to a byte vector: %#v", got[0])
	}
	want := []byte{0xde, 0xad, 'A', 'B'}
	if diff := cmp.Diff(want, vec.Bytes()); diff != "" {
		t.Errorf("blob bytes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArgsReferences(t *testing.T) {
	got, err := ParseArgs(`(principal "aaaaa-aa", service "2vxsx-fae", func "aaaaa-aa".transfer)`)
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	if p, ok := got[0].(candid.PrincipalValue); !ok || p.Principal.String() != "aaaaa-aa" {
		t.Errorf("principal parsed as %#v", got[0])
	}
	if s, ok := got[1].(candid.ServiceValue); !ok || s.Principal.String() != "2vxsx-fae" {
		t.Errorf("service parsed as %#v", got[1])
	}
	f, ok := got[2].(candid.FuncValue)
	if !ok || f.Method != "transfer" {
		t.Errorf("func parsed as %#v", got[2])
	}
}

func TestParseArgsEmpty(t *testing.T) {
	got, err := ParseArgs("()")
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty tuple has %d values", len(got))
	}
}

func TestParseArgsNullAnnotatedOpt(t *testing.T) {
	got, err := ParseArgs(`(null : opt nat)`)
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}
	if _, ok := got[0].(candid.NoneValue); !ok {
		t.Errorf("null : opt nat should parse to none, got %#v", got[0])
	}
}

func TestParseArgsErrors(t *testing.T) {
	bad := []string{
		``,
		`(`,
		`(,)`,
		`(300 : nat8)`,
		`(-1 : nat)`,
		`(variant {})`,
		`(blob 5)`,
		`("unterminated`,
	}
	for _, src := range bad {
		if _, err := ParseArgs(src); err == nil {
			t.Errorf("ParseArgs(%q) should fail", src)
		}
	}
}

func TestParseArgsRoundTripThroughFormat(t *testing.T) {
	sources := []string{
		`(record { age = 30 : nat8; name = "Al" })`,
		`(vec { 1 : nat8; 2 : nat8 })`,
		`(opt 5 : nat8, variant { err = "boom" })`,
	}
	for _, src := range sources {
		args, err := ParseArgs(src)
		if err != nil {
			t.Fatalf("ParseArgs(%q) failed: %v", src, err)
		}
		text := candid.FormatArgs(args)
		back, err := ParseArgs(text)
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v", text, err)
		}
		if diff := cmp.Diff(args, back, bigCmp); diff != "" {
			t.Errorf("round trip of %q changed the value (-want +got):\n%s", src, diff)
		}
	}
}
