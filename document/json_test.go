package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseJSON(t *testing.T) {
	input := `{"name":"Al","age":30,"tags":[1,2.5,null,true]}`
	got, err := ParseJSON([]byte(input))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	want := Object{
		{Key: "name", Value: String("Al")},
		{Key: "age", Value: Number("30")},
		{Key: "tags", Value: List{Number("1"), Number("2.5"), Null{}, Bool(true)}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSONAcceptsComments(t *testing.T) {
	input := `{
		// a comment
		"a": 1, /* block */
		"b": 2,
	}`
	got, err := ParseJSON([]byte(input))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	obj, ok := got.(Object)
	if !ok || len(obj) != 2 {
		t.Errorf("expected two members, got %#v", got)
	}
}

func TestParseJSONPreservesBigNumbers(t *testing.T) {
	got, err := ParseJSON([]byte(`[123456789012345678901234567890]`))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	list, ok := got.(List)
	if !ok || len(list) != 1 {
		t.Fatalf("expected one-element list, got %#v", got)
	}
	if list[0] != Number("123456789012345678901234567890") {
		t.Errorf("big number lost its lexical form: %#v", list[0])
	}
}

func TestParseJSONMalformed(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"a": }`)); err == nil {
		t.Error("malformed input should fail")
	}
}

func TestEncodeJSONCompact(t *testing.T) {
	tree := Object{
		{Key: "b", Value: Number("1")},
		{Key: "a", Value: List{String("x"), Null{}}},
	}
	out, err := EncodeJSON(tree, true)
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	want := `{"b":1,"a":["x",null]}`
	if string(out) != want {
		t.Errorf("EncodeJSON = %s, want %s", out, want)
	}
}

func TestEncodeJSONPretty(t *testing.T) {
	out, err := EncodeJSON(Object{{Key: "a", Value: Number("1")}}, false)
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	want := "{\n  \"a\": 1\n}"
	if string(out) != want {
		t.Errorf("EncodeJSON = %q, want %q", out, want)
	}
}

func TestEncodeJSONQuotesNonJSONNumbers(t *testing.T) {
	out, err := EncodeJSON(List{Number("0x1f"), Number("2")}, true)
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	if string(out) != `["0x1f",2]` {
		t.Errorf("EncodeJSON = %s", out)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	input := []byte("name: Al\nage: 30\nopts:\n  - null\n  - true\n")
	tree, err := ParseYAML(input)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	want := Object{
		{Key: "name", Value: String("Al")},
		{Key: "age", Value: Number("30")},
		{Key: "opts", Value: List{Null{}, Bool(true)}},
	}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	out, err := EncodeYAML(tree)
	if err != nil {
		t.Fatalf("EncodeYAML failed: %v", err)
	}
	back, err := ParseYAML(out)
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if diff := cmp.Diff(tree, back); diff != "" {
		t.Errorf("YAML round trip changed the tree (-want +got):\n%s", diff)
	}
}

func TestParseYAMLEmptyInput(t *testing.T) {
	tree, err := ParseYAML(nil)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if _, ok := tree.(Null); !ok {
		t.Errorf("empty input should parse as null, got %#v", tree)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Null{}, "null"},
		{Bool(true), "bool"},
		{Number("1"), "number"},
		{String(""), "string"},
		{List{}, "list"},
		{Object{}, "object"},
	}
	for _, tt := range tests {
		if got := Kind(tt.node); got != tt.want {
			t.Errorf("Kind(%#v) = %q, want %q", tt.node, got, tt.want)
		}
	}
}
