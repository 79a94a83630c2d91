package idljson

import (
	"testing"

	"github.com/wippyai/idljson/did"
)

func TestIDL2JSON(t *testing.T) {
	out, err := IDL2JSON(`(record { name = "Al"; age = 30 }, 42)`)
	if err != nil {
		t.Fatalf("IDL2JSON failed: %v", err)
	}
	want := "{\"age\":30,\"name\":\"Al\"}\n42"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestIDL2JSONHexLiteral(t *testing.T) {
	out, err := IDL2JSON(`(0x2a)`)
	if err != nil {
		t.Fatalf("IDL2JSON failed: %v", err)
	}
	if out != "42" {
		t.Errorf("hex literal rendered as %q, want 42", out)
	}
}

func TestJSON2IDL(t *testing.T) {
	env, err := did.ParseDID(`type Person = record { name : text; age : nat8 };`)
	if err != nil {
		t.Fatalf("ParseDID failed: %v", err)
	}
	out, err := JSON2IDL(`{"name": "Al", "age": 30}`, env, "Person")
	if err != nil {
		t.Fatalf("JSON2IDL failed: %v", err)
	}
	want := `(record { age = 30 : nat8; name = "Al" })`
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestJSON2IDLNilEnv(t *testing.T) {
	out, err := JSON2IDL(`[1, 2]`, nil, "vec nat")
	if err != nil {
		t.Fatalf("JSON2IDL failed: %v", err)
	}
	if out != `(vec { 1; 2 })` {
		t.Errorf("got %q", out)
	}
}
