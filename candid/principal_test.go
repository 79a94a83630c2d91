package candid

import (
	"bytes"
	"testing"
)

func TestPrincipalManagementCanister(t *testing.T) {
	// The management canister is the empty byte string.
	p, err := PrincipalFromText("aaaaa-aa")
	if err != nil {
		t.Fatalf("PrincipalFromText failed: %v", err)
	}
	if len(p.Raw) != 0 {
		t.Errorf("expected empty raw bytes, got %x", p.Raw)
	}
	if got := p.String(); got != "aaaaa-aa" {
		t.Errorf("String() = %q, want %q", got, "aaaaa-aa")
	}
}

func TestPrincipalAnonymous(t *testing.T) {
	p, err := PrincipalFromText("2vxsx-fae")
	if err != nil {
		t.Fatalf("PrincipalFromText failed: %v", err)
	}
	if !bytes.Equal(p.Raw, []byte{0x04}) {
		t.Errorf("anonymous principal raw = %x, want 04", p.Raw)
	}
	if got := p.String(); got != "2vxsx-fae" {
		t.Errorf("String() = %q, want %q", got, "2vxsx-fae")
	}
}

func TestPrincipalRoundTrip(t *testing.T) {
	raws := [][]byte{
		{0x01},
		{0xab, 0xcd, 0xef},
		{0, 0, 0, 0, 0, 0, 0, 1, 0x01, 0x01}, // typical canister id shape
	}
	for _, raw := range raws {
		text := Principal{Raw: raw}.String()
		back, err := PrincipalFromText(text)
		if err != nil {
			t.Fatalf("round-trip of %x via %q failed: %v", raw, text, err)
		}
		if !bytes.Equal(back.Raw, raw) {
			t.Errorf("round-trip of %x via %q gave %x", raw, text, back.Raw)
		}
	}
}

func TestPrincipalRejectsBadInput(t *testing.T) {
	for _, text := range []string{"", "a", "!!!!", "aaaab-aa"} {
		if _, err := PrincipalFromText(text); err == nil {
			t.Errorf("PrincipalFromText(%q) should fail", text)
		}
	}
}
