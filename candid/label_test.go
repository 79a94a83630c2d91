package candid

import "testing"

func TestHash(t *testing.T) {
	// Reference hashes from the Candid specification's field id function.
	tests := []struct {
		name string
		want uint32
	}{
		{"", 0},
		{"ok", 24860},
		{"name", 1224700491},
	}
	for _, tt := range tests {
		if got := Hash(tt.name); got != tt.want {
			t.Errorf("Hash(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLabelString(t *testing.T) {
	if got := NameLabel("age").String(); got != "age" {
		t.Errorf("named label renders %q, want %q", got, "age")
	}
	if got := IDLabel(42).String(); got != "42" {
		t.Errorf("id label renders %q, want %q", got, "42")
	}
}

func TestNameLabelCarriesHash(t *testing.T) {
	l := NameLabel("name")
	if l.ID != 1224700491 {
		t.Errorf("NameLabel ID = %d, want the structural hash", l.ID)
	}
}
