package candid

import (
	"errors"
	"testing"

	iderrors "github.com/wippyai/idljson/errors"
)

func TestEnvLookupIsCaseSensitive(t *testing.T) {
	env := NewEnv()
	if err := env.Define("Account", PrimType{Prim: PrimText}); err != nil {
		t.Fatal(err)
	}
	if _, ok := env.Lookup("Account"); !ok {
		t.Error("defined name not found")
	}
	if _, ok := env.Lookup("account"); ok {
		t.Error("lookup must be case-sensitive")
	}
}

func TestEnvRejectsRedefinition(t *testing.T) {
	env := NewEnv()
	if err := env.Define("T", PrimType{Prim: PrimNat}); err != nil {
		t.Fatal(err)
	}
	if err := env.Define("T", PrimType{Prim: PrimInt}); err == nil {
		t.Error("redefinition should fail")
	}
}

func TestEnvResolveChain(t *testing.T) {
	env := NewEnv()
	if err := env.Define("A", NamedType{Name: "B"}); err != nil {
		t.Fatal(err)
	}
	if err := env.Define("B", PrimType{Prim: PrimNat}); err != nil {
		t.Fatal(err)
	}

	got, err := env.Resolve(NamedType{Name: "A"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if pt, ok := got.(PrimType); !ok || pt.Prim != PrimNat {
		t.Errorf("Resolve gave %v, want nat", got)
	}
}

func TestEnvResolveUnknown(t *testing.T) {
	env := NewEnv()
	_, err := env.Resolve(NamedType{Name: "Missing"})
	if !errors.Is(err, &iderrors.Error{Phase: iderrors.PhaseResolve, Kind: iderrors.KindUnknownType}) {
		t.Errorf("expected unknown_type error, got %v", err)
	}
}

func TestEnvResolveCycle(t *testing.T) {
	env := NewEnv()
	if err := env.Define("A", NamedType{Name: "B"}); err != nil {
		t.Fatal(err)
	}
	if err := env.Define("B", NamedType{Name: "A"}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Resolve(NamedType{Name: "A"}); err == nil {
		t.Error("unguarded alias cycle should fail to resolve")
	}
}

func TestEnvResolveGuardedCycleStopsAtConstructor(t *testing.T) {
	// A list type that references itself through opt is fine: Resolve only
	// peels named references, it does not walk into containers.
	env := NewEnv()
	list := RecordType{Fields: []Field{
		{Label: NameLabel("head"), Type: PrimType{Prim: PrimNat}},
		{Label: NameLabel("tail"), Type: OptType{Elem: NamedType{Name: "List"}}},
	}}
	if err := env.Define("List", list); err != nil {
		t.Fatal(err)
	}
	got, err := env.Resolve(NamedType{Name: "List"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, ok := got.(RecordType); !ok {
		t.Errorf("Resolve gave %T, want RecordType", got)
	}
}

func TestEnvInitArgTypes(t *testing.T) {
	env := NewEnv()
	if _, err := env.InitArgTypes(); !errors.Is(err, &iderrors.Error{Phase: iderrors.PhaseResolve, Kind: iderrors.KindNoInitArgs}) {
		t.Errorf("no service: expected no_init_args, got %v", err)
	}

	svc := &ServiceType{}
	env.SetService(svc, nil, false)
	if _, err := env.InitArgTypes(); err == nil {
		t.Error("service without init clause should fail")
	}

	env.SetService(svc, []Type{PrimType{Prim: PrimText}}, true)
	args, err := env.InitArgTypes()
	if err != nil {
		t.Fatalf("InitArgTypes failed: %v", err)
	}
	if len(args) != 1 {
		t.Errorf("got %d init args, want 1", len(args))
	}
}
