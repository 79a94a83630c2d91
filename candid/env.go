package candid

import (
	"github.com/wippyai/idljson/errors"
)

// Env is a resolved set of named type definitions plus optional service
// metadata, built once from a single schema source and immutable during
// conversion.
type Env struct {
	types    map[string]Type
	service  *ServiceType
	initArgs []Type
	hasInit  bool
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{types: make(map[string]Type)}
}

// Define binds a type name. Redefining a name is rejected.
func (e *Env) Define(name string, t Type) error {
	if _, ok := e.types[name]; ok {
		return errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Detail("type %q defined twice", name).
			Build()
	}
	e.types[name] = t
	return nil
}

// Lookup finds a named type definition. Matching is exact and
// case-sensitive; there is no fallback.
func (e *Env) Lookup(name string) (Type, bool) {
	t, ok := e.types[name]
	return t, ok
}

// SetService records the schema's actor clause. initArgs is nil and
// hasInit false for a plain service without an init clause.
func (e *Env) SetService(s *ServiceType, initArgs []Type, hasInit bool) {
	e.service = s
	e.initArgs = initArgs
	e.hasInit = hasInit
}

// Service returns the service definition, or nil when the schema has none.
func (e *Env) Service() *ServiceType {
	return e.service
}

// InitArgTypes returns the ordered argument types of the service's init
// clause.
func (e *Env) InitArgTypes() ([]Type, error) {
	if e.service == nil {
		return nil, errors.NoInitArgs("schema has no service definition")
	}
	if !e.hasInit {
		return nil, errors.NoInitArgs("service has no init clause")
	}
	return e.initArgs, nil
}

// Resolve follows NamedType references until a concrete constructor is
// reached. Chains through other named types are allowed; a reference cycle
// with no intervening constructor is reported as unresolvable.
func (e *Env) Resolve(t Type) (Type, error) {
	seen := map[string]bool{}
	for {
		named, ok := t.(NamedType)
		if !ok {
			return t, nil
		}
		if seen[named.Name] {
			return nil, errors.New(errors.PhaseResolve, errors.KindUnknownType).
				IDLType(named.Name).
				Detail("type alias cycle").
				Build()
		}
		seen[named.Name] = true
		next, ok := e.Lookup(named.Name)
		if !ok {
			return nil, errors.UnknownTypeName(errors.PhaseResolve, nil, named.Name)
		}
		t = next
	}
}
