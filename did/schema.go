package did

import (
	"github.com/wippyai/idljson/candid"
	"github.com/wippyai/idljson/errors"
)

// ParseDID parses one schema source into a type environment. The schema
// is a sequence of "type name = datatype;" definitions followed by an
// optional actor clause:
//
//	service [name] : [(init args) ->] { methods }
//
// Import declarations are tolerated and skipped; only definitions in the
// source itself enter the environment.
func ParseDID(source string) (*candid.Env, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, errors.MalformedInput("schema", err)
	}
	env := candid.NewEnv()
	for {
		t := p.peek()
		if t.kind == tokEOF {
			return env, nil
		}
		if t.kind != tokIdent {
			return nil, errors.MalformedInput("schema", p.unexpected(t, "a declaration"))
		}
		switch t.text {
		case "type":
			if err := p.parseTypeDef(env); err != nil {
				return nil, errors.MalformedInput("schema", err)
			}
		case "import":
			p.next()
			if imp := p.next(); imp.kind != tokText {
				return nil, errors.MalformedInput("schema", p.unexpected(imp, "an import path"))
			}
			p.acceptPunct(";")
		case "service":
			if err := p.parseActor(env); err != nil {
				return nil, errors.MalformedInput("schema", err)
			}
			if err := p.expectEOF(); err != nil {
				return nil, errors.MalformedInput("schema", err)
			}
			return env, nil
		default:
			return nil, errors.MalformedInput("schema", p.unexpected(t, `"type", "import" or "service"`))
		}
	}
}

func (p *parser) parseTypeDef(env *candid.Env) error {
	p.next() // "type"
	name := p.next()
	if name.kind != tokIdent {
		return p.unexpected(name, "a type name")
	}
	if err := p.expectPunct("="); err != nil {
		return err
	}
	t, err := p.parseType()
	if err != nil {
		return err
	}
	if err := p.expectPunct(";"); err != nil {
		return err
	}
	return env.Define(name.text, t)
}

// parseActor parses the service clause. When an init tuple is present the
// clause takes the class form "service : (args) -> { ... }" and the init
// argument types are recorded on the environment.
func (p *parser) parseActor(env *candid.Env) error {
	p.next() // "service"
	if t := p.peek(); t.kind == tokIdent {
		p.next() // optional actor name
	}
	if err := p.expectPunct(":"); err != nil {
		return err
	}

	var initArgs []candid.Type
	hasInit := false
	if p.isPunct("(") {
		args, err := p.parseTypeTuple()
		if err != nil {
			return err
		}
		if err := p.expectPunct("->"); err != nil {
			return err
		}
		initArgs = args
		hasInit = true
	}

	var service candid.ServiceType
	if t := p.peek(); t.kind == tokIdent {
		// actor type by reference
		p.next()
		resolved, err := env.Resolve(candid.NamedType{Name: t.text})
		if err != nil {
			return err
		}
		svc, ok := resolved.(candid.ServiceType)
		if !ok {
			return p.unexpected(t, "a service type")
		}
		service = svc
	} else {
		svc, err := p.parseServiceBody()
		if err != nil {
			return err
		}
		service = svc
	}
	p.acceptPunct(";")
	env.SetService(&service, initArgs, hasInit)
	return nil
}
