// Package cli is the orchestration layer behind the idl2json and
// json2idl commands: it loads schema files, selects conversion types
// from the flag combination, and drives the transcode engine in the
// right mode.
//
// Type selection follows one decision table in both directions:
//
//	--init                    use the schema's init-argument types
//	--typ "(...)"             parse as a type tuple, convert as arguments
//	--typ anything else       parse as one type expression (a bare
//	                          identifier becomes a named reference),
//	                          convert each argument against it
//	neither                   idl2json renders untyped; json2idl fails,
//	                          it cannot construct values without a type
//
// Tuple conversions produce one document list. Single-type conversions
// produce one document per argument, joined with newlines.
package cli

import (
	"bytes"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/idljson/candid"
	"github.com/wippyai/idljson/did"
	"github.com/wippyai/idljson/document"
	"github.com/wippyai/idljson/errors"
	"github.com/wippyai/idljson/transcode"
)

// IDL2JSONOptions configures one candid-text to document conversion.
type IDL2JSONOptions struct {
	// DIDFiles are schema sources. All are parsed and validated; the
	// first provides the type environment.
	DIDFiles []string
	// Type is a type name or type expression; "(...)" selects argument
	// tuple conversion. Empty means untyped rendering.
	Type string
	// UseInit selects the schema's init-argument types.
	UseInit bool
	// Bytes selects the byte-vector rendering.
	Bytes transcode.BytesFormat
	// Compact suppresses JSON indentation.
	Compact bool
	// YAML emits YAML instead of JSON.
	YAML bool
}

// JSON2IDLOptions configures one document to candid-text conversion.
type JSON2IDLOptions struct {
	DIDFiles []string
	Type     string
	UseInit  bool
	// Strict rejects document object keys that match no record field.
	Strict bool
	// YAML parses the input as YAML instead of JSON.
	YAML bool
}

// IDL2JSON converts candid argument text into document text.
func IDL2JSON(input []byte, opts IDL2JSONOptions) ([]byte, error) {
	env, err := loadEnv(opts.DIDFiles)
	if err != nil {
		return nil, err
	}
	args, err := did.ParseArgs(string(input))
	if err != nil {
		return nil, err
	}
	types, tuple, err := conversionTypes(env, opts.Type, opts.UseInit)
	if err != nil {
		return nil, err
	}

	// One options value travels the whole invocation; render reads the
	// compact flag back out of it at the serialization boundary.
	tOpts := transcode.Options{
		Env:     env,
		Bytes:   opts.Bytes,
		Compact: opts.Compact,
	}
	enc := transcode.NewEncoder(tOpts)

	if tuple {
		Logger().Debug("converting argument tuple",
			zap.Int("args", len(args)), zap.Int("types", len(types)))
		return render(enc.EncodeArgs(args, types), opts.YAML, tOpts.Compact)
	}

	// One document per argument, newline-joined.
	docs := make([][]byte, len(args))
	for i, arg := range args {
		var node document.Node
		if len(types) == 1 {
			node = enc.EncodeWithType(arg, types[0])
		} else {
			node = enc.Encode(arg)
		}
		out, err := render(node, opts.YAML, tOpts.Compact)
		if err != nil {
			return nil, err
		}
		docs[i] = out
	}
	return bytes.Join(docs, []byte("\n")), nil
}

// JSON2IDL converts document text into candid argument text.
func JSON2IDL(input []byte, opts JSON2IDLOptions) ([]byte, error) {
	env, err := loadEnv(opts.DIDFiles)
	if err != nil {
		return nil, err
	}
	types, tuple, err := conversionTypes(env, opts.Type, opts.UseInit)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 && !tuple {
		return nil, errors.InvalidInput("a type is required to construct candid values: pass --typ or --init")
	}

	var node document.Node
	if opts.YAML {
		node, err = document.ParseYAML(input)
	} else {
		node, err = document.ParseJSON(input)
	}
	if err != nil {
		return nil, err
	}

	dec := transcode.NewDecoder(transcode.Options{Env: env, Strict: opts.Strict})

	if tuple {
		args, err := dec.DecodeArgs(node, types)
		if err != nil {
			return nil, err
		}
		return []byte(candid.FormatArgs(args)), nil
	}
	v, err := dec.Decode(node, types[0])
	if err != nil {
		return nil, err
	}
	return []byte(candid.FormatArgs([]candid.Value{v})), nil
}

// loadEnv parses every schema file; the first one's environment wins.
// Schema sources are never merged, but later files still have to parse.
func loadEnv(paths []string) (*candid.Env, error) {
	env := candid.NewEnv()
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.IO("read schema file "+path, err)
		}
		parsed, err := did.ParseDID(string(data))
		if err != nil {
			return nil, errors.Wrap(errors.PhaseParse, errors.KindMalformedInput, err, "schema file "+path)
		}
		if i == 0 {
			env = parsed
			Logger().Debug("schema loaded", zap.String("file", path))
		} else {
			Logger().Debug("extra schema validated but unused", zap.String("file", path))
		}
	}
	return env, nil
}

// conversionTypes applies the decision table. tuple reports whether the
// types form an argument tuple (one list document) rather than a single
// per-argument type.
func conversionTypes(env *candid.Env, typeStr string, useInit bool) ([]candid.Type, bool, error) {
	if useInit {
		types, err := env.InitArgTypes()
		if err != nil {
			return nil, false, err
		}
		return types, true, nil
	}

	typeStr = strings.TrimSpace(typeStr)
	switch {
	case typeStr == "":
		return nil, false, nil
	case strings.HasPrefix(typeStr, "("):
		types, err := did.ParseTypes(typeStr)
		if err != nil {
			return nil, false, err
		}
		return types, true, nil
	default:
		typ, err := did.ParseType(typeStr)
		if err != nil {
			return nil, false, err
		}
		// Surface an unknown name here rather than deep inside a
		// conversion (or silently, in the direction that never fails).
		if _, err := env.Resolve(typ); err != nil {
			return nil, false, err
		}
		return []candid.Type{typ}, false, nil
	}
}

func render(n document.Node, asYAML, compact bool) ([]byte, error) {
	if asYAML {
		out, err := document.EncodeYAML(n)
		if err != nil {
			return nil, err
		}
		return bytes.TrimRight(out, "\n"), nil
	}
	return document.EncodeJSON(n, compact)
}
