package idljson

import (
	"strings"

	"github.com/wippyai/idljson/candid"
	"github.com/wippyai/idljson/did"
	"github.com/wippyai/idljson/document"
	"github.com/wippyai/idljson/transcode"
)

// IDL2JSON renders candid argument text as compact JSON, one document
// per argument, newline-joined. Rendering is untyped: record fields
// keep whatever labels the text carries.
func IDL2JSON(candidText string) (string, error) {
	args, err := did.ParseArgs(candidText)
	if err != nil {
		return "", err
	}
	enc := transcode.NewEncoder(transcode.Options{})
	docs := make([]string, len(args))
	for i, arg := range args {
		out, err := document.EncodeJSON(enc.Encode(arg), true)
		if err != nil {
			return "", err
		}
		docs[i] = string(out)
	}
	return strings.Join(docs, "\n"), nil
}

// JSON2IDL constructs candid argument text from a JSON document against
// a type expression, resolved in env. A nil env works for type
// expressions without named references.
func JSON2IDL(jsonText string, env *candid.Env, typeExpr string) (string, error) {
	node, err := document.ParseJSON([]byte(jsonText))
	if err != nil {
		return "", err
	}
	typ, err := did.ParseType(typeExpr)
	if err != nil {
		return "", err
	}
	dec := transcode.NewDecoder(transcode.Options{Env: env})
	v, err := dec.Decode(node, typ)
	if err != nil {
		return "", err
	}
	return candid.FormatArgs([]candid.Value{v}), nil
}
