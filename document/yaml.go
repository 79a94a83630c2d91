package document

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/idljson/errors"
)

// ParseYAML parses one YAML document into a Node tree.
func ParseYAML(data []byte) (Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.MalformedInput("document", err)
	}
	n, err := fromYAML(&root)
	if err != nil {
		return nil, errors.MalformedInput("document", err)
	}
	return n, nil
}

// EncodeYAML serializes a Node tree as YAML.
func EncodeYAML(n Node) ([]byte, error) {
	return yaml.Marshal(toYAML(n))
}

func fromYAML(n *yaml.Node) (Node, error) {
	switch n.Kind {
	case 0:
		// yaml.Unmarshal leaves the zero node for empty input.
		return Null{}, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.ScalarNode:
		return fromYAMLScalar(n), nil
	case yaml.SequenceNode:
		list := make(List, 0, len(n.Content))
		for _, c := range n.Content {
			elem, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			list = append(list, elem)
		}
		return list, nil
	case yaml.MappingNode:
		obj := make(Object, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key is not a scalar", key.Line)
			}
			value, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj = append(obj, Member{Key: key.Value, Value: value})
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func fromYAMLScalar(n *yaml.Node) Node {
	switch n.Tag {
	case "!!null":
		return Null{}
	case "!!bool":
		switch n.Value {
		case "true", "True", "TRUE", "yes", "Yes", "YES", "on", "On", "ON":
			return Bool(true)
		default:
			return Bool(false)
		}
	case "!!int", "!!float":
		return Number(n.Value)
	default:
		// !!str, !!timestamp and anything explicitly tagged pass through
		// as text.
		return String(n.Value)
	}
}

func toYAML(n Node) *yaml.Node {
	switch n := n.(type) {
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case Bool:
		v := "false"
		if n {
			v = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v}
	case Number:
		tag := "!!int"
		if !intLexical(string(n)) {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(n)}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(n)}
	case List:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elem := range n {
			out.Content = append(out.Content, toYAML(elem))
		}
		return out
	case Object:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range n {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				toYAML(m.Value))
		}
		return out
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func intLexical(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
