package document

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/jsonc"
)

// ParseJSON parses JSON input into a Node tree. Comments and trailing
// commas (JSONC) are accepted and stripped. The stripped text is parsed
// through the YAML bridge, which keeps number lexemes intact.
func ParseJSON(data []byte) (Node, error) {
	return ParseYAML(jsonc.ToJSON(data))
}

// EncodeJSON serializes a Node tree as JSON text, indented unless compact
// is set. Number nodes whose lexical form is not a valid JSON number are
// emitted as strings instead of producing invalid output.
func EncodeJSON(n Node, compact bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return nil, err
	}
	if compact {
		return buf.Bytes(), nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return pretty.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n Node) error {
	switch n := n.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Bool:
		if n {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		if jsonNumber(string(n)) {
			buf.WriteString(string(n))
		} else {
			return writeJSONString(buf, string(n))
		}
	case String:
		return writeJSONString(buf, string(n))
	case List:
		buf.WriteByte('[')
		for i, elem := range n {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range n {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	quoted, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(quoted)
	return nil
}

// jsonNumber reports whether s matches the JSON number grammar.
func jsonNumber(s string) bool {
	i, n := 0, len(s)
	if n == 0 {
		return false
	}
	if s[i] == '-' {
		i++
	}
	// integer part
	switch {
	case i < n && s[i] == '0':
		i++
	case i < n && s[i] >= '1' && s[i] <= '9':
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	default:
		return false
	}
	// fraction
	if i < n && s[i] == '.' {
		i++
		if i >= n || s[i] < '0' || s[i] > '9' {
			return false
		}
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	// exponent
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i >= n || s[i] < '0' || s[i] > '9' {
			return false
		}
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	return i == n
}
