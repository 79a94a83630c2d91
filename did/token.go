package did

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokText  // quoted string; escapes are kept raw
	tokPunct // = : ; , . { } ( ) ->
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokText:
		return "string"
	case tokPunct:
		return "punctuation"
	}
	return "unknown"
}

type token struct {
	text string
	kind tokenKind
	line int
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			line++
			continue
		}

		// Nested block comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			depth := 1
			i += 2
			for i < len(runes) && depth > 0 {
				switch {
				case runes[i] == '/' && i+1 < len(runes) && runes[i+1] == '*':
					depth++
					i++
				case runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/':
					depth--
					i++
				case runes[i] == '\n':
					line++
				}
				i++
			}
			if depth > 0 {
				return nil, fmt.Errorf("line %d: unterminated block comment", line)
			}
			i--
			continue
		}

		// Quoted string; escapes are resolved later so blob and text
		// literals can interpret them differently.
		if r == '"' {
			start := i + 1
			i++
			for i < len(runes) && runes[i] != '"' {
				if runes[i] == '\\' && i+1 < len(runes) {
					i++
				}
				if runes[i] == '\n' {
					line++
				}
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("line %d: unterminated string", line)
			}
			tokens = append(tokens, token{string(runes[start:i]), tokText, line})
			continue
		}

		// Arrow or negative number
		if r == '-' || r == '+' {
			if r == '-' && i+1 < len(runes) && runes[i+1] == '>' {
				tokens = append(tokens, token{"->", tokPunct, line})
				i++
				continue
			}
			if i+1 >= len(runes) || !unicode.IsDigit(runes[i+1]) {
				return nil, fmt.Errorf("line %d: unexpected %q", line, r)
			}
		}

		// Number: decimal or hex, underscores, optional fraction and
		// exponent
		if r == '-' || r == '+' || unicode.IsDigit(r) {
			start := i
			if r == '-' || r == '+' {
				i++
			}
			hex := i+1 < len(runes) && runes[i] == '0' && (runes[i+1] == 'x' || runes[i+1] == 'X')
			if hex {
				i += 2
			}
		digits:
			for i < len(runes) {
				c := runes[i]
				switch {
				case unicode.IsDigit(c) || c == '_':
					i++
				case hex && (c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'):
					i++
				case !hex && (c == '.' || c == 'e' || c == 'E'):
					i++
					if i < len(runes) && (runes[i] == '+' || runes[i] == '-') && (c == 'e' || c == 'E') {
						i++
					}
				default:
					break digits
				}
			}
			tokens = append(tokens, token{string(runes[start:i]), tokNumber, line})
			i--
			continue
		}

		// Identifier or keyword
		if r == '_' || unicode.IsLetter(r) {
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, token{string(runes[start:i]), tokIdent, line})
			i--
			continue
		}

		if strings.ContainsRune("=:;,.{}()", r) {
			tokens = append(tokens, token{string(r), tokPunct, line})
			continue
		}

		return nil, fmt.Errorf("line %d: unexpected character %q", line, r)
	}

	return tokens, nil
}
