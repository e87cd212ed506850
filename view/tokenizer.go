package view

// TokenClass is the closed set of display classes a line fragment can
// take. Rendering resolves each class through a lookup table; there is no
// open-ended dispatch.
type TokenClass int

const (
	TokenPlain TokenClass = iota
	TokenKeyword
	TokenString
	TokenComment
	TokenNumber
	TokenFunction
)

// Fragment is a run of characters sharing one token class.
type Fragment struct {
	Text  string
	Class TokenClass
}

// keywords covers Rust, JavaScript/TypeScript and a handful of shared
// literals. Membership alone decides the Keyword class.
var keywords = map[string]struct{}{}

func init() {
	for _, kw := range []string{
		// Rust
		"fn", "let", "mut", "struct", "enum", "impl", "trait", "pub", "use", "mod",
		"match", "if", "else", "while", "for", "in", "loop", "return", "break",
		"continue", "const", "static", "crate", "super", "self", "Self", "as",
		"where", "type", "move", "ref", "async", "await", "dyn", "unsafe",
		// JS/TS
		"function", "var", "class", "interface", "extends", "implements",
		"import", "from", "export", "do", "switch", "case", "new", "this",
		"try", "catch", "finally", "throw", "yield", "typeof", "instanceof",
		"of", "void", "delete",
		// Shared literals
		"true", "false", "null", "undefined",
	} {
		keywords[kw] = struct{}{}
	}
}

func isIdentStart(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_' || r == '$'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || r >= '0' && r <= '9'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}

func isNumberPart(r rune) bool {
	return isHexDigit(r) || r == 'x' || r == 'b' || r == 'o' || r == '_' || r == '.'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// TokenizeLine classifies one line of text into display fragments. It is a
// pure single left-to-right pass with no state carried across lines, so
// block comments and strings spanning lines are not recognized.
//
// Precedence at each position: a comment introducer ("//" or "#") consumes
// the rest of the line; a quote opens a string through the matching
// unescaped quote or end of line; a digit opens a maximal number run; an
// identifier is a keyword, a function when followed by an optional-
// whitespace "(", or plain; anything else is a single plain rune.
func TokenizeLine(line string) []Fragment {
	runes := []rune(line)
	var out []Fragment

	for i := 0; i < len(runes); {
		c := runes[i]

		if c == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			out = append(out, Fragment{Text: string(runes[i:]), Class: TokenComment})
			break
		}
		if c == '#' {
			out = append(out, Fragment{Text: string(runes[i:]), Class: TokenComment})
			break
		}

		if c == '"' || c == '\'' || c == '`' {
			quote := c
			j := i + 1
			escaped := false
			for j < len(runes) {
				ch := runes[j]
				j++
				if escaped {
					escaped = false
					continue
				}
				if ch == '\\' {
					escaped = true
					continue
				}
				if ch == quote {
					break
				}
			}
			out = append(out, Fragment{Text: string(runes[i:j]), Class: TokenString})
			i = j
			continue
		}

		if isDigit(c) {
			j := i
			for j < len(runes) && isNumberPart(runes[j]) {
				j++
			}
			out = append(out, Fragment{Text: string(runes[i:j]), Class: TokenNumber})
			i = j
			continue
		}

		if isIdentStart(c) {
			j := i
			for j < len(runes) && isIdentPart(runes[j]) {
				j++
			}
			ident := string(runes[i:j])

			look := j
			for look < len(runes) && isSpace(runes[look]) {
				look++
			}
			class := TokenPlain
			if _, ok := keywords[ident]; ok {
				class = TokenKeyword
			} else if look < len(runes) && runes[look] == '(' {
				class = TokenFunction
			}
			out = append(out, Fragment{Text: ident, Class: class})
			i = j
			continue
		}

		out = append(out, Fragment{Text: string(c), Class: TokenPlain})
		i++
	}

	return out
}
