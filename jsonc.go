package sortjson

import (
	"regexp"
	"strings"
)

// stringLiteralPattern matches a complete JSON string literal, including any
// escaped quotes inside it.
var stringLiteralPattern = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)

// HasComments reports whether src appears to contain // or /* */ comments
// outside of string literals. It is a heuristic, not a full lexer: string
// literals are blanked out first so comment-like text inside them, most
// commonly URLs, does not trigger a false positive.
func HasComments(src string) bool {
	neutralized := stringLiteralPattern.ReplaceAllString(src, `""`)
	return strings.Contains(neutralized, "//") || strings.Contains(neutralized, "/*")
}

type stripState int

const (
	stateNormal stripState = iota
	stateString
	stateLineComment
	stateBlockComment
)

// StripComments removes // line comments and /* */ block comments from src,
// leaving string contents untouched. The newline that ends a line comment is
// kept so line numbers in the remaining text stay stable; block comments are
// removed entirely, and an unterminated block comment consumes everything
// through end of input. The result is valid JSON whenever the input was JSON
// with comments as its only extension.
func StripComments(src string) string {
	var out strings.Builder
	out.Grow(len(src))

	state := stateNormal
	escaped := false

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch state {
		case stateNormal:
			switch {
			case c == '"':
				state = stateString
				out.WriteByte(c)
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
				i++
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
				i++
			default:
				out.WriteByte(c)
			}

		case stateString:
			out.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				state = stateNormal
			}

		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}

		case stateBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = stateNormal
				i++
			}
		}
	}

	return out.String()
}
