package semicolon

import (
	"strings"

	"github.com/donaldgifford/semifmt/internal/parser"
)

// Indentation returns the literal leading whitespace of the physical line
// that contains tokens[pos]. A line that starts with code, a comment or an
// open tag has no indentation.
func Indentation(tokens parser.Tokens, pos int) string {
	head, start := "", 0
	for i := pos - 1; i >= 0; i-- {
		if idx := strings.LastIndexByte(tokens[i].Text, '\n'); idx >= 0 {
			head, start = tokens[i].Text[idx+1:], i+1
			break
		}
	}

	indent := leadingBlanks(head)
	if len(indent) < len(head) {
		return indent
	}
	for i := start; i < pos; i++ {
		text := tokens[i].Text
		blanks := leadingBlanks(text)
		indent += blanks
		if len(blanks) < len(text) {
			break
		}
	}
	return indent
}

func leadingBlanks(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}
