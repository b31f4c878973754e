// Package formatter provides the formatting engine, writer, and rule interface.
package formatter

import (
	"github.com/donaldgifford/semifmt/internal/parser"
)

// Write serializes a token stream back into source text. Tokens carry their
// exact text, so a stream no rule has touched round-trips byte-for-byte.
func Write(tokens parser.Tokens) string {
	return tokens.String()
}
