package semicolon

import "github.com/donaldgifford/semifmt/internal/parser"

// Chain describes the shape of one statement.
type Chain struct {
	Base      int  // Index of the statement's first significant token.
	Last      int  // Index of the last significant token before the terminator.
	Operators int  // Fluent operators at the statement's own bracket depth.
	Multiline bool // A line ending occurs between Base and Last.
}

// IsChain reports whether the statement is a fluent chain: at least min
// fluent operators spread over more than one line.
func (c Chain) IsChain(min int) bool {
	return c.Multiline && c.Operators >= min
}

// Classify inspects the statement tokens[start:end], where start is the
// first significant token and end the terminating semicolon. Operators
// inside nested brackets (call arguments, closures, array literals) belong
// to other expressions and are not counted.
func Classify(tokens parser.Tokens, start, end int) Chain {
	c := Chain{Base: start, Last: -1}

	depth := 0
	for i := start; i < end; i++ {
		tok := tokens[i]
		switch {
		case tok.Opens():
			depth++
		case tok.Closes():
			if depth > 0 {
				depth--
			}
		case depth == 0 && tok.IsFluentOperator():
			c.Operators++
		}
		if tok.Significant() {
			c.Last = i
		}
	}

	for i := start + 1; i < c.Last; i++ {
		if !tokens[i].Significant() && tokens[i].HasLineBreak() {
			c.Multiline = true
			break
		}
	}

	return c
}
