package semicolon

import "github.com/donaldgifford/semifmt/internal/parser"

// Extraction is the layout of the tokens in front of a semicolon.
type Extraction struct {
	// Last is the last significant token before the semicolon, -1 if none.
	Last int
	// Anchor is the token the semicolon is pulled up against when the gap
	// collapses: Last, or a block comment that follows it.
	Anchor int
	// Comment is a trailing "//" or "#" comment that shares Last's line,
	// possibly after same-line block comments, -1 if none. The semicolon
	// moves in front of the tokens between Last and Comment.
	Comment int
	// Blocked is set when an inline comment sits on its own line between
	// the statement and the semicolon. Joining the semicolon to that line
	// would comment it out, so the candidate must be left alone.
	Blocked bool
}

// ExtractTrailingComment looks at the tokens before tokens[semi] and
// finds what the semicolon would attach to. Block comments are never
// treated as trailing comments: they stay in place and become the anchor.
func ExtractTrailingComment(tokens parser.Tokens, semi int) Extraction {
	ext := Extraction{Last: -1, Anchor: -1, Comment: -1}

	i := semi - 1
	for i >= 0 && tokens[i].IsWhitespace() {
		i--
	}
	if i < 0 {
		return ext
	}

	switch tokens[i].Kind {
	case parser.KindInlineComment:
		// Same-line blanks and block comments may sit between the code
		// and the comment.
		j := i - 1
		for j >= 0 && !tokens[j].HasLineBreak() &&
			(tokens[j].IsWhitespace() || tokens[j].Kind == parser.KindBlockComment) {
			j--
		}
		if j < 0 || !tokens[j].Significant() {
			ext.Blocked = true
			return ext
		}
		ext.Last, ext.Anchor, ext.Comment = j, j, i

	case parser.KindBlockComment:
		ext.Anchor = i
		ext.Last = tokens.PrevSignificant(i)

	default:
		ext.Last, ext.Anchor = i, i
	}

	return ext
}
