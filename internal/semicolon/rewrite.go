package semicolon

import (
	"strings"

	"github.com/donaldgifford/semifmt/internal/parser"
)

// frame is one open bracket on the scan stack.
type frame struct {
	// statements is true for the file level and for "{" bodies, where a
	// semicolon ends a statement. Inside "(" and "[" it is a separator
	// (for example in a for header) and is never rewritten.
	statements bool
	// start is the first significant token of the statement being read,
	// or -1 between statements.
	start int
	// open is the index of the bracket that opened the frame.
	open int
	// expr is set on a "{" that belongs to an expression (closure, match,
	// anonymous class) rather than a control or declaration block. Only an
	// expression body can be continued by what follows its "}".
	expr bool
	// header is the ")" closing the parenthesized header right after a
	// control keyword of the current statement, or -1.
	header int
}

// blockKeywords start statements whose "{" opens a block, not an
// expression.
var blockKeywords = map[string]bool{
	"if": true, "elseif": true, "else": true, "for": true, "foreach": true,
	"while": true, "do": true, "switch": true, "try": true, "catch": true,
	"finally": true, "function": true, "class": true, "interface": true,
	"trait": true, "enum": true, "namespace": true, "declare": true,
	"abstract": true, "final": true, "readonly": true, "public": true,
	"protected": true, "private": true,
}

// headerKeywords take a parenthesized header that alternative syntax
// follows with ":".
var headerKeywords = map[string]bool{
	"if": true, "elseif": true, "while": true, "for": true, "foreach": true,
	"switch": true, "declare": true,
}

// continuations are tokens that, following a "}", keep the enclosing
// statement going (closures passed as values, match expressions, ...).
var continuations = map[string]bool{
	"->": true, "?->": true, "::": true, ",": true, "=>": true,
	".": true, "?": true, ":": true, "??": true, "||": true, "&&": true,
}

// Rewrite returns a copy of tokens with the whitespace before every
// statement-terminating semicolon normalized according to opts. The input
// slice is not modified.
//
// The scan is a single left-to-right pass with an explicit bracket stack.
// Candidates are rewritten in place as they are reached, so a statement
// nested inside a closure is already normalized when the statement that
// encloses it is classified.
func Rewrite(tokens parser.Tokens, opts Options) parser.Tokens {
	r := &rewriter{tokens: tokens.Clone(), opts: opts.withDefaults()}
	r.run()
	return r.tokens
}

type rewriter struct {
	tokens parser.Tokens
	opts   Options
	stack  []frame
}

func (r *rewriter) run() {
	r.stack = append(r.stack[:0], frame{statements: true, start: -1, open: -1, header: -1})

	for i := 0; i < len(r.tokens); i++ {
		tok := r.tokens[i]
		if !tok.Significant() {
			continue
		}
		top := &r.stack[len(r.stack)-1]

		switch {
		case tok.Kind == parser.KindOpenTag,
			tok.Kind == parser.KindCloseTag,
			tok.Kind == parser.KindInlineHTML:
			top.reset()

		case tok.Opens():
			if top.start < 0 {
				top.start = i
			}
			f := frame{statements: tok.Kind == parser.KindOpenBrace, start: -1, open: i, header: -1}
			if f.statements {
				f.expr = !top.statements || !r.blockBody(top.start, i)
			}
			r.stack = append(r.stack, f)

		case tok.Closes():
			// An unmatched closer leaves the file-level frame in place.
			if len(r.stack) == 1 {
				continue
			}
			closed := r.stack[len(r.stack)-1]
			r.stack = r.stack[:len(r.stack)-1]
			parent := &r.stack[len(r.stack)-1]
			if !parent.statements || parent.start < 0 {
				continue
			}
			switch tok.Kind {
			case parser.KindCloseBrace:
				if !closed.expr || !r.continued(i) {
					parent.reset()
				}
			case parser.KindCloseParen:
				if closed.open == r.tokens.NextSignificant(parent.start) &&
					headerKeywords[r.keyword(parent.start)] {
					parent.header = i
				}
			}

		case tok.Kind == parser.KindSemicolon:
			if !top.statements {
				continue
			}
			if top.start >= 0 {
				i = r.terminate(top.start, i)
			}
			top.reset()

		case tok.Is(":") && top.statements:
			if r.label(top, i) {
				top.reset()
			}

		default:
			if top.start < 0 {
				top.start = i
			}
		}
	}
}

func (f *frame) reset() {
	f.start, f.header = -1, -1
}

// keyword returns the lower-cased text of the code token at i.
func (r *rewriter) keyword(i int) string {
	if i < 0 || r.tokens[i].Kind != parser.KindCode {
		return ""
	}
	return strings.ToLower(r.tokens[i].Text)
}

// blockBody reports whether the "{" at brace opens a control or
// declaration block of the statement starting at start. Attribute groups
// and other bracketed prefixes are skipped when looking for the keyword.
func (r *rewriter) blockBody(start, brace int) bool {
	if start < 0 || start == brace {
		return true
	}
	depth := 0
	for j := start; j < brace; j++ {
		tok := r.tokens[j]
		switch {
		case tok.Opens():
			depth++
		case tok.Closes():
			if depth > 0 {
				depth--
			}
		case depth == 0 && tok.Kind == parser.KindCode:
			return blockKeywords[strings.ToLower(tok.Text)]
		}
	}
	return false
}

// label reports whether the ":" at i ends a label rather than a ternary
// branch: a case or default label, a goto label, "else:" or the header of
// an alternative-syntax control structure.
func (r *rewriter) label(f *frame, i int) bool {
	if f.start < 0 {
		return false
	}
	prev := r.tokens.PrevSignificant(i)
	switch r.keyword(f.start) {
	case "case", "default":
		return true
	}
	if r.keyword(prev) == "else" {
		return true
	}
	if prev == f.start && r.tokens[prev].Kind == parser.KindCode &&
		!strings.HasPrefix(r.tokens[prev].Text, "$") {
		return true
	}
	return f.header >= 0 && prev == f.header
}

// continued reports whether the token after the "}" at i carries the
// statement on, as in `$f = function () {};` or `match ($x) {}->y()`.
func (r *rewriter) continued(i int) bool {
	next := r.tokens.NextSignificant(i)
	if next < 0 {
		return false
	}
	tok := r.tokens[next]
	switch tok.Kind {
	case parser.KindSemicolon, parser.KindOpenParen, parser.KindOpenBracket,
		parser.KindCloseParen, parser.KindCloseBracket:
		return true
	case parser.KindCode:
		return continuations[tok.Text]
	}
	return false
}

// terminate rewrites the statement tokens[start:semi] and returns the index
// of its semicolon after the edit.
func (r *rewriter) terminate(start, semi int) int {
	ext := ExtractTrailingComment(r.tokens, semi)
	if ext.Blocked || ext.Last < start {
		return semi
	}

	if r.opts.Strategy == StrategyBreakForChains {
		if chain := Classify(r.tokens, start, semi); chain.IsChain(r.opts.MinChainOperators) {
			return r.breakLine(chain, semi)
		}
	}
	return r.collapse(ext, semi)
}

// collapse pulls the semicolon up against the statement when the
// whitespace in front of it spans lines. A trailing inline comment ends up
// after the semicolon, separated from it by its original same-line gap.
func (r *rewriter) collapse(ext Extraction, semi int) int {
	ws := ext.Anchor + 1
	if ext.Comment >= 0 {
		ws = ext.Comment + 1
	}
	if !hasLineBreak(r.tokens[ws:semi]) {
		return semi
	}

	if ext.Comment < 0 {
		r.splice(ws, semi, nil)
		return ws
	}

	// [last][gap][comment][ws][;] -> [last][;][gap][comment]
	moved := make(parser.Tokens, 0, ext.Comment-ext.Last+1)
	moved = append(moved, parser.Semicolon())
	moved = append(moved, r.tokens[ext.Last+1:ext.Comment+1]...)
	r.splice(ext.Last+1, semi+1, moved)
	return ext.Last + len(moved)
}

// breakLine gives a chain's semicolon a line of its own, indented like the
// line holding the chain's base token. Comments that shared the old
// semicolon's line move in front of the new line break.
func (r *rewriter) breakLine(chain Chain, semi int) int {
	want := r.opts.Style.LineEnding + Indentation(r.tokens, chain.Base)

	ws := semi
	for ws > 0 && r.tokens[ws-1].IsWhitespace() {
		ws--
	}
	if semi-ws == 1 && r.tokens[ws].Text == want {
		return semi
	}

	end := semi + 1
	// Comments after the semicolon cannot join a line that already ends
	// in an inline comment.
	if ws == 0 || r.tokens[ws-1].Kind != parser.KindInlineComment {
		end = r.trailingRunEnd(semi)
	}

	repl := make(parser.Tokens, 0, end-semi+1)
	repl = append(repl, r.tokens[semi+1:end]...)
	repl = append(repl, parser.Whitespace(want), parser.Semicolon())
	r.splice(ws, end, repl)
	return ws + len(repl) - 1
}

// trailingRunEnd returns the end (exclusive) of the same-line comments
// following the semicolon at semi, or semi+1 when there are none or when
// code follows on the same line.
func (r *rewriter) trailingRunEnd(semi int) int {
	end := semi + 1
	for j := semi + 1; j < len(r.tokens); j++ {
		tok := r.tokens[j]
		switch {
		case tok.IsWhitespace() && tok.HasLineBreak():
			return end
		case tok.IsWhitespace():
		case tok.IsComment() && !tok.HasLineBreak():
			end = j + 1
		default:
			return semi + 1
		}
	}
	return end
}

// splice replaces r.tokens[from:to] with repl.
func (r *rewriter) splice(from, to int, repl parser.Tokens) {
	tail := r.tokens[to:].Clone()
	r.tokens = append(append(r.tokens[:from], repl...), tail...)
}

func hasLineBreak(tokens parser.Tokens) bool {
	for _, tok := range tokens {
		if tok.HasLineBreak() {
			return true
		}
	}
	return false
}
