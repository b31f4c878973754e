// Package parser provides a lossless PHP tokenizer. Concatenating the text of
// every token returned by Parse reproduces the input byte-for-byte.
package parser

import "strings"

// Kind classifies a token.
type Kind int

const (
	// KindCode is a keyword, identifier, variable, number or operator.
	KindCode Kind = iota
	// KindWhitespace is a run of spaces, tabs and line endings.
	KindWhitespace
	// KindInlineComment is a "// ..." or "# ..." comment. It never contains
	// the line ending that terminates it.
	KindInlineComment
	// KindBlockComment is a "/* ... */" or "/** ... */" comment.
	KindBlockComment
	// KindString is a quoted string, backtick command, heredoc or nowdoc.
	KindString
	// KindOpenTag is "<?php", "<?=" or "<?".
	KindOpenTag
	// KindCloseTag is "?>".
	KindCloseTag
	// KindInlineHTML is text outside of PHP tags.
	KindInlineHTML
	// KindOpenParen is "(".
	KindOpenParen
	// KindCloseParen is ")".
	KindCloseParen
	// KindOpenBracket is "[" or the "#[" attribute opener.
	KindOpenBracket
	// KindCloseBracket is "]".
	KindCloseBracket
	// KindOpenBrace is "{" or "${".
	KindOpenBrace
	// KindCloseBrace is "}".
	KindCloseBrace
	// KindSemicolon is ";".
	KindSemicolon
)

var kindNames = [...]string{
	KindCode:          "Code",
	KindWhitespace:    "Whitespace",
	KindInlineComment: "InlineComment",
	KindBlockComment:  "BlockComment",
	KindString:        "String",
	KindOpenTag:       "OpenTag",
	KindCloseTag:      "CloseTag",
	KindInlineHTML:    "InlineHTML",
	KindOpenParen:     "OpenParen",
	KindCloseParen:    "CloseParen",
	KindOpenBracket:   "OpenBracket",
	KindCloseBracket:  "CloseBracket",
	KindOpenBrace:     "OpenBrace",
	KindCloseBrace:    "CloseBrace",
	KindSemicolon:     "Semicolon",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Token is a single lexical unit with its exact source text.
type Token struct {
	Kind Kind
	Text string
}

// Whitespace returns a whitespace token with the given text.
func Whitespace(text string) Token {
	return Token{Kind: KindWhitespace, Text: text}
}

// Semicolon returns a ";" token.
func Semicolon() Token {
	return Token{Kind: KindSemicolon, Text: ";"}
}

// IsWhitespace reports whether t is a whitespace run.
func (t Token) IsWhitespace() bool { return t.Kind == KindWhitespace }

// IsComment reports whether t is an inline or block comment.
func (t Token) IsComment() bool {
	return t.Kind == KindInlineComment || t.Kind == KindBlockComment
}

// Significant reports whether t is neither whitespace nor a comment.
func (t Token) Significant() bool {
	return !t.IsWhitespace() && !t.IsComment()
}

// Opens reports whether t opens a bracket of any kind.
func (t Token) Opens() bool {
	return t.Kind == KindOpenParen || t.Kind == KindOpenBracket || t.Kind == KindOpenBrace
}

// Closes reports whether t closes a bracket of any kind.
func (t Token) Closes() bool {
	return t.Kind == KindCloseParen || t.Kind == KindCloseBracket || t.Kind == KindCloseBrace
}

// IsFluentOperator reports whether t is "->", "?->" or "::".
func (t Token) IsFluentOperator() bool {
	if t.Kind != KindCode {
		return false
	}
	switch t.Text {
	case "->", "?->", "::":
		return true
	}
	return false
}

// Is reports whether t is a code token with exactly the given text.
func (t Token) Is(text string) bool {
	return t.Kind == KindCode && t.Text == text
}

// HasLineBreak reports whether the token text contains a line ending.
func (t Token) HasLineBreak() bool {
	return strings.ContainsAny(t.Text, "\r\n")
}

// Tokens is an ordered token stream.
type Tokens []Token

// String concatenates the text of every token.
func (ts Tokens) String() string {
	size := 0
	for _, t := range ts {
		size += len(t.Text)
	}

	var b strings.Builder
	b.Grow(size)
	for _, t := range ts {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Clone returns a copy of the stream that can be edited independently.
func (ts Tokens) Clone() Tokens {
	if ts == nil {
		return nil
	}
	out := make(Tokens, len(ts))
	copy(out, ts)
	return out
}

// Significant returns the subsequence of significant tokens.
func (ts Tokens) Significant() Tokens {
	out := make(Tokens, 0, len(ts))
	for _, t := range ts {
		if t.Significant() {
			out = append(out, t)
		}
	}
	return out
}

// NextSignificant returns the index of the first significant token after
// i, or -1.
func (ts Tokens) NextSignificant(i int) int {
	for j := i + 1; j < len(ts); j++ {
		if ts[j].Significant() {
			return j
		}
	}
	return -1
}

// PrevSignificant returns the index of the last significant token before
// i, or -1.
func (ts Tokens) PrevSignificant(i int) int {
	for j := i - 1; j >= 0; j-- {
		if ts[j].Significant() {
			return j
		}
	}
	return -1
}
