package parser

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

// leafTypes are syntax node types whose whole source range becomes one
// token, even when the grammar gives them children.
var leafTypes = map[string]Kind{
	"comment":                  KindInlineComment, // Refined by text.
	"text":                     KindInlineHTML,
	"string":                   KindString,
	"encapsed_string":          KindString,
	"heredoc":                  KindString,
	"nowdoc":                   KindString,
	"shell_command_expression": KindString,
	"variable_name":            KindCode,
	"qualified_name":           KindCode,
}

// punctuation maps bracket and terminator text to its kind.
var punctuation = map[string]Kind{
	";":  KindSemicolon,
	"(":  KindOpenParen,
	")":  KindCloseParen,
	"[":  KindOpenBracket,
	"#[": KindOpenBracket,
	"]":  KindCloseBracket,
	"{":  KindOpenBrace,
	"${": KindOpenBrace,
	"}":  KindCloseBrace,
}

// Parse converts PHP source text into a token stream. The syntax tree comes
// from the tree-sitter PHP grammar; its leaves become tokens and the bytes
// between leaves become whitespace (or inline HTML outside of PHP tags), so
// the stream always reproduces src exactly. Parse never fails: syntax
// errors only change how the affected bytes are classified.
func Parse(src string) Tokens {
	if src == "" {
		return nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(php.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	if err != nil {
		// Left as one opaque token, so no rule touches it.
		return Tokens{{Kind: KindInlineHTML, Text: src}}
	}

	s := &state{src: src, html: true}
	s.tokens = make(Tokens, 0, len(src)/4+1)
	s.walk(tree.RootNode())
	s.gap(len(src))
	return s.tokens
}

// state tracks the walk position across leaves.
type state struct {
	src    string
	pos    int
	html   bool // True outside of PHP tags.
	tokens Tokens
}

func (s *state) walk(n *sitter.Node) {
	start, end := int(n.StartByte()), int(n.EndByte())
	if end <= start || end <= s.pos {
		// Zero-width nodes: automatic semicolons and MISSING tokens.
		return
	}

	_, leaf := leafTypes[n.Type()]
	if leaf || n.ChildCount() == 0 {
		start = max(start, s.pos)
		s.gap(start)
		s.leaf(n.Type(), s.src[start:end])
		s.pos = end
		return
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		s.walk(n.Child(i))
	}
}

// gap emits the bytes between the previous leaf and to.
func (s *state) gap(to int) {
	if to <= s.pos {
		return
	}
	text := s.src[s.pos:to]
	s.pos = to
	if s.html {
		s.emit(KindInlineHTML, text)
		return
	}
	s.loose(text)
}

// loose splits text the grammar did not claim into whitespace runs and
// opaque code.
func (s *state) loose(text string) {
	for text != "" {
		n := len(text) - len(strings.TrimLeft(text, " \t\r\n\v\f"))
		if n > 0 {
			s.emit(KindWhitespace, text[:n])
			text = text[n:]
			continue
		}
		n = strings.IndexAny(text, " \t\r\n\v\f")
		if n < 0 {
			n = len(text)
		}
		s.emit(KindCode, text[:n])
		text = text[n:]
	}
}

func (s *state) leaf(typ, text string) {
	switch {
	case typ == "comment":
		if strings.HasPrefix(text, "/*") {
			s.emit(KindBlockComment, text)
			return
		}
		body := strings.TrimRight(text, "\r\n")
		s.emit(KindInlineComment, body)
		s.emit(KindWhitespace, text[len(body):])

	case typ == "php_tag" || (s.html && strings.HasPrefix(text, "<?")):
		n := openTagLen(text)
		s.html = false
		s.emit(KindOpenTag, text[:n])
		s.loose(text[n:])

	case strings.HasPrefix(text, "?>"):
		s.emit(KindCloseTag, "?>")
		s.html = true
		s.emit(KindInlineHTML, text[2:])

	case typ == "text" || s.html:
		s.emit(KindInlineHTML, text)

	case typ == "ERROR":
		s.loose(text)

	default:
		if kind, ok := leafTypes[typ]; ok {
			s.emit(kind, text)
			return
		}
		if kind, ok := punctuation[text]; ok {
			s.emit(kind, text)
			return
		}
		s.emit(KindCode, text)
	}
}

// emit appends a token. Adjacent whitespace or inline HTML is merged so a
// run never spans more than one token.
func (s *state) emit(kind Kind, text string) {
	if text == "" {
		return
	}
	if n := len(s.tokens); n > 0 && s.tokens[n-1].Kind == kind &&
		(kind == KindWhitespace || kind == KindInlineHTML) {
		s.tokens[n-1].Text += text
		return
	}
	s.tokens = append(s.tokens, Token{Kind: kind, Text: text})
}

func openTagLen(text string) int {
	switch {
	case len(text) >= 5 && strings.EqualFold(text[:5], "<?php"):
		return 5
	case strings.HasPrefix(text, "<?="):
		return 3
	case strings.HasPrefix(text, "<?"):
		return 2
	}
	return len(text)
}
