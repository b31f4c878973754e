package format

import (
	"strings"

	"github.com/donaldgifford/semifmt/internal/config"
	"github.com/donaldgifford/semifmt/internal/parser"
)

// FinalNewline ensures the file ends with exactly one line ending.
type FinalNewline struct{}

// Name returns the config key for this rule.
func (r *FinalNewline) Name() string {
	return "insert_final_newline"
}

// Format drops trailing blank lines and terminates the last line with the
// configured line ending.
func (r *FinalNewline) Format(tokens parser.Tokens, cfg *config.FormatterConfig) parser.Tokens {
	if !cfg.InsertFinalNewline || len(tokens) == 0 {
		return tokens
	}

	lb := cfg.LineBreak()
	result := tokens.Clone()
	last := &result[len(result)-1]

	switch last.Kind {
	case parser.KindWhitespace:
		last.Text = lb
	case parser.KindInlineHTML:
		// Text after a closing tag.
		last.Text = strings.TrimRight(last.Text, "\r\n") + lb
	case parser.KindCloseTag:
		result = append(result, parser.Token{Kind: parser.KindInlineHTML, Text: lb})
	default:
		result = append(result, parser.Whitespace(lb))
	}

	return result
}
