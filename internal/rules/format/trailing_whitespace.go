// Package format contains individual formatting rule implementations.
package format

import (
	"strings"

	"github.com/donaldgifford/semifmt/internal/config"
	"github.com/donaldgifford/semifmt/internal/parser"
)

// TrailingWhitespace removes trailing spaces and tabs from every line.
type TrailingWhitespace struct{}

// Name returns the config key for this rule.
func (r *TrailingWhitespace) Name() string {
	return "trim_trailing_whitespace"
}

// Format strips trailing whitespace from whitespace runs and inline
// comments. Strings, heredocs and inline HTML are left untouched.
func (r *TrailingWhitespace) Format(tokens parser.Tokens, cfg *config.FormatterConfig) parser.Tokens {
	if !cfg.TrimTrailingWhitespace {
		return tokens
	}

	result := tokens.Clone()
	for i, tok := range result {
		switch {
		case tok.IsWhitespace():
			result[i].Text = trimRawLines(tok.Text, i == len(result)-1)
		case tok.Kind == parser.KindInlineComment:
			result[i].Text = strings.TrimRight(tok.Text, " \t")
		}
	}

	// A whitespace run at the very end may have been trimmed away.
	if n := len(result); n > 0 && result[n-1].Text == "" {
		result = result[:n-1]
	}
	return result
}

// trimRawLines trims trailing spaces and tabs in front of every line ending
// in a whitespace run. When atEOF is set the final, unterminated segment is
// trailing too.
func trimRawLines(raw string, atEOF bool) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if i == len(lines)-1 && !atEOF {
			break
		}
		cr := strings.HasSuffix(line, "\r")
		line = strings.TrimRight(strings.TrimSuffix(line, "\r"), " \t")
		if cr {
			line += "\r"
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
