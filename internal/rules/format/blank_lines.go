package format

import (
	"strings"

	"github.com/donaldgifford/semifmt/internal/config"
	"github.com/donaldgifford/semifmt/internal/parser"
)

// BlankLines collapses consecutive blank lines down to the configured maximum.
type BlankLines struct{}

// Name returns the config key for this rule.
func (*BlankLines) Name() string {
	return "max_blank_lines"
}

// Format collapses runs of blank lines to at most cfg.MaxBlankLines. The
// indentation of the line after the run is kept.
func (*BlankLines) Format(tokens parser.Tokens, cfg *config.FormatterConfig) parser.Tokens {
	if cfg.MaxBlankLines < 0 {
		return tokens
	}

	limit := cfg.MaxBlankLines + 1
	result := tokens.Clone()
	for i, tok := range result {
		if !tok.IsWhitespace() || lineBreaks(tok.Text) <= limit {
			continue
		}

		lb := "\n"
		if strings.Contains(tok.Text, "\r\n") {
			lb = "\r\n"
		}
		first := tok.Text[:strings.IndexByte(tok.Text, '\n')]
		first = strings.TrimSuffix(first, "\r")
		rest := tok.Text[strings.LastIndexByte(tok.Text, '\n')+1:]
		result[i].Text = first + strings.Repeat(lb, limit) + rest
	}
	return result
}

func lineBreaks(s string) int {
	return strings.Count(s, "\n")
}
