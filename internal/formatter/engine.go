package formatter

import (
	"github.com/donaldgifford/semifmt/internal/config"
	"github.com/donaldgifford/semifmt/internal/parser"
)

// Run applies each formatting rule in order, piping the output of one
// as input to the next.
func Run(tokens parser.Tokens, cfg *config.FormatterConfig, rules []FormatRule) parser.Tokens {
	result := tokens
	for _, rule := range rules {
		result = rule.Format(result, cfg)
	}
	return result
}

// Source parses src, runs rules over it and writes the result back out.
func Source(src string, cfg *config.FormatterConfig, rules []FormatRule) string {
	return Write(Run(parser.Parse(src), cfg, rules))
}
