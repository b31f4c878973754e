package format

import (
	"github.com/donaldgifford/semifmt/internal/config"
	"github.com/donaldgifford/semifmt/internal/parser"
	"github.com/donaldgifford/semifmt/internal/semicolon"
)

// MultilineWhitespaceBeforeSemicolons normalizes line breaks between a
// statement and its terminating semicolon.
type MultilineWhitespaceBeforeSemicolons struct{}

// Name returns the config key for this rule.
func (*MultilineWhitespaceBeforeSemicolons) Name() string {
	return "multiline_whitespace_before_semicolons"
}

// Format rewrites every statement terminator using the configured
// strategy, chain threshold and whitespace style.
func (*MultilineWhitespaceBeforeSemicolons) Format(tokens parser.Tokens, cfg *config.FormatterConfig) parser.Tokens {
	return semicolon.Rewrite(tokens, semicolon.Options{
		Strategy:          cfg.Strategy,
		Style:             cfg.Style(),
		MinChainOperators: cfg.MinChainOperators,
	})
}
