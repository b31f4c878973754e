package formatter

import (
	"github.com/donaldgifford/semifmt/internal/config"
	"github.com/donaldgifford/semifmt/internal/parser"
)

// FormatRule transforms a token stream. Rules are applied in registered order.
type FormatRule interface {
	// Name returns the config key for this rule (e.g., "trim_trailing_whitespace").
	Name() string

	// Format receives the full token stream and config, returns the
	// rewritten stream. Rules must not mutate the input slice; clone it
	// where changes are needed.
	Format(tokens parser.Tokens, cfg *config.FormatterConfig) parser.Tokens
}
