// Package config defines the configuration types and defaults for semifmt.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/donaldgifford/semifmt/internal/semicolon"
)

// ErrInvalid is wrapped by every validation error returned from Validate.
var ErrInvalid = errors.New("invalid config")

// Config is the top-level configuration.
type Config struct {
	Formatter FormatterConfig `yaml:"formatter" toml:"formatter"`
	Files     FilesConfig     `yaml:"files" toml:"files"`
}

// FormatterConfig holds all formatter settings.
type FormatterConfig struct {
	Strategy               semicolon.Strategy `yaml:"strategy" toml:"strategy"`
	MinChainOperators      int                `yaml:"min_chain_operators" toml:"min_chain_operators"`
	IndentStyle            string             `yaml:"indent_style" toml:"indent_style"`
	IndentWidth            int                `yaml:"indent_width" toml:"indent_width"`
	LineEnding             string             `yaml:"line_ending" toml:"line_ending"`
	TrimTrailingWhitespace bool               `yaml:"trim_trailing_whitespace" toml:"trim_trailing_whitespace"`
	InsertFinalNewline     bool               `yaml:"insert_final_newline" toml:"insert_final_newline"`
	MaxBlankLines          int                `yaml:"max_blank_lines" toml:"max_blank_lines"`
}

// FilesConfig controls which files a directory walk picks up.
type FilesConfig struct {
	Extensions []string `yaml:"extensions" toml:"extensions"`
	Exclude    []string `yaml:"exclude" toml:"exclude"`
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Formatter: FormatterConfig{
			Strategy:               semicolon.StrategyBreakForChains,
			MinChainOperators:      semicolon.DefaultMinChainOperators,
			IndentStyle:            "space",
			IndentWidth:            4,
			LineEnding:             "lf",
			TrimTrailingWhitespace: true,
			InsertFinalNewline:     true,
			MaxBlankLines:          2,
		},
		Files: FilesConfig{
			Extensions: []string{".php"},
			Exclude:    []string{"vendor"},
		},
	}
}

// Validate reports settings that cannot be turned into a whitespace style.
func (c *Config) Validate() error {
	f := c.Formatter
	switch f.IndentStyle {
	case "space", "tab":
	default:
		return fmt.Errorf("%w: indent_style %q (want space or tab)", ErrInvalid, f.IndentStyle)
	}
	if f.IndentStyle == "space" && f.IndentWidth < 1 {
		return fmt.Errorf("%w: indent_width must be at least 1, got %d", ErrInvalid, f.IndentWidth)
	}
	switch f.LineEnding {
	case "lf", "crlf":
	default:
		return fmt.Errorf("%w: line_ending %q (want lf or crlf)", ErrInvalid, f.LineEnding)
	}
	if f.MinChainOperators < 1 {
		return fmt.Errorf("%w: min_chain_operators must be at least 1, got %d", ErrInvalid, f.MinChainOperators)
	}
	return nil
}

// Indent returns one level of indentation as literal text.
func (f *FormatterConfig) Indent() string {
	if f.IndentStyle == "tab" {
		return "\t"
	}
	return strings.Repeat(" ", f.IndentWidth)
}

// LineBreak returns the configured line ending as literal text.
func (f *FormatterConfig) LineBreak() string {
	if f.LineEnding == "crlf" {
		return "\r\n"
	}
	return "\n"
}

// Style returns the whitespace style handed to the semicolon rewriter.
func (f *FormatterConfig) Style() semicolon.Style {
	return semicolon.Style{Indent: f.Indent(), LineEnding: f.LineBreak()}
}
