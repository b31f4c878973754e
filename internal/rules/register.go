package rules

import (
	"github.com/donaldgifford/semifmt/internal/rules/format"
)

func init() {
	// Rules are registered in execution order. The semicolon rule runs
	// first so the whitespace rules clean up after comment relocation.
	RegisterFormatRule(&format.MultilineWhitespaceBeforeSemicolons{})
	RegisterFormatRule(&format.TrailingWhitespace{})
	RegisterFormatRule(&format.BlankLines{})
	RegisterFormatRule(&format.FinalNewline{})
}
