package semicolon

// DefaultMinChainOperators is the number of fluent operators a multi-line
// statement needs before StrategyBreakForChains treats it as a chain.
const DefaultMinChainOperators = 2

// Style is the whitespace used whenever the rewriter synthesizes new text.
type Style struct {
	Indent     string // One level of indentation, e.g. "    " or "\t".
	LineEnding string // "\n" or "\r\n".
}

// DefaultStyle returns four-space indentation with "\n" line endings.
func DefaultStyle() Style {
	return Style{Indent: "    ", LineEnding: "\n"}
}

// Options configures Rewrite.
type Options struct {
	Strategy Strategy
	Style    Style

	// MinChainOperators is the fluent-operator threshold for
	// StrategyBreakForChains. Zero means DefaultMinChainOperators.
	MinChainOperators int
}

func (o Options) withDefaults() Options {
	if o.MinChainOperators <= 0 {
		o.MinChainOperators = DefaultMinChainOperators
	}
	if o.Style.LineEnding == "" {
		o.Style.LineEnding = "\n"
	}
	return o
}
