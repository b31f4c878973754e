// Package semicolon normalizes the whitespace, comment placement and line
// layout around statement-terminating semicolons.
//
// Two strategies are supported. StrategyCollapse pulls a semicolon that
// was pushed onto a following line back up against the statement, moving
// a trailing "//" or "#" comment behind it. StrategyBreakForChains does the
// same for ordinary statements but gives multi-line fluent chains a
// terminator line of their own, indented like the chain's first line:
//
//	$service
//	    ->method1()
//	    ->method2()
//	;
package semicolon

import (
	"fmt"
	"strings"
)

// Strategy selects how terminators are placed.
type Strategy int

const (
	// StrategyCollapse removes line breaks between a statement and its
	// semicolon.
	StrategyCollapse Strategy = iota
	// StrategyBreakForChains collapses like StrategyCollapse, except that
	// multi-line fluent chains end with the semicolon on its own line.
	StrategyBreakForChains
)

// strategyAliases maps accepted config spellings to strategies. The
// underscore names are the ones used by PHP-CS-Fixer configurations.
var strategyAliases = map[string]Strategy{
	"collapse":                   StrategyCollapse,
	"no_multi_line":              StrategyCollapse,
	"break-for-chains":           StrategyBreakForChains,
	"new_line_for_chained_calls": StrategyBreakForChains,
}

func (s Strategy) String() string {
	switch s {
	case StrategyCollapse:
		return "collapse"
	case StrategyBreakForChains:
		return "break-for-chains"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the strategy named by name.
func ParseStrategy(name string) (Strategy, error) {
	s, ok := strategyAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown strategy %q (want collapse or break-for-chains)", name)
	}
	return s, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so strategies can be
// read directly from YAML and TOML config files.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
