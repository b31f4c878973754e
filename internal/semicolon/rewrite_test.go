package semicolon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/semifmt/internal/parser"
)

func fix(input string, opts Options) string {
	return Rewrite(parser.Parse(input), opts).String()
}

var (
	collapse = Options{Strategy: StrategyCollapse, Style: DefaultStyle()}
	chained  = Options{Strategy: StrategyBreakForChains, Style: DefaultStyle()}
	chained1 = Options{Strategy: StrategyBreakForChains, Style: DefaultStyle(), MinChainOperators: 1}
)

type fixCase struct {
	name     string
	input    string
	expected string // Empty means the input must come back unchanged.
}

func runFixCases(t *testing.T, opts Options, tests []fixCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.expected
			if want == "" {
				want = tt.input
			}
			got := fix(tt.input, opts)
			require.Equal(t, want, got)

			// Running the rule again must not change anything.
			require.Equal(t, got, fix(got, opts), "not idempotent")
		})
	}
}

func TestCollapse(t *testing.T) {
	runFixCases(t, collapse, []fixCase{
		{
			name:     "trailing comment moves behind semicolon",
			input:    "<?php\n                    $foo->bar() // test\n                    ;",
			expected: "<?php\n                    $foo->bar(); // test",
		},
		{
			name:     "one line call",
			input:    "<?php echo(1) // test\n;",
			expected: "<?php echo(1); // test",
		},
		{
			name:  "already collapsed",
			input: "<?php echo(1); // test\n",
		},
		{
			name:     "hash comment and blank lines",
			input:    "<?php\n    $foo->bar() # test\n\n\n                ;",
			expected: "<?php\n    $foo->bar(); # test",
		},
		{
			name:     "comment gap is preserved",
			input:    "<?php\n    $foo->bar()// test\n\n\n                ;",
			expected: "<?php\n    $foo->bar();// test",
		},
		{
			name:  "semicolon right after open tag",
			input: "<?php\n;",
		},
		{
			name:  "short echo tag",
			input: "<?= $a; ?>",
		},
		{
			name:     "chain collapses",
			input:    "<?php\n$this\n    ->setName('readme1')\n    ->setDescription('Generates the README')\n;\n",
			expected: "<?php\n$this\n    ->setName('readme1')\n    ->setDescription('Generates the README');\n",
		},
		{
			name:     "indented semicolon collapses",
			input:    "<?php\nself\n    ::setName('readme2')\n    ->setDescription('Generates the README')\n    ;\n",
			expected: "<?php\nself\n    ::setName('readme2')\n    ->setDescription('Generates the README');\n",
		},
		{
			name:  "same line space is left alone",
			input: "<?php $this->foo() ;",
		},
		{
			name:  "semicolons inside strings",
			input: `<?php echo "$this->foo('with param containing ;') ;" ;`,
		},
		{
			name:  "close tag",
			input: `<?php $this->foo("with param containing ) ; ")  ; ?>`,
		},
		{
			name:     "blank line before semicolon",
			input:    "<?php\n$this\n    ->example()\n\n    ;",
			expected: "<?php\n$this\n    ->example();",
		},
		{
			name:     "arithmetic continuation",
			input:    "<?php\n$seconds = $minutes\n    * (int) '60' // seconds in a minute\n;",
			expected: "<?php\n$seconds = $minutes\n    * (int) '60'; // seconds in a minute",
		},
		{
			name:     "crlf",
			input:    "<?php echo(1) // test\r\n;",
			expected: "<?php echo(1); // test",
		},
		{
			name:     "block comment stays before semicolon",
			input:    "<?php foo() /* note */\n;",
			expected: "<?php foo() /* note */;",
		},
		{
			name:  "comment on its own line is not attached",
			input: "<?php foo()\n// note\n;",
		},
		{
			name:  "for header separators",
			input: "<?php for ($i = 0;\n    $i < 3;\n    $i++) {\n}\n",
		},
		{
			name:     "statement inside closure",
			input:    "<?php\n$a->b(function () {\n    return 1\n    ;\n});\n",
			expected: "<?php\n$a->b(function () {\n    return 1;\n});\n",
		},
	})
}

func TestBreakForChains(t *testing.T) {
	runFixCases(t, chained, []fixCase{
		{
			name:     "terminator line added",
			input:    "<?php\n\n        $this\n            ->method1()\n            ->method2();\n    ?>",
			expected: "<?php\n\n        $this\n            ->method1()\n            ->method2()\n        ;\n    ?>",
		},
		{
			name:     "trailing comment stays on the call line",
			input:    "<?php\n\n        $this\n            ->method1()\n            ->method2(); // comment\n\n\n",
			expected: "<?php\n\n        $this\n            ->method1()\n            ->method2() // comment\n        ;\n\n\n",
		},
		{
			name:     "indentation follows the base line",
			input:    "<?php\n  $service\n      ->method1()\n          ->method2();",
			expected: "<?php\n  $service\n      ->method1()\n          ->method2()\n  ;",
		},
		{
			name:  "single operator is not a chain",
			input: "<?php\n$service\n    ->method2();\n",
		},
		{
			name:  "single line chains",
			input: "<?php\n$service->method1();\n$service->method2()->method3() ;\n",
		},
		{
			name:     "collapse when not a chain",
			input:    "<?php\n$foo->bar()\n;\n",
			expected: "<?php\n$foo->bar();\n",
		},
		{
			name: "closure argument",
			input: "<?php\n$service\n    ->method2(function ($a) {\n        $a->otherCall()\n" +
				"            ->a()\n            ->b();\n    })\n    ->method3();\n",
			expected: "<?php\n$service\n    ->method2(function ($a) {\n        $a->otherCall()\n" +
				"            ->a()\n            ->b()\n        ;\n    })\n    ->method3()\n;\n",
		},
		{
			name:     "switch arm with one operator",
			input:    "<?php\nswitch ($foo) {\n    case 1:\n        $bar\n            ->baz()\n              ;\n}\n",
			expected: "<?php\nswitch ($foo) {\n    case 1:\n        $bar\n            ->baz();\n}\n",
		},
		{
			name:     "block comment after semicolon moves",
			input:    "<?php\n    $s\n        ->a()\n        ->b(); /* c */\n",
			expected: "<?php\n    $s\n        ->a()\n        ->b() /* c */\n    ;\n",
		},
		{
			name:     "misaligned terminator is realigned",
			input:    "<?php\n$this\n    ->setName('a')\n    ->setDescription('b')\n    ;\n",
			expected: "<?php\n$this\n    ->setName('a')\n    ->setDescription('b')\n;\n",
		},
		{
			name:     "code after the semicolon stays put",
			input:    "<?php\n$a\n    ->b()\n    ->c(); $d = 1;\n",
			expected: "<?php\n$a\n    ->b()\n    ->c()\n; $d = 1;\n",
		},
		{
			name:     "comment before misplaced terminator",
			input:    "<?php\n$a\n    ->b()\n    ->c() // c\n    ;\n",
			expected: "<?php\n$a\n    ->b()\n    ->c() // c\n;\n",
		},
		{
			name:     "nullsafe operators",
			input:    "<?php\n\n    $foo?->method1()\n        ?->method2()\n        ?->method3();\n    ",
			expected: "<?php\n\n    $foo?->method1()\n        ?->method2()\n        ?->method3()\n    ;\n    ",
		},
		{
			name:     "dynamic member",
			input:    "<?php\n$this\n    ->foo()\n    ->{$bar ? 'bar' : 'baz'}();\n",
			expected: "<?php\n$this\n    ->foo()\n    ->{$bar ? 'bar' : 'baz'}()\n;\n",
		},
		{
			name:  "operators inside array literal do not count",
			input: "<?php\n$bar = [\n    1 => 2,\n    3 => $baz->method()->other(),\n];\n",
		},
	})
}

func TestBreakForChainsSingleOperator(t *testing.T) {
	runFixCases(t, chained1, []fixCase{
		{
			name:     "single operator chain",
			input:    "<?php\n$service\n    ->method2();\n",
			expected: "<?php\n$service\n    ->method2()\n;\n",
		},
		{
			name:     "switch arm",
			input:    "<?php\nswitch ($foo) {\n    case 1:\n        $bar\n            ->baz()\n              ;\n}\n",
			expected: "<?php\nswitch ($foo) {\n    case 1:\n        $bar\n            ->baz()\n        ;\n}\n",
		},
		{
			name: "function bodies",
			input: "<?php\nfunction foo($bar)\n{\n    if ($bar === 1) {\n        $baz\n            ->bar();\n    }\n\n" +
				"    return (new Foo($bar))\n        ->baz();\n}\n",
			expected: "<?php\nfunction foo($bar)\n{\n    if ($bar === 1) {\n        $baz\n            ->bar()\n        ;\n    }\n\n" +
				"    return (new Foo($bar))\n        ->baz()\n    ;\n}\n",
		},
		{
			name:     "one line call stays collapsed",
			input:    "<?php\n$foo->bar()\n;\n",
			expected: "<?php\n$foo->bar();\n",
		},
	})
}

func TestBreakForChainsMessyWhitespace(t *testing.T) {
	opts := Options{
		Strategy: StrategyBreakForChains,
		Style:    Style{Indent: "\t", LineEnding: "\r\n"},
	}
	runFixCases(t, opts, []fixCase{
		{
			name:     "crlf and spaces",
			input:    "<?php\r\n\r\n   $this\r\n\t->method1()\r\n\t\t->method2();",
			expected: "<?php\r\n\r\n   $this\r\n\t->method1()\r\n\t\t->method2()\r\n   ;",
		},
		{
			name:     "crlf and tabs",
			input:    "<?php\r\n\r\n\t$this->method1()\r\n\t\t->method2()\r\n\t\t->method(3);",
			expected: "<?php\r\n\r\n\t$this->method1()\r\n\t\t->method2()\r\n\t\t->method(3)\r\n\t;",
		},
	})
}

func TestStatementBoundaries(t *testing.T) {
	runFixCases(t, chained, []fixCase{
		{
			name:  "destructuring after if block",
			input: "<?php\nif ($a) {\n    foo();\n}\n[$x, $y] = $this->a()->b();\n",
		},
		{
			name:  "parenthesized expression after function body",
			input: "<?php\nfunction () {\n}\n($x)->a()->b();\n",
		},
		{
			name:  "parenthesized expression after method declaration",
			input: "<?php\nclass A {\n    #[Pure] public function f() {\n    }\n}\n($x)->a()->b();\n",
		},
		{
			name:     "closure value continued by a call",
			input:    "<?php\n$r = (function () {\n    return 1;\n})\n    ->call($o)\n    ->x();\n",
			expected: "<?php\n$r = (function () {\n    return 1;\n})\n    ->call($o)\n    ->x()\n;\n",
		},
		{
			name:     "match continued by a chain",
			input:    "<?php\n    $v = match ($k) {\n        1 => $a,\n    }\n        ->b()\n        ->c();\n",
			expected: "<?php\n    $v = match ($k) {\n        1 => $a,\n    }\n        ->b()\n        ->c()\n    ;\n",
		},
		{
			name:     "ternary keeps the statement base",
			input:    "<?php\n    $x = $cond\n        ? $a\n        : $c\n            ->d()\n            ->e();\n",
			expected: "<?php\n    $x = $cond\n        ? $a\n        : $c\n            ->d()\n            ->e()\n    ;\n",
		},
		{
			name:     "ternary branches count toward the chain",
			input:    "<?php\n$x = $cond\n    ? $a->b()\n    : $c->d();\n",
			expected: "<?php\n$x = $cond\n    ? $a->b()\n    : $c->d()\n;\n",
		},
		{
			name:  "short ternary on one line",
			input: "<?php\n$x = $a ?: $b->c()->d();\n",
		},
		{
			name:     "case label",
			input:    "<?php\nswitch ($a) {\n    case 1:\n        $b\n            ->c()\n            ->d();\n}\n",
			expected: "<?php\nswitch ($a) {\n    case 1:\n        $b\n            ->c()\n            ->d()\n        ;\n}\n",
		},
		{
			name:     "alternative syntax header",
			input:    "<?php\nif ($a):\n    $b\n        ->c()\n        ->d();\nendif;\n",
			expected: "<?php\nif ($a):\n    $b\n        ->c()\n        ->d()\n    ;\nendif;\n",
		},
		{
			name:     "else label",
			input:    "<?php\nif ($a):\n    foo();\nelse:\n    $b\n        ->c()\n        ->d();\nendif;\n",
			expected: "<?php\nif ($a):\n    foo();\nelse:\n    $b\n        ->c()\n        ->d()\n    ;\nendif;\n",
		},
		{
			name:     "return type colon",
			input:    "<?php\nfunction f(): int {\n    return $a\n        ->b()\n        ->c();\n}\n",
			expected: "<?php\nfunction f(): int {\n    return $a\n        ->b()\n        ->c()\n    ;\n}\n",
		},
	})
}

func TestCommentAfterBlockComment(t *testing.T) {
	const input = "<?php\n$a\n    ->b()\n    ->c() /* x */ // y\n    ;\n"

	require.Equal(t,
		"<?php\n$a\n    ->b()\n    ->c(); /* x */ // y\n",
		fix(input, collapse))
	require.Equal(t,
		"<?php\n$a\n    ->b()\n    ->c() /* x */ // y\n;\n",
		fix(input, chained))
	require.Equal(t,
		"<?php $a->b(); /* x */ // y\n",
		fix("<?php $a->b() /* x */ // y\n;\n", chained))
}

func TestRewriteDoesNotMutateInput(t *testing.T) {
	tokens := parser.Parse("<?php\n$a\n    ->b()\n    ->c();\n")
	before := tokens.Clone()

	_ = Rewrite(tokens, chained)

	require.Equal(t, before, tokens)
}

func TestRewritePreservesSignificantTokens(t *testing.T) {
	inputs := []string{
		"<?php\n$a\n    ->b()\n    ->c(); // x\n",
		"<?php\n$a->b() // x\n\n;\n",
		"<?php\n$s\n    ->m(function () {\n        $x\n            ->y()\n            ->z();\n    });\n",
		"<?php foo() /* a */\n;",
		"<?php\n$a\n  ->b()\n  ->c(); $d = 1;",
	}

	for _, opts := range []Options{collapse, chained, chained1} {
		for _, input := range inputs {
			tokens := parser.Parse(input)
			got := Rewrite(tokens, opts)
			require.Equal(t, tokens.Significant(), got.Significant(), "strategy %v, input %q", opts.Strategy, input)
		}
	}
}

func TestRewriteUnbalancedInput(t *testing.T) {
	inputs := []string{
		"<?php } } $a\n;",
		"<?php $a->b(\n;",
		"<?php ;;;",
		"",
	}

	for _, input := range inputs {
		require.NotPanics(t, func() {
			_ = fix(input, chained)
		})
	}

	require.Equal(t, "<?php } } $a;", fix("<?php } } $a\n;", collapse))
}
