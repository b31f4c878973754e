// Package runner orchestrates the parse -> format -> output pipeline.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/diff"
	"github.com/pkg/diff/write"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/semifmt/internal/config"
	"github.com/donaldgifford/semifmt/internal/formatter"
	"github.com/donaldgifford/semifmt/internal/rules"
	"github.com/donaldgifford/semifmt/internal/semicolon"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFormatDiff = 1
	ExitError      = 2
)

// Options configures the runner behavior.
type Options struct {
	Files      []string
	Check      bool
	Diff       bool
	Write      bool
	ConfigPath string
	// Strategy overrides formatter.strategy from the config file.
	Strategy string
	// Rules restricts formatting to the named rules. Empty means all.
	Rules   []string
	Jobs    int
	Color   bool
	Quiet   bool
	Verbose bool
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// result is the outcome of formatting one file.
type result struct {
	path   string
	input  string
	output string
	err    error
}

func (r *result) changed() bool {
	return r.input != r.output
}

// Run executes the format pipeline and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	p := newPrinter(opts)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		p.errorf("semifmt: %v\n", err)
		return ExitError
	}
	if opts.Strategy != "" {
		s, err := semicolon.ParseStrategy(opts.Strategy)
		if err != nil {
			p.errorf("semifmt: --strategy: %v\n", err)
			return ExitError
		}
		cfg.Formatter.Strategy = s
	}

	formatRules, err := selectRules(opts.Rules)
	if err != nil {
		p.errorf("semifmt: %v\n", err)
		return ExitError
	}

	// stdin mode: no files given.
	if len(opts.Files) == 0 {
		return runStdin(opts, p, cfg, formatRules)
	}

	files, err := collectFiles(opts.Files, &cfg.Files)
	if err != nil {
		p.errorf("semifmt: %v\n", err)
		return ExitError
	}

	results, err := formatFiles(ctx, files, opts.Jobs, cfg, formatRules)
	if err != nil {
		p.errorf("semifmt: %v\n", err)
		return ExitError
	}

	exitCode := ExitOK
	for _, res := range results {
		code := report(opts, p, res)
		if code > exitCode {
			exitCode = code
		}
	}
	return exitCode
}

// selectRules resolves rule names against the registry, keeping
// registration order.
func selectRules(names []string) ([]formatter.FormatRule, error) {
	if len(names) == 0 {
		return rules.FormatRules(), nil
	}

	want := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := rules.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
		want[name] = true
	}

	var selected []formatter.FormatRule
	for _, r := range rules.FormatRules() {
		if want[r.Name()] {
			selected = append(selected, r)
		}
	}
	return selected, nil
}

// formatFiles formats files concurrently. Results are returned in input
// order; per-file read errors are carried in the result.
func formatFiles(ctx context.Context, files []string, jobs int, cfg *config.Config, formatRules []formatter.FormatRule) ([]*result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = formatFile(path, cfg, formatRules)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func formatFile(path string, cfg *config.Config, formatRules []formatter.FormatRule) *result {
	start := time.Now()

	src, err := os.ReadFile(path)
	if err != nil {
		return &result{path: path, err: err}
	}

	res := &result{path: path, input: string(src)}
	res.output = formatter.Source(res.input, &cfg.Formatter, formatRules)

	slog.Debug("formatted file",
		"path", path,
		"changed", res.changed(),
		"duration", time.Since(start))
	return res
}

func runStdin(opts *Options, p *printer, cfg *config.Config, formatRules []formatter.FormatRule) int {
	src, err := io.ReadAll(opts.Stdin)
	if err != nil {
		p.errorf("semifmt: reading stdin: %v\n", err)
		return ExitError
	}

	input := string(src)
	output := formatter.Source(input, &cfg.Formatter, formatRules)

	if opts.Check {
		if input != output {
			return ExitFormatDiff
		}
		return ExitOK
	}

	if opts.Diff {
		if input == output {
			return ExitOK
		}
		if err := p.diff("<stdin>", input, output); err != nil {
			p.errorf("semifmt: %v\n", err)
			return ExitError
		}
		return ExitFormatDiff
	}

	p.out(output)
	return ExitOK
}

// report prints the outcome for one file and applies write mode.
func report(opts *Options, p *printer, res *result) int {
	if res.err != nil {
		p.errorf("semifmt: %v\n", res.err)
		return ExitError
	}

	if opts.Verbose {
		p.info("%s\n", res.path)
	}

	if opts.Check {
		if res.changed() {
			if !opts.Quiet {
				p.status(p.warn, "%s\n", res.path)
			}
			return ExitFormatDiff
		}
		return ExitOK
	}

	if opts.Diff {
		if !res.changed() {
			return ExitOK
		}
		if err := p.diff(res.path, res.input, res.output); err != nil {
			p.errorf("semifmt: %v\n", err)
			return ExitError
		}
		return ExitFormatDiff
	}

	// Write mode (default for file args).
	if !res.changed() {
		return ExitOK
	}

	if err := writeFile(res.path, res.output); err != nil {
		p.errorf("semifmt: writing %s: %v\n", res.path, err)
		return ExitError
	}
	if !opts.Quiet {
		p.status(p.ok, "reformatted %s\n", res.path)
	}
	return ExitOK
}

// writeFile replaces the file contents, keeping its permissions.
func writeFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}

// printer writes user-facing output, colorized when enabled.
type printer struct {
	stdout, stderr io.Writer
	colored        bool
	ok, warn, bad  *color.Color
}

func newPrinter(opts *Options) *printer {
	p := &printer{
		stdout:  opts.Stdout,
		stderr:  opts.Stderr,
		colored: opts.Color,
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow, color.Bold),
		bad:     color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.ok, p.warn, p.bad} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) out(s string) {
	fmt.Fprint(p.stdout, s)
}

func (p *printer) info(format string, args ...any) {
	fmt.Fprintf(p.stderr, format, args...)
}

func (p *printer) status(c *color.Color, format string, args ...any) {
	c.Fprintf(p.stderr, format, args...)
}

func (p *printer) errorf(format string, args ...any) {
	p.bad.Fprintf(p.stderr, format, args...)
}

// diff writes a unified diff between the original and formatted text.
func (p *printer) diff(name, before, after string) error {
	var opts []write.Option
	if p.colored {
		opts = append(opts, write.TerminalColor())
	}
	return diff.Text("a/"+name, "b/"+name, before, after, p.stdout, opts...)
}
