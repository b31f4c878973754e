// Package main is the entry point for semifmt.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	_ "github.com/donaldgifford/semifmt/internal/rules" // Register rules via init().
	"github.com/donaldgifford/semifmt/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitError carries a runner exit code through cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	cmd := rootCmd()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	var exit *exitError
	switch {
	case err == nil:
		return runner.ExitOK
	case errors.As(err, &exit):
		return exit.code
	default:
		fmt.Fprintf(os.Stderr, "semifmt: %v\n", err)
		return runner.ExitError
	}
}

func rootCmd() *cobra.Command {
	opts := &runner.Options{}
	var colorMode string

	cmd := &cobra.Command{
		Use:   "semifmt [flags] [paths...]",
		Short: "Normalize whitespace before PHP statement semicolons",
		Long: `Format PHP source files. Multi-line whitespace in front of statement
terminators is collapsed, or, for multi-line method chains, moved onto a
line of its own. With no paths, reads from stdin and writes to stdout.
Directories are searched for files with the configured extensions.`,
		Version:       fmt.Sprintf("%s (%s) %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			useColor, err := resolveColor(colorMode)
			if err != nil {
				return err
			}
			setupLogging(opts.Verbose)

			opts.Files = args
			opts.Color = useColor
			if code := runner.Run(cmd.Context(), opts); code != runner.ExitOK {
				return &exitError{code: code}
			}
			return nil
		},
	}
	cmd.SetVersionTemplate("semifmt {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\n%s", err, c.UsageString())
	})

	flags := cmd.Flags()
	flags.BoolVar(&opts.Check, "check", false, "exit 1 if any file is not formatted")
	flags.BoolVarP(&opts.Diff, "diff", "d", false, "print unified diff of changes")
	flags.BoolVarP(&opts.Write, "write", "w", false, "write result to file (default for file arguments)")
	flags.StringVar(&opts.ConfigPath, "config", "", "path to config file")
	flags.StringVar(&opts.Strategy, "strategy", "", "override formatter.strategy (collapse|break-for-chains)")
	flags.StringSliceVar(&opts.Rules, "rules", nil, "only run the named rules")
	flags.IntVarP(&opts.Jobs, "jobs", "j", 0, "number of files formatted in parallel (default GOMAXPROCS)")
	flags.StringVar(&colorMode, "color", "auto", "colorize output (auto|always|never)")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress informational output")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "print files as they are processed")

	return cmd
}

// resolveColor decides whether output is colorized. auto enables color
// when stdout is a terminal and NO_COLOR is unset.
func resolveColor(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		return term.IsTerminal(int(os.Stdout.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color %q (want auto, always or never)", mode)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
