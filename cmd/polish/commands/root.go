// Package commands implements the CLI commands for polish.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/polish/internal/app"
	"go.trai.ch/polish/internal/build"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
)

// CLI represents the command line interface for polish.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	flags   globalFlags
}

// Application opens engine sessions and provides the output collaborators the commands need.
type Application interface {
	Open(ctx context.Context, opts app.OpenOptions) (Session, error)
	Reporter(name string) (ports.Reporter, error)
	ExportMetrics(path string, metrics domain.PerformanceMetrics) error
	NewWatcher() (ports.Watcher, error)
}

// Session is an engine opened for one command invocation.
type Session interface {
	LintFiles(ctx context.Context, patterns []string) ([]domain.LintResult, error)
	FormatFiles(ctx context.Context, patterns []string, write bool) ([]domain.FormatResult, error)
	CheckFiles(ctx context.Context, patterns []string) (*app.CheckResult, error)
	FixFiles(ctx context.Context, patterns []string) (*app.FixResult, error)
	Rules(lang domain.Language) ([]app.RuleStatus, error)
	Watch(
		ctx context.Context,
		w ports.Watcher,
		patterns []string,
		window time.Duration,
		onResults func([]domain.LintResult, error),
	) error
	Metrics() domain.PerformanceMetrics
	EvictWorkingSet()
	PurgeCache() error
	Close(ctx context.Context) error
}

type globalFlags struct {
	config      string
	verbose     bool
	noParallel  bool
	workers     int
	noCache     bool
	reporter    string
	metricsFile string
	traceFile   string
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "polish",
		Short:         "Lint and format CSS, HTML, JavaScript, TypeScript and YAML",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.flags.config, "config", "c", "", "Path to polish.yaml (default: discovered from the working directory)")
	pf.BoolVar(&c.flags.verbose, "verbose", false, "Show debug output")
	pf.BoolVar(&c.flags.noParallel, "no-parallel", false, "Process files sequentially")
	pf.IntVarP(&c.flags.workers, "workers", "w", 0, "Number of files processed per batch")
	pf.BoolVarP(&c.flags.noCache, "no-cache", "n", false, "Keep the cache in memory only")
	pf.StringVarP(&c.flags.reporter, "reporter", "r", "stylish", "Output format: stylish or json")
	pf.StringVar(&c.flags.metricsFile, "metrics-file", "", "Write performance metrics as a Prometheus textfile")
	pf.StringVar(&c.flags.traceFile, "trace-file", "", "Write OpenTelemetry spans to this file")

	rootCmd.AddCommand(c.newLintCmd())
	rootCmd.AddCommand(c.newFormatCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newFixCmd())
	rootCmd.AddCommand(c.newRulesCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) openOptions() app.OpenOptions {
	f := c.flags
	return app.OpenOptions{
		ConfigPath: f.config,
		TraceFile:  f.traceFile,
		Override: func(cfg *domain.Config) {
			if f.verbose {
				cfg.Verbose = true
			}
			if f.noParallel {
				cfg.Parallel = false
			}
			if f.workers > 0 {
				cfg.Workers = f.workers
			}
			if f.noCache {
				cfg.Cache.Enabled = false
			}
		},
	}
}

// withSession opens a session, runs fn and then exports metrics and closes the session.
func (c *CLI) withSession(cmd *cobra.Command, fn func(ctx context.Context, s Session) error) (err error) {
	ctx := cmd.Context()
	s, err := c.app.Open(ctx, c.openOptions())
	if err != nil {
		return err
	}

	defer func() {
		if c.flags.metricsFile != "" {
			err = errors.Join(err, c.app.ExportMetrics(c.flags.metricsFile, s.Metrics()))
		}
		err = errors.Join(err, s.Close(context.WithoutCancel(ctx)))
	}()

	return fn(ctx, s)
}

func errorCount(results []domain.LintResult) int {
	n := 0
	for i := range results {
		n += results[i].ErrorCount
	}
	return n
}
