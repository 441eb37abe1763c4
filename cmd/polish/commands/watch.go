package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/polish/internal/adapters/watcher" //nolint:depguard // Debounce default only
	"go.trai.ch/polish/internal/core/domain"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [patterns...]",
		Short: "Lint the matching files and again whenever they change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			window, _ := cmd.Flags().GetDuration("debounce")

			reporter, err := c.app.Reporter(c.flags.reporter)
			if err != nil {
				return err
			}

			w, err := c.app.NewWatcher()
			if err != nil {
				return err
			}

			return c.withSession(cmd, func(ctx context.Context, s Session) error {
				out := cmd.OutOrStdout()
				errOut := cmd.ErrOrStderr()
				return s.Watch(ctx, w, args, window, func(results []domain.LintResult, err error) {
					if err != nil {
						_, _ = fmt.Fprintln(errOut, "Error: "+err.Error())
						return
					}
					if err := reporter.Report(out, results); err != nil {
						_, _ = fmt.Fprintln(errOut, "Error: "+err.Error())
					}
				})
			})
		},
	}
	cmd.Flags().Duration("debounce", watcher.DefaultDebounceWindow, "Quiet period before re-linting after a change")
	return cmd
}
