package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/ui/output"
	"go.trai.ch/polish/internal/ui/style"
)

func (c *CLI) newFixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix [patterns...]",
		Short: "Apply automatic fixes and report the remaining problems",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter, err := c.app.Reporter(c.flags.reporter)
			if err != nil {
				return err
			}

			return c.withSession(cmd, func(ctx context.Context, s Session) error {
				res, err := s.FixFiles(ctx, args)
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if res.Applied > 0 && c.flags.reporter != "json" {
					st := style.New(output.Renderer(w))
					_, _ = fmt.Fprintln(w, st.Fixable.Render(fmt.Sprintf(
						"%s applied %d fixes in %d files", style.Check, res.Applied, len(res.Fixed))))
				}
				if err := reporter.Report(w, res.Results); err != nil {
					return err
				}
				if errorCount(res.Results) > 0 {
					return domain.ErrCheckFailed
				}
				return nil
			})
		},
	}
}
