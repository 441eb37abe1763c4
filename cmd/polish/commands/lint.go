package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [patterns...]",
		Short: "Report problems in the matching files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter, err := c.app.Reporter(c.flags.reporter)
			if err != nil {
				return err
			}

			return c.withSession(cmd, func(ctx context.Context, s Session) error {
				results, err := s.LintFiles(ctx, args)
				if err != nil {
					return err
				}
				if len(args) > 0 && len(results) == 0 {
					return zerr.With(domain.ErrNoFilesMatched, "patterns", args)
				}
				return reporter.Report(cmd.OutOrStdout(), results)
			})
		},
	}
}
