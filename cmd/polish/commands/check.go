package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/polish/internal/core/domain"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [patterns...]",
		Short: "Lint the matching files and fail on any error",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter, err := c.app.Reporter(c.flags.reporter)
			if err != nil {
				return err
			}

			return c.withSession(cmd, func(ctx context.Context, s Session) error {
				res, err := s.CheckFiles(ctx, args)
				if err != nil {
					return err
				}
				if err := reporter.Report(cmd.OutOrStdout(), res.Results); err != nil {
					return err
				}
				if !res.Passed {
					return domain.ErrCheckFailed
				}
				return nil
			})
		},
	}
}
