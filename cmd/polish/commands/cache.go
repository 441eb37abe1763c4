package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/polish/internal/ui/output"
	"go.trai.ch/polish/internal/ui/style"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the lint and format cache",
	}
	cmd.AddCommand(c.newCacheClearCmd())
	return cmd
}

func (c *CLI) newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop cached results",
		Long:  "Drop the in-memory working set. With --purge the persistent store under .polish is emptied too.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			purge, _ := cmd.Flags().GetBool("purge")

			return c.withSession(cmd, func(_ context.Context, s Session) error {
				s.EvictWorkingSet()
				msg := "working set cleared"
				if purge {
					if err := s.PurgeCache(); err != nil {
						return err
					}
					msg = "cache purged"
				}

				w := cmd.OutOrStdout()
				st := style.New(output.Renderer(w))
				_, _ = fmt.Fprintln(w, st.Success.Render(style.Check+" "+msg))
				return nil
			})
		},
	}
	cmd.Flags().BoolP("purge", "p", false, "Also empty the persistent cache store")
	return cmd
}
