package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/ui/output"
	"go.trai.ch/polish/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [patterns...]",
		Short: "Format the matching files",
		Long: "Format the matching files. Without --write the files that would change are listed " +
			"and nothing is modified.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			check, _ := cmd.Flags().GetBool("check")

			return c.withSession(cmd, func(ctx context.Context, s Session) error {
				results, err := s.FormatFiles(ctx, args, write)
				if err != nil {
					return err
				}
				if len(args) > 0 && len(results) == 0 {
					return zerr.With(domain.ErrNoFilesMatched, "patterns", args)
				}
				changed := printFormatResults(cmd, results, write)
				if check && changed > 0 {
					return domain.ErrCheckFailed
				}
				return nil
			})
		},
	}
	cmd.Flags().Bool("write", false, "Write formatted output back to the files")
	cmd.Flags().Bool("check", false, "Fail when any file is not formatted")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	return cmd
}

func printFormatResults(cmd *cobra.Command, results []domain.FormatResult, write bool) int {
	w := cmd.OutOrStdout()
	st := style.New(output.Renderer(w))

	verb, summary := "would reformat", "need formatting"
	if write {
		verb, summary = "formatted", "formatted"
	}

	changed := 0
	for _, r := range results {
		if !r.Changed {
			continue
		}
		changed++
		_, _ = fmt.Fprintf(w, "%s %s\n", st.Fixable.Render(verb), r.FilePath)
	}

	if changed == 0 {
		_, _ = fmt.Fprintln(w, st.Success.Render(style.Check+" All files are formatted"))
		return 0
	}
	_, _ = fmt.Fprintf(w, "%d of %d files %s\n", changed, len(results), summary)
	return changed
}
