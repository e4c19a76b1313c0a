package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipshelf/internal/application/orchestrators"
)

func (a *app) showCommand() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:         "show id",
		Short:       "Print one item, decrypting it if needed",
		Args:        cobra.ExactArgs(1),
		Annotations: usesStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := orchestrators.ExecuteRevealItem(cmd.Context(), args[0], orchestrators.RevealItemDeps{
				Reader: a.ctrl.ViewContext(),
				Opener: lazyOpener{a: a, prompt: cmd.ErrOrStderr()},
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				fmt.Fprint(out, it.Content)
				return nil
			}
			d := it.Category.Describe()
			fmt.Fprintf(out, "%s %s\n", paint(d), dim.Sprint(it.Timestamp.Local().Format("2006-01-02 15:04:05")))
			if it.IsEncrypted {
				fmt.Fprintln(out, dim.Sprint("encrypted"))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, it.Content)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "print only the content")
	return cmd
}
