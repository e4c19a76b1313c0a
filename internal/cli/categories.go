package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"clipshelf/internal/domain/clipboard"
)

func (a *app) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List item categories with their codes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, c := range clipboard.AllCategories() {
				d := c.Describe()
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", int(c), c.String(), paint(d), d.Icon, clipboard.ColorHex[d.Color])
			}
			return tw.Flush()
		},
	}
}
