package cli

import (
	"github.com/spf13/cobra"

	"clipshelf/internal/application/projections"
)

func (a *app) listCommand() *cobra.Command {
	var (
		categories []string
		limit      int
		offset     int
	)
	cmd := &cobra.Command{
		Use:         "list",
		Short:       "Show clipboard history, newest first",
		Annotations: usesStore,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := parseCategories(categories)
			if err != nil {
				return err
			}
			result, err := projections.QueryGetHistory(cmd.Context(), projections.GetHistoryQuery{
				Categories: cats,
				Limit:      limit,
				Offset:     offset,
			}, projections.GetHistoryDeps{Items: a.ctrl.ViewContext()})
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "only these categories (repeatable)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum rows, 0 for all")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}
