package cli

import (
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"clipshelf/internal/application/orchestrators"
	"clipshelf/internal/application/projections"
)

const defaultSampleCount = 5

func (a *app) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [count]",
		Short: "Fill the store with sample items and show them",
		Example: `
  # Preview five samples without touching the history file
  clipshelf --ephemeral seed
  `,
		Args:        cobra.MaximumNArgs(1),
		Annotations: usesStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := defaultSampleCount
			if len(args) == 1 {
				var err error
				if n, err = cast.ToIntE(args[0]); err != nil {
					return err
				}
			}

			view := a.ctrl.ViewContext()
			if _, err := orchestrators.ExecuteSeedPreview(cmd.Context(), n, orchestrators.SeedPreviewDeps{Context: view}); err != nil {
				return err
			}
			result, err := projections.QueryGetHistory(cmd.Context(), projections.GetHistoryQuery{Limit: n},
				projections.GetHistoryDeps{Items: view})
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), result)
		},
	}
}
