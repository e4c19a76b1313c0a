package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"clipshelf/internal/application/orchestrators"
)

func (a *app) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ...ids",
		Short: "Remove items from clipboard history",
		Example: `
  # Delete two items
  clipshelf delete 6f1c... 9a02...

  # Delete every link
  clipshelf list -n 0 -c link | awk 'NF > 3 { print $1 }' | xargs clipshelf delete
  `,
		Args:        cobra.MinimumNArgs(1),
		Annotations: usesStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := orchestrators.DeleteItemDeps{Context: a.ctrl.ViewContext()}
			for _, id := range args {
				if err := orchestrators.ExecuteDeleteItem(cmd.Context(), orchestrators.DeleteItemInput{ItemID: id}, deps); err != nil {
					return err
				}
			}
			slog.Info("clipboard history deleted", "deleted_items", len(args))
			return nil
		},
	}
}
