package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"clipshelf/internal/application/persistence"
	"clipshelf/internal/domain/clipboard"
)

// DeleteItemContext defines the unit-of-work methods needed for deletion.
type DeleteItemContext interface {
	Get(ctx context.Context, id string) (clipboard.Item, error)
	Delete(id string) error
	Save(ctx context.Context) persistence.SaveResult
}

// DeleteItemInput carries input for the delete orchestrator.
type DeleteItemInput struct {
	ItemID string
}

// DeleteItemDeps holds dependencies for DeleteItem.
type DeleteItemDeps struct {
	Context DeleteItemContext
}

// ExecuteDeleteItem removes an item from history.
// PRE: ItemID is non-empty and refers to an existing item
// POST: the item is deleted and the deletion committed
func ExecuteDeleteItem(ctx context.Context, input DeleteItemInput, deps DeleteItemDeps) error {
	if input.ItemID == "" {
		return errors.New("item ID is required")
	}

	if _, err := deps.Context.Get(ctx, input.ItemID); err != nil {
		return err
	}
	if err := deps.Context.Delete(input.ItemID); err != nil {
		return err
	}

	res := deps.Context.Save(ctx)
	if res.Outcome == persistence.SaveFailed {
		return fmt.Errorf("delete not saved: %w", res.Err)
	}

	slog.Info("capture_event", "event", "item_deleted", "item_id", input.ItemID)
	return nil
}
