package projections

import (
	"context"

	"clipshelf/internal/adapters/storage/item"
	"clipshelf/internal/domain/clipboard"
)

// ItemLister interface for clipboard history queries.
// *persistence.Context satisfies it, so projections see pending changes.
type ItemLister interface {
	List(ctx context.Context, filter item.ListFilter) ([]clipboard.Item, error)
	Count(ctx context.Context) (int, error)
}
