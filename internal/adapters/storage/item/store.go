package item

import (
	"context"
	"errors"

	domain "clipshelf/internal/domain/clipboard"
)

// ErrNotFound is returned when no item has the requested ID.
var ErrNotFound = errors.New("clipboard item not found")

// ListFilter narrows List results.
type ListFilter struct {
	Categories []domain.Category // empty means all categories
	Limit      int               // 0 means no limit
	Offset     int
}

// Batch is a set of mutations committed atomically by Apply.
type Batch struct {
	Inserts []domain.Item
	Updates []domain.Item
	Deletes []string
}

// Len returns the number of mutations in the batch.
func (b Batch) Len() int {
	return len(b.Inserts) + len(b.Updates) + len(b.Deletes)
}

// Store persists clipboard items.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Item, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Item, error)
	Count(ctx context.Context) (int, error)
	Save(ctx context.Context, value domain.Item) error
	Delete(ctx context.Context, id string) error
	Apply(ctx context.Context, batch Batch) error
}
