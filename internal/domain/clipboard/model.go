package clipboard

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ItemType discriminates the payload kind of an item.
type ItemType int

// Item types. The numeric values are persisted.
const (
	TypeText ItemType = iota
	TypeImage
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	return t == TypeText || t == TypeImage
}

// String returns "text" or "image".
func (t ItemType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeImage:
		return "image"
	default:
		return "unknown"
	}
}

// TypeFor returns the item type implied by a category.
func TypeFor(c Category) ItemType {
	if c == CategoryImage {
		return TypeImage
	}
	return TypeText
}

// Domain errors
var (
	ErrEmptyID      = errors.New("clipboard item ID cannot be empty")
	ErrEmptyContent = errors.New("clipboard item content cannot be empty")
	ErrInvalidType  = errors.New("clipboard item type must be one of: text, image")
	ErrZeroTime     = errors.New("clipboard item timestamp cannot be zero")
)

// Item is a single captured clipboard entry.
// INVARIANT: Category and Type are valid codes; Content is non-empty.
// When IsEncrypted is set, Content holds sealed text rather than the
// captured value.
type Item struct {
	ID          string
	Timestamp   time.Time
	Content     string
	Category    Category
	Type        ItemType
	IsEncrypted bool
}

// NewItem builds an item with a fresh ID, stamped at now (stored in UTC).
// PRE: content is non-empty
// POST: returned item has a unique ID; call Validate before persisting
func NewItem(content string, category Category, now time.Time) Item {
	return Item{
		ID:        uuid.New().String(),
		Timestamp: now.UTC(),
		Content:   content,
		Category:  category,
		Type:      TypeFor(category),
	}
}

// Validate checks the item's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (i *Item) Validate() error {
	if i.ID == "" {
		return ErrEmptyID
	}
	if i.Timestamp.IsZero() {
		return ErrZeroTime
	}
	if i.Content == "" {
		return ErrEmptyContent
	}
	if !i.Category.Valid() {
		return ErrInvalidCategory
	}
	if !i.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}
