package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clipshelf/internal/application/persistence"
	"clipshelf/internal/domain/clipboard"
)

// ErrSealerRequired is returned when encryption is requested without a sealer.
var ErrSealerRequired = errors.New("a passphrase is required for encrypted items")

// BackgroundWriter runs a unit of work on the single background writer.
type BackgroundWriter interface {
	PerformBackground(ctx context.Context, fn func(context.Context, *persistence.Context) error) (persistence.SaveResult, error)
}

// ContentSealer encrypts item content.
type ContentSealer interface {
	Seal(plaintext string) (string, error)
}

// CaptureItemInput carries input for the capture orchestrator.
type CaptureItemInput struct {
	Content  string
	Category *clipboard.Category // nil classifies the content
	Encrypt  bool
}

// CaptureItemDeps holds dependencies for CaptureItem.
type CaptureItemDeps struct {
	Writer BackgroundWriter
	Sealer ContentSealer    // required only when Encrypt is set
	Now    func() time.Time // injectable for testing
}

// ExecuteCaptureItem records one clipboard capture.
// PRE: Content is non-empty; Category, when set, is one of the seven codes
// POST: the item is committed and visible in the view context
// INVARIANT: the category is derived from the plaintext, never the sealed form
func ExecuteCaptureItem(ctx context.Context, input CaptureItemInput, deps CaptureItemDeps) (clipboard.Item, error) {
	if input.Content == "" {
		return clipboard.Item{}, clipboard.ErrEmptyContent
	}

	category := clipboard.Classify(input.Content)
	if input.Category != nil {
		if !input.Category.Valid() {
			return clipboard.Item{}, clipboard.ErrInvalidCategory
		}
		category = *input.Category
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	it := clipboard.NewItem(input.Content, category, now)

	if input.Encrypt {
		if deps.Sealer == nil {
			return clipboard.Item{}, ErrSealerRequired
		}
		sealed, err := deps.Sealer.Seal(input.Content)
		if err != nil {
			return clipboard.Item{}, fmt.Errorf("seal content: %w", err)
		}
		it.Content = sealed
		it.IsEncrypted = true
	}

	res, err := deps.Writer.PerformBackground(ctx, func(_ context.Context, bg *persistence.Context) error {
		return bg.Insert(it)
	})
	if err != nil {
		return clipboard.Item{}, err
	}
	if res.Outcome == persistence.SaveFailed {
		return clipboard.Item{}, fmt.Errorf("capture not saved: %w", res.Err)
	}

	slog.Info("capture_event", "event", "item_captured", "item_id", it.ID,
		"category", it.Category.String(), "encrypted", it.IsEncrypted)
	return it, nil
}
