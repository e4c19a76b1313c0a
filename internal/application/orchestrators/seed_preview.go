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

// SeedPreviewContext defines the unit-of-work methods needed by SeedPreview.
type SeedPreviewContext interface {
	Insert(value clipboard.Item) error
	Save(ctx context.Context) persistence.SaveResult
}

// SeedPreviewDeps holds dependencies for SeedPreview.
type SeedPreviewDeps struct {
	Context SeedPreviewContext
	Now     func() time.Time // injectable for testing
}

// ExecuteSeedPreview fills a store with n sample items for previews and demos.
// Item i reads "Sample text i", has category i mod 7, and is stamped i
// milliseconds after now, so the newest sample lists first.
// PRE: n > 0; normally run against an ephemeral store
// POST: all n items are committed by a single save
func ExecuteSeedPreview(ctx context.Context, n int, deps SeedPreviewDeps) (persistence.SaveResult, error) {
	if n <= 0 {
		return persistence.SaveResult{}, errors.New("sample count must be positive")
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	count := len(clipboard.AllCategories())
	for i := 0; i < n; i++ {
		it := clipboard.NewItem(
			fmt.Sprintf("Sample text %d", i),
			clipboard.Category(i%count),
			now.Add(time.Duration(i)*time.Millisecond),
		)
		if err := deps.Context.Insert(it); err != nil {
			return persistence.SaveResult{}, err
		}
	}

	res := deps.Context.Save(ctx)
	if res.Outcome == persistence.SaveFailed {
		return res, fmt.Errorf("seed not saved: %w", res.Err)
	}
	slog.Info("seed_event", "event", "preview_seeded", "items", n)
	return res, nil
}
