package projections

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"clipshelf/internal/adapters/storage/item"
	"clipshelf/internal/domain/clipboard"
)

// PreviewLength is the longest preview, in runes, before truncation.
const PreviewLength = 100

// EncryptedPreview replaces the content of sealed items.
const EncryptedPreview = "•••••• (encrypted)"

// GetHistoryQuery carries input for the history projection.
type GetHistoryQuery struct {
	Categories []clipboard.Category // empty means all
	Limit      int                  // 0 means no limit
	Offset     int
}

// GetHistoryDeps holds dependencies for the history projection.
type GetHistoryDeps struct {
	Items ItemLister
}

// HistoryRow is one display line of clipboard history.
type HistoryRow struct {
	ID         string
	Timestamp  time.Time
	Category   clipboard.Category
	Descriptor clipboard.Descriptor
	Preview    string
	Encrypted  bool
	Truncated  bool
}

// HistoryResult carries the output of the history projection.
type HistoryResult struct {
	TotalItems int // every stored item, ignoring the filter
	Rows       []HistoryRow
}

// QueryGetHistory lists clipboard history newest first, ready for display.
// PRE: Limit and Offset are non-negative
// POST: encrypted rows never expose their content
func QueryGetHistory(ctx context.Context, query GetHistoryQuery, deps GetHistoryDeps) (HistoryResult, error) {
	items, err := deps.Items.List(ctx, item.ListFilter{
		Categories: query.Categories,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		return HistoryResult{}, err
	}
	total, err := deps.Items.Count(ctx)
	if err != nil {
		return HistoryResult{}, err
	}

	result := HistoryResult{TotalItems: total, Rows: make([]HistoryRow, 0, len(items))}
	for _, it := range items {
		row := HistoryRow{
			ID:         it.ID,
			Timestamp:  it.Timestamp,
			Category:   it.Category,
			Descriptor: it.Category.Describe(),
			Encrypted:  it.IsEncrypted,
		}
		if it.IsEncrypted {
			row.Preview = EncryptedPreview
		} else {
			row.Preview, row.Truncated = Preview(it.Content, PreviewLength)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// Preview collapses runs of whitespace to single spaces and cuts the text to
// at most limit runes, ending with an ellipsis when cut.
func Preview(content string, limit int) (string, bool) {
	s := strings.Join(strings.Fields(content), " ")
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:limit-1]), " ") + "…", true
}
