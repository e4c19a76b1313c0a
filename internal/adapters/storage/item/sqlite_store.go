package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"clipshelf/internal/adapters/storage"
	domain "clipshelf/internal/domain/clipboard"
)

// timeLayout is fixed-width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const itemColumns = `id, timestamp, content, category, type, is_encrypted`

const insertSQL = `INSERT INTO clipboard_item (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

const upsertSQL = insertSQL + `
	ON CONFLICT(id) DO UPDATE SET timestamp=excluded.timestamp, content=excluded.content,
	category=excluded.category, type=excluded.type, is_encrypted=excluded.is_encrypted`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLiteStore.
// PRE: db is a valid, migrated database connection
// POST: store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (domain.Item, error) {
	var it domain.Item
	var ts string
	var category, typ, encrypted int
	if err := row.Scan(&it.ID, &ts, &it.Content, &category, &typ, &encrypted); err != nil {
		return domain.Item{}, err
	}
	parsed, err := time.Parse(timeLayout, ts)
	if err != nil {
		// rows written by older builds used RFC3339
		if parsed, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return domain.Item{}, fmt.Errorf("item %s: bad timestamp %q: %w", it.ID, ts, err)
		}
	}
	it.Timestamp = parsed.UTC()
	it.Category = domain.Category(category)
	it.Type = domain.ItemType(typ)
	it.IsEncrypted = encrypted == 1
	return it, nil
}

func itemArgs(it domain.Item) []any {
	return []any{it.ID, it.Timestamp.UTC().Format(timeLayout), it.Content, int(it.Category), int(it.Type), boolToInt(it.IsEncrypted)}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// GetByID retrieves an item by its ID.
// PRE: id is non-empty
// POST: returns the item, or an error wrapping ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM clipboard_item WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return it, err
}

// List returns items matching the filter, newest first.
// PRE: filter has valid parameters
// POST: returns matching items or empty slice
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM clipboard_item WHERE 1=1`
	args := []any{}

	if len(filter.Categories) > 0 {
		placeholders := make([]string, len(filter.Categories))
		for i, c := range filter.Categories {
			placeholders[i] = "?"
			args = append(args, int(c))
		}
		query += ` AND category IN (` + strings.Join(placeholders, ", ") + `)`
	}

	query += ` ORDER BY timestamp DESC, rowid DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	} else if filter.Offset > 0 {
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Count returns the number of stored items.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clipboard_item`).Scan(&n)
	return n, err
}

// Save inserts or updates an item.
// PRE: value has been validated
// POST: item is persisted
func (s *SQLiteStore) Save(ctx context.Context, value domain.Item) error {
	_, err := s.db.ExecContext(ctx, upsertSQL, itemArgs(value)...)
	return err
}

// Delete removes an item by ID. Deleting a missing ID is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM clipboard_item WHERE id = ?`, id)
	return err
}

// Apply commits a batch in one transaction: inserts (which fail on an
// existing ID), then updates (upserts, last writer wins), then deletes.
// PRE: every item in the batch has been validated
// POST: either every mutation is committed or none is
func (s *SQLiteStore) Apply(ctx context.Context, batch Batch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, it := range batch.Inserts {
		if _, err := tx.ExecContext(ctx, insertSQL, itemArgs(it)...); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", it.ID, err)
		}
	}
	for _, it := range batch.Updates {
		if _, err := tx.ExecContext(ctx, upsertSQL, itemArgs(it)...); err != nil {
			return fmt.Errorf("failed to update item %s: %w", it.ID, err)
		}
	}
	for _, id := range batch.Deletes {
		if _, err := tx.ExecContext(ctx, `DELETE FROM clipboard_item WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete item %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
