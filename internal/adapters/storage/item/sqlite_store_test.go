package item

import (
	"context"
	"errors"
	"testing"
	"time"

	"clipshelf/internal/adapters/storage"
	domain "clipshelf/internal/domain/clipboard"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := storage.OpenEphemeral()
	if err != nil {
		t.Fatalf("OpenEphemeral: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(db)
}

var base = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

func testItem(id, content string, c domain.Category, offset time.Duration) domain.Item {
	return domain.Item{
		ID:        id,
		Timestamp: base.Add(offset),
		Content:   content,
		Category:  c,
		Type:      domain.TypeFor(c),
	}
}

// TestSQLiteStore_SaveAndGet tests that every field survives a round trip.
func TestSQLiteStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := testItem("i1", "secret", domain.CategoryImage, 1500*time.Microsecond)
	want.IsEncrypted = true
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.GetByID(ctx, "i1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, want.Timestamp)
	}
	got.Timestamp = want.Timestamp
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

// TestSQLiteStore_GetByID_NotFound tests the not-found error.
func TestSQLiteStore_GetByID_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestSQLiteStore_List_OrderAndFilter tests newest-first ordering, category filter and paging.
func TestSQLiteStore_List_OrderAndFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	items := []domain.Item{
		testItem("a", "first", domain.CategoryText, 0),
		testItem("b", "https://go.dev", domain.CategoryLink, time.Minute),
		testItem("c", "x := 1", domain.CategoryCode, 2*time.Minute),
		testItem("d", "https://pkg.go.dev", domain.CategoryLink, 3*time.Minute),
	}
	for _, it := range items {
		if err := s.Save(ctx, it); err != nil {
			t.Fatalf("Save %s: %v", it.ID, err)
		}
	}

	all, err := s.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if ids := idsOf(all); ids != "d,c,b,a" {
		t.Errorf("order = %s, want d,c,b,a", ids)
	}

	links, _ := s.List(ctx, ListFilter{Categories: []domain.Category{domain.CategoryLink}})
	if ids := idsOf(links); ids != "d,b" {
		t.Errorf("links = %s, want d,b", ids)
	}

	page, _ := s.List(ctx, ListFilter{Limit: 2, Offset: 1})
	if ids := idsOf(page); ids != "c,b" {
		t.Errorf("page = %s, want c,b", ids)
	}

	tail, _ := s.List(ctx, ListFilter{Offset: 3})
	if ids := idsOf(tail); ids != "a" {
		t.Errorf("tail = %s, want a", ids)
	}
}

// TestSQLiteStore_DeleteAndCount tests delete and count.
func TestSQLiteStore_DeleteAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, testItem("a", "one", domain.CategoryText, 0))
	s.Save(ctx, testItem("b", "two", domain.CategoryText, time.Second))

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete of missing id: %v", err)
	}
	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

// TestSQLiteStore_Apply_Atomic tests that a failing batch leaves no partial writes.
func TestSQLiteStore_Apply_Atomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, testItem("dup", "existing", domain.CategoryText, 0))

	batch := Batch{
		Inserts: []domain.Item{
			testItem("new", "fresh", domain.CategoryText, time.Second),
			testItem("dup", "collides", domain.CategoryText, 2*time.Second),
		},
	}
	if err := s.Apply(ctx, batch); err == nil {
		t.Fatal("expected error inserting duplicate id")
	}

	if _, err := s.GetByID(ctx, "new"); !errors.Is(err, ErrNotFound) {
		t.Errorf("partial write survived rollback: err = %v", err)
	}
	got, _ := s.GetByID(ctx, "dup")
	if got.Content != "existing" {
		t.Errorf("dup content = %q, want existing", got.Content)
	}
}

// TestSQLiteStore_Apply_Mixed tests inserts, updates and deletes in one batch.
func TestSQLiteStore_Apply_Mixed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, testItem("keep", "v1", domain.CategoryText, 0))
	s.Save(ctx, testItem("gone", "bye", domain.CategoryText, time.Second))

	updated := testItem("keep", "v2", domain.CategoryCode, 0)
	batch := Batch{
		Inserts: []domain.Item{testItem("added", "hi", domain.CategoryText, 2*time.Second)},
		Updates: []domain.Item{updated},
		Deletes: []string{"gone"},
	}
	if batch.Len() != 3 {
		t.Errorf("Len = %d, want 3", batch.Len())
	}
	if err := s.Apply(ctx, batch); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	all, _ := s.List(ctx, ListFilter{})
	if ids := idsOf(all); ids != "added,keep" {
		t.Errorf("ids = %s, want added,keep", ids)
	}
	got, _ := s.GetByID(ctx, "keep")
	if got.Content != "v2" || got.Category != domain.CategoryCode {
		t.Errorf("update not applied: %+v", got)
	}
}

func idsOf(items []domain.Item) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ","
		}
		out += it.ID
	}
	return out
}
