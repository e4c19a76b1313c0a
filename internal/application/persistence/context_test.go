package persistence

import (
	"context"
	"errors"
	"testing"

	"clipshelf/internal/adapters/storage/item"
	"clipshelf/internal/domain/clipboard"
)

func saveAll(t *testing.T, c *Context, items ...clipboard.Item) {
	t.Helper()
	for _, it := range items {
		if err := c.Insert(it); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	if res := c.Save(context.Background()); res.Outcome != SaveSaved {
		t.Fatalf("Save: %+v", res)
	}
}

// TestContext_InsertValidates tests that invalid items never become pending.
func TestContext_InsertValidates(t *testing.T) {
	c := openEphemeral(t, nil)
	view := c.ViewContext()

	bad := sample(0)
	bad.Content = ""
	if err := view.Insert(bad); !errors.Is(err, clipboard.ErrEmptyContent) {
		t.Errorf("err = %v, want ErrEmptyContent", err)
	}
	if err := view.Delete(""); !errors.Is(err, clipboard.ErrEmptyID) {
		t.Errorf("err = %v, want ErrEmptyID", err)
	}
	if view.HasChanges() {
		t.Error("invalid mutations left pending")
	}
}

// TestContext_ListOverlaysPending tests that unsaved inserts, updates and deletes are visible.
func TestContext_ListOverlaysPending(t *testing.T) {
	c := openEphemeral(t, nil)
	ctx := context.Background()
	view := c.ViewContext()

	a, b, d := sample(0), sample(1), sample(2)
	saveAll(t, view, a, b, d)

	edited := b
	edited.Content = "edited"
	fresh := sample(5)
	if err := view.Update(edited); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := view.Delete(d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := view.Insert(fresh); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := view.List(ctx, item.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	wantIDs := []string{fresh.ID, b.ID, a.ID}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d items, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("item %d = %s, want %s", i, got[i].ID, id)
		}
	}
	if got[1].Content != "edited" {
		t.Errorf("update not overlaid: %q", got[1].Content)
	}

	n, err := view.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
	if stored, _ := c.store.Count(ctx); stored != 3 {
		t.Errorf("store Count = %d before save, want 3", stored)
	}

	if _, err := view.Get(ctx, d.ID); !errors.Is(err, item.ErrNotFound) {
		t.Errorf("Get deleted = %v, want ErrNotFound", err)
	}
}

// TestContext_ListFilterAndPage tests category filters and paging over pending state.
func TestContext_ListFilterAndPage(t *testing.T) {
	c := openEphemeral(t, nil)
	ctx := context.Background()
	view := c.ViewContext()

	saveAll(t, view, sample(0), sample(1), sample(7))
	if err := view.Insert(sample(14)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	texts, err := view.List(ctx, item.ListFilter{Categories: []clipboard.Category{clipboard.CategoryText}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(texts) != 3 {
		t.Fatalf("got %d text items, want 3", len(texts))
	}
	for _, it := range texts {
		if it.Category != clipboard.CategoryText {
			t.Errorf("category %v leaked through filter", it.Category)
		}
	}

	paged, err := view.List(ctx, item.ListFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paged) != 2 || paged[0].Content != "Sample text 7" {
		t.Errorf("paged = %+v", paged)
	}
}

// TestContext_InsertThenDeleteCancels tests that deleting a pending insert leaves nothing to save.
func TestContext_InsertThenDeleteCancels(t *testing.T) {
	c := openEphemeral(t, nil)
	view := c.ViewContext()

	it := sample(0)
	if err := view.Insert(it); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := view.Delete(it.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if view.HasChanges() {
		t.Error("insert+delete left changes pending")
	}
	if res := view.Save(context.Background()); res.Outcome != SaveNoChanges {
		t.Errorf("Outcome = %v, want no_changes", res.Outcome)
	}
}

// TestContext_UpdateDeleteCommit tests updates and deletes reach the store.
func TestContext_UpdateDeleteCommit(t *testing.T) {
	c := openEphemeral(t, nil)
	ctx := context.Background()
	view := c.ViewContext()

	a, b := sample(0), sample(1)
	saveAll(t, view, a, b)

	a.Category = clipboard.CategoryCode
	if err := view.Update(a); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := view.Delete(b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	res := view.Save(ctx)
	if res.Outcome != SaveSaved || res.Updated != 1 || res.Deleted != 1 {
		t.Fatalf("result = %+v", res)
	}

	stored, err := c.store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Category != clipboard.CategoryCode {
		t.Errorf("Category = %v, want code", stored.Category)
	}
	if _, err := c.store.GetByID(ctx, b.ID); !errors.Is(err, item.ErrNotFound) {
		t.Errorf("deleted item still stored: %v", err)
	}
}

// TestContext_Rollback tests that rollback discards pending mutations.
func TestContext_Rollback(t *testing.T) {
	c := openEphemeral(t, nil)
	ctx := context.Background()
	view := c.ViewContext()

	if err := view.Insert(sample(0)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	view.Rollback()
	if view.HasChanges() {
		t.Error("changes pending after rollback")
	}
	if n, _ := view.Count(ctx); n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}

// TestContext_BackgroundDeleteDropsViewEdit tests that a committed delete discards a pending view edit.
func TestContext_BackgroundDeleteDropsViewEdit(t *testing.T) {
	c := openEphemeral(t, nil)
	ctx := context.Background()
	view := c.ViewContext()

	it := sample(0)
	saveAll(t, view, it)

	edited := it
	edited.Content = "local edit"
	if err := view.Update(edited); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := c.PerformBackground(ctx, func(ctx context.Context, bg *Context) error {
		return bg.Delete(it.ID)
	}); err != nil {
		t.Fatalf("PerformBackground: %v", err)
	}

	if view.HasChanges() {
		t.Error("edit to deleted item still pending")
	}
	if _, err := view.Get(ctx, it.ID); !errors.Is(err, item.ErrNotFound) {
		t.Errorf("Get = %v, want ErrNotFound", err)
	}
}

// TestContext_LastWriterWins tests that a later view save overwrites an earlier background save.
func TestContext_LastWriterWins(t *testing.T) {
	c := openEphemeral(t, nil)
	ctx := context.Background()
	view := c.ViewContext()

	it := sample(0)
	saveAll(t, view, it)

	mine := it
	mine.Content = "view"
	if err := view.Update(mine); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := c.PerformBackground(ctx, func(ctx context.Context, bg *Context) error {
		theirs := it
		theirs.Content = "background"
		return bg.Update(theirs)
	}); err != nil {
		t.Fatalf("PerformBackground: %v", err)
	}
	if res := view.Save(ctx); res.Outcome != SaveSaved {
		t.Fatalf("Save: %+v", res)
	}

	stored, err := c.store.GetByID(ctx, it.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Content != "view" {
		t.Errorf("Content = %q, want view", stored.Content)
	}
}
