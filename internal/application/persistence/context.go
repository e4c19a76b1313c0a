package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"clipshelf/internal/adapters/storage/item"
	"clipshelf/internal/domain/clipboard"
)

// Context is a unit of work. Mutations are held in memory until Save
// commits them in one transaction; reads see the store with the pending
// mutations overlaid. A Context is safe for concurrent use.
type Context struct {
	name string
	ctrl *Controller

	mu      sync.Mutex
	inserts map[string]clipboard.Item
	updates map[string]clipboard.Item
	deletes map[string]struct{}
	order   []string // first-touch order of pending IDs
	cache   map[string]clipboard.Item
	gen     uint64 // bumped by merge; guards cache fills racing a merge
}

func newContext(ctrl *Controller, name string) *Context {
	c := &Context{name: name, ctrl: ctrl, cache: make(map[string]clipboard.Item)}
	c.resetPendingLocked()
	return c
}

// Name identifies the context in logs ("view" or "background").
func (c *Context) Name() string {
	return c.name
}

func (c *Context) resetPendingLocked() {
	c.inserts = make(map[string]clipboard.Item)
	c.updates = make(map[string]clipboard.Item)
	c.deletes = make(map[string]struct{})
	c.order = nil
}

func (c *Context) touchLocked(id string) {
	c.order = append(c.order, id)
}

// Insert registers a new item.
// PRE: value passes Validate
// POST: the item is pending until Save; nothing is written yet
func (c *Context) Insert(value clipboard.Item) error {
	if err := value.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, deleted := c.deletes[value.ID]; deleted {
		// re-inserting a row deleted in this unit of work overwrites it
		delete(c.deletes, value.ID)
		c.updates[value.ID] = value
	} else {
		c.inserts[value.ID] = value
	}
	c.touchLocked(value.ID)
	return nil
}

// Update registers a change to an existing item.
// PRE: value passes Validate
// POST: the change is pending until Save
func (c *Context) Update(value clipboard.Item) error {
	if err := value.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, pendingInsert := c.inserts[value.ID]; pendingInsert {
		c.inserts[value.ID] = value
	} else {
		delete(c.deletes, value.ID)
		c.updates[value.ID] = value
	}
	c.touchLocked(value.ID)
	return nil
}

// Delete registers removal of an item. Deleting an item inserted in the
// same unit of work cancels the insert.
func (c *Context) Delete(id string) error {
	if id == "" {
		return clipboard.ErrEmptyID
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, pendingInsert := c.inserts[id]; pendingInsert {
		delete(c.inserts, id)
		return nil
	}
	delete(c.updates, id)
	c.deletes[id] = struct{}{}
	c.touchLocked(id)
	return nil
}

// HasChanges reports whether at least one mutation is pending.
func (c *Context) HasChanges() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasChangesLocked()
}

func (c *Context) hasChangesLocked() bool {
	return len(c.inserts)+len(c.updates)+len(c.deletes) > 0
}

// Rollback discards every pending mutation.
func (c *Context) Rollback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetPendingLocked()
}

// Get returns one item, honouring pending mutations.
// POST: returns an error wrapping item.ErrNotFound if the item does not
// exist or is pending deletion
func (c *Context) Get(ctx context.Context, id string) (clipboard.Item, error) {
	c.mu.Lock()
	if _, deleted := c.deletes[id]; deleted {
		c.mu.Unlock()
		return clipboard.Item{}, fmt.Errorf("%w: %s", item.ErrNotFound, id)
	}
	if it, ok := c.inserts[id]; ok {
		c.mu.Unlock()
		return it, nil
	}
	if it, ok := c.updates[id]; ok {
		c.mu.Unlock()
		return it, nil
	}
	if it, ok := c.cache[id]; ok {
		c.mu.Unlock()
		return it, nil
	}
	gen := c.gen
	c.mu.Unlock()

	it, err := c.ctrl.store.GetByID(ctx, id)
	if err != nil {
		return clipboard.Item{}, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.cache[id] = it
	}
	c.mu.Unlock()
	return it, nil
}

// List returns items newest first, honouring pending mutations.
func (c *Context) List(ctx context.Context, filter item.ListFilter) ([]clipboard.Item, error) {
	c.mu.Lock()
	if !c.hasChangesLocked() {
		c.mu.Unlock()
		return c.ctrl.store.List(ctx, filter)
	}
	inserts := copyItems(c.inserts)
	updates := copyItems(c.updates)
	deletes := make(map[string]struct{}, len(c.deletes))
	for id := range c.deletes {
		deletes[id] = struct{}{}
	}
	c.mu.Unlock()

	stored, err := c.ctrl.store.List(ctx, item.ListFilter{Categories: filter.Categories})
	if err != nil {
		return nil, err
	}

	out := make([]clipboard.Item, 0, len(stored)+len(inserts))
	seen := make(map[string]struct{}, len(stored))
	for _, it := range stored {
		seen[it.ID] = struct{}{}
		if _, deleted := deletes[it.ID]; deleted {
			continue
		}
		if upd, ok := updates[it.ID]; ok {
			it = upd
		}
		if matches(filter, it) {
			out = append(out, it)
		}
	}
	for _, pending := range []map[string]clipboard.Item{inserts, updates} {
		for id, it := range pending {
			if _, ok := seen[id]; ok {
				continue
			}
			if matches(filter, it) {
				out = append(out, it)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return page(out, filter.Offset, filter.Limit), nil
}

// Count returns the number of items visible to this context.
func (c *Context) Count(ctx context.Context) (int, error) {
	if !c.HasChanges() {
		return c.ctrl.store.Count(ctx)
	}
	all, err := c.List(ctx, item.ListFilter{})
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// Save commits pending mutations in one transaction if at least one is
// pending. It never panics and never leaves partial state: on failure every
// pending mutation is kept so the caller may retry.
// POST: SaveNoChanges when nothing was pending (store untouched);
// SaveSaved after a commit, with the change set merged into the view
// context; SaveFailed with Err set otherwise
func (c *Context) Save(ctx context.Context) SaveResult {
	res, changes := c.save(ctx)
	if res.Outcome == SaveSaved {
		c.ctrl.publish(c, changes)
	}
	return res
}

func (c *Context) save(ctx context.Context) (SaveResult, ChangeSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasChangesLocked() {
		slog.Debug("save_no_changes", "context", c.name)
		c.ctrl.reporter.Log(fmt.Sprintf("save skipped (%s): no changes to save", c.name))
		return SaveResult{Outcome: SaveNoChanges}, ChangeSet{}
	}

	batch, changes := c.batchLocked()
	if err := c.ctrl.commit(ctx, batch); err != nil {
		slog.Error("save_failed", "context", c.name, "pending", batch.Len(), "error", err)
		c.ctrl.reporter.Log(fmt.Sprintf("save failed (%s): %v", c.name, err))
		return SaveResult{Outcome: SaveFailed, Err: err}, ChangeSet{}
	}

	for _, it := range batch.Inserts {
		c.cache[it.ID] = it
	}
	for _, it := range batch.Updates {
		c.cache[it.ID] = it
	}
	for _, id := range batch.Deletes {
		delete(c.cache, id)
	}
	c.resetPendingLocked()

	res := SaveResult{
		Outcome:  SaveSaved,
		Inserted: len(batch.Inserts),
		Updated:  len(batch.Updates),
		Deleted:  len(batch.Deletes),
	}
	slog.Debug("save_committed", "context", c.name,
		"inserted", res.Inserted, "updated", res.Updated, "deleted", res.Deleted)
	c.ctrl.reporter.Log(fmt.Sprintf("saved %d changes (%s): %d inserted, %d updated, %d deleted",
		res.Changes(), c.name, res.Inserted, res.Updated, res.Deleted))
	return res, changes
}

// batchLocked builds the commit batch in first-touch order.
func (c *Context) batchLocked() (item.Batch, ChangeSet) {
	var batch item.Batch
	changes := ChangeSet{Origin: c.name}
	done := make(map[string]struct{}, len(c.order))

	for _, id := range c.order {
		if _, ok := done[id]; ok {
			continue
		}
		done[id] = struct{}{}
		if it, ok := c.inserts[id]; ok {
			batch.Inserts = append(batch.Inserts, it)
			changes.Inserted = append(changes.Inserted, id)
		} else if it, ok := c.updates[id]; ok {
			batch.Updates = append(batch.Updates, it)
			changes.Updated = append(changes.Updated, id)
		} else if _, ok := c.deletes[id]; ok {
			batch.Deletes = append(batch.Deletes, id)
			changes.Deleted = append(changes.Deleted, id)
		}
	}
	return batch, changes
}

// merge applies another context's committed change set. Cached copies of
// changed items are dropped so the next read fetches the committed row.
// Pending local edits survive an update (the later save wins) but are
// discarded when the item was deleted.
func (c *Context) merge(changes ChangeSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	for _, id := range changes.Inserted {
		delete(c.cache, id)
	}
	for _, id := range changes.Updated {
		delete(c.cache, id)
	}
	for _, id := range changes.Deleted {
		delete(c.cache, id)
		delete(c.updates, id)
		delete(c.deletes, id)
	}
	slog.Debug("context_merged", "context", c.name, "origin", changes.Origin,
		"inserted", len(changes.Inserted), "updated", len(changes.Updated), "deleted", len(changes.Deleted))
}

func copyItems(m map[string]clipboard.Item) map[string]clipboard.Item {
	out := make(map[string]clipboard.Item, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func matches(filter item.ListFilter, it clipboard.Item) bool {
	if len(filter.Categories) == 0 {
		return true
	}
	for _, cat := range filter.Categories {
		if it.Category == cat {
			return true
		}
	}
	return false
}

func page(items []clipboard.Item, offset, limit int) []clipboard.Item {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
