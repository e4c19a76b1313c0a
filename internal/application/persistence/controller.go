// Package persistence owns the clipboard database handle and the
// unit-of-work contexts that read and write through it.
//
// One Controller exists per open database. Display code reads through the
// view context; captures run on the single background writer via
// PerformBackground. After any successful save the committed IDs are merged
// into the view context, so readers never issue an explicit refresh.
// Concurrent updates to the same item resolve as last writer wins.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"clipshelf/internal/adapters/storage"
	"clipshelf/internal/adapters/storage/item"
)

// ErrClosed is returned by PerformBackground after Close.
var ErrClosed = errors.New("persistence controller is closed")

// Reporter is the observability sink for save outcomes.
// *debuglog.Logger satisfies it.
type Reporter interface {
	Log(message string)
}

type nopReporter struct{}

func (nopReporter) Log(string) {}

// Options configures Open.
type Options struct {
	Durable   bool          // file-backed when true, memory-only otherwise
	Path      string        // database file; ignored when not Durable
	SlowQuery time.Duration // slow-query log threshold; 0 uses the default
	Reporter  Reporter      // save outcome sink; nil discards
}

// Controller owns one database handle, the view context and the background
// writer.
type Controller struct {
	db       *storage.TimedDB
	store    item.Store
	durable  bool
	path     string
	reporter Reporter

	// writeMu serialises commits from every context.
	writeMu sync.Mutex

	view *Context

	subsMu sync.RWMutex
	subs   []func(ChangeSet)

	jobs      chan job
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type job struct {
	ctx   context.Context
	fn    func(context.Context, *Context) error
	reply chan jobResult
}

type jobResult struct {
	result SaveResult
	err    error
}

// Open opens the backing store and starts the background writer.
// PRE: when opts.Durable, opts.Path names a file location
// POST: on the durable path an error means the process cannot continue;
// the ephemeral path performs no disk I/O
func Open(ctx context.Context, opts Options) (*Controller, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		raw *sql.DB
		err error
	)
	if opts.Durable {
		raw, err = storage.OpenDurable(opts.Path)
	} else {
		raw, err = storage.OpenEphemeral()
	}
	if err != nil {
		return nil, err
	}
	db := storage.NewTimedDB(raw, opts.SlowQuery)
	return NewWithStore(db, item.NewSQLiteStore(db), opts), nil
}

// NewWithStore builds a Controller around an existing handle and store.
// Open is the usual entry point; this exists so callers can substitute the
// store.
// PRE: db and store refer to the same migrated database
// POST: the background writer is running; call Close to stop it
func NewWithStore(db *storage.TimedDB, store item.Store, opts Options) *Controller {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	path := storage.MemoryPath
	if opts.Durable {
		path = opts.Path
	}
	c := &Controller{
		db:       db,
		store:    store,
		durable:  opts.Durable,
		path:     path,
		reporter: reporter,
		jobs:     make(chan job),
		done:     make(chan struct{}),
	}
	c.view = newContext(c, "view")

	c.wg.Add(1)
	go c.runWriter()

	slog.Info("store_opened", "durable", c.durable, "path", c.path)
	c.reporter.Log(fmt.Sprintf("store opened (durable=%t, path=%s)", c.durable, c.path))
	return c
}

// Durable reports whether the controller is file-backed.
func (c *Controller) Durable() bool {
	return c.durable
}

// Path returns the database file, or storage.MemoryPath when ephemeral.
func (c *Controller) Path() string {
	return c.path
}

// ViewContext returns the shared read context used for display.
func (c *Controller) ViewContext() *Context {
	return c.view
}

// NewBackgroundContext returns a private write context. Its saves are
// merged into the view context.
func (c *Controller) NewBackgroundContext() *Context {
	return newContext(c, "background")
}

// OnChange registers fn to be called after every successful save, once the
// view context has merged the change set. Callbacks run on the saving
// goroutine and must not block.
func (c *Controller) OnChange(fn func(ChangeSet)) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	c.subs = append(c.subs, fn)
}

// PerformBackground runs fn on the single writer goroutine with a fresh
// background context, then saves that context.
// PRE: fn does not retain the context after returning
// POST: if fn returns an error the context is rolled back and the error is
// returned; otherwise the SaveResult of the commit is returned
func (c *Controller) PerformBackground(ctx context.Context, fn func(context.Context, *Context) error) (SaveResult, error) {
	j := job{ctx: ctx, fn: fn, reply: make(chan jobResult, 1)}
	select {
	case c.jobs <- j:
	case <-c.done:
		return SaveResult{}, ErrClosed
	case <-ctx.Done():
		return SaveResult{}, ctx.Err()
	}
	select {
	case r := <-j.reply:
		return r.result, r.err
	case <-ctx.Done():
		return SaveResult{}, ctx.Err()
	}
}

func (c *Controller) runWriter() {
	defer c.wg.Done()
	for {
		select {
		case j := <-c.jobs:
			j.reply <- c.runJob(j)
		case <-c.done:
			slog.Debug("background_writer_stopped")
			return
		}
	}
}

func (c *Controller) runJob(j job) jobResult {
	bg := c.NewBackgroundContext()
	if err := j.fn(j.ctx, bg); err != nil {
		bg.Rollback()
		return jobResult{err: err}
	}
	return jobResult{result: bg.Save(j.ctx)}
}

// commit applies a batch under the writer lock.
func (c *Controller) commit(ctx context.Context, batch item.Batch) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.store.Apply(ctx, batch)
}

// publish merges a committed change set into the view context (unless the
// view context made it) and notifies subscribers.
func (c *Controller) publish(origin *Context, changes ChangeSet) {
	if changes.Empty() {
		return
	}
	if origin != c.view {
		c.view.merge(changes)
	}

	c.subsMu.RLock()
	subs := make([]func(ChangeSet), len(c.subs))
	copy(subs, c.subs)
	c.subsMu.RUnlock()

	for _, fn := range subs {
		fn(changes)
	}
}

// Close stops the background writer and closes the database handle.
// Pending changes in any context are discarded.
func (c *Controller) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.wg.Wait()
		err = c.db.Close()
		slog.Info("store_closed", "path", c.path)
	})
	return err
}
