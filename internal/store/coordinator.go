package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cdoyle/lister-tui/internal/config"
	"github.com/cdoyle/lister-tui/internal/list"
)

// Coordinator binds one named document to a store and, optionally, a file
// watcher. When another process writes the document, the coordinator
// reloads and parses it off the UI goroutine and delivers the fresh list
// on Reloads. The consumer feeds that list into its presenter's Replace —
// the presenter itself never sees this package, and never sees a
// half-loaded document: parse failures go to Errors instead.
type Coordinator struct {
	store   DocumentStore
	mirror  DocumentStore
	name    string
	watcher *config.Watcher
	reloads chan *list.List
	errs    chan error
}

// NewCoordinator creates a coordinator for the named document.
func NewCoordinator(st DocumentStore, name string) *Coordinator {
	return &Coordinator{
		store:   st,
		name:    name,
		reloads: make(chan *list.List, 1),
		errs:    make(chan error, 1),
	}
}

// Name returns the document name this coordinator manages.
func (c *Coordinator) Name() string {
	return c.name
}

// Load reads and parses the document.
func (c *Coordinator) Load(ctx context.Context) (*list.List, error) {
	return c.store.Load(ctx, c.name)
}

// SetMirror registers a secondary store that receives a best-effort copy
// of every save, such as the offline document cache.
func (c *Coordinator) SetMirror(st DocumentStore) {
	c.mirror = st
}

// Save writes the given snapshot, typically a presenter's ArchiveableList.
// Mirror failures never fail the save; they surface on Errors.
func (c *Coordinator) Save(ctx context.Context, l *list.List) error {
	if err := c.store.Save(ctx, c.name, l); err != nil {
		return err
	}
	if c.mirror != nil {
		if err := c.mirror.Save(ctx, c.name, l); err != nil {
			c.reportError(fmt.Errorf("failed to mirror document %q: %w", c.name, err))
		}
	}
	return nil
}

// Watch starts monitoring path for concurrent edits with the given
// debounce. Only file-backed documents have a path to watch; stores
// without one simply never deliver reloads.
func (c *Coordinator) Watch(ctx context.Context, path string, debounce time.Duration) error {
	if c.watcher != nil {
		return fmt.Errorf("coordinator already watching")
	}
	w, err := config.NewWatcher(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to create document watcher: %w", err)
	}
	if err := w.Start(debounce); err != nil {
		return fmt.Errorf("failed to start document watcher: %w", err)
	}
	c.watcher = w
	go c.handleFileChanges(ctx)
	return nil
}

// handleFileChanges reloads the document on every debounced change event.
func (c *Coordinator) handleFileChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case _, ok := <-c.watcher.Events():
			if !ok {
				return
			}
			l, err := c.store.Load(ctx, c.name)
			if err != nil {
				c.reportError(fmt.Errorf("failed to reload document %q: %w", c.name, err))
				continue
			}
			// A newer snapshot supersedes any undelivered one.
			select {
			case <-c.reloads:
			default:
			}
			c.reloads <- l

		case err, ok := <-c.watcher.Errors():
			if !ok {
				return
			}
			c.reportError(err)
		}
	}
}

func (c *Coordinator) reportError(err error) {
	select {
	case c.errs <- err:
	default:
	}
}

// Reloads returns the channel delivering freshly-parsed lists after
// external edits. The consumer must marshal each list onto the goroutine
// that owns the presenter before calling Replace.
func (c *Coordinator) Reloads() <-chan *list.List {
	return c.reloads
}

// Errors returns the channel for load and watcher errors.
func (c *Coordinator) Errors() <-chan error {
	return c.errs
}

// Close stops the watcher, if any. The underlying store is not closed; it
// may be shared between coordinators.
func (c *Coordinator) Close() error {
	if c.watcher == nil {
		return nil
	}
	err := c.watcher.Stop()
	c.watcher = nil
	return err
}
