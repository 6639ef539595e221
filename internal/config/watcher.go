package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher wraps fsnotify to watch a single file and emit debounced change
// notifications. The parent directory is watched rather than the file
// itself so atomic save-by-rename, which replaces the inode, keeps
// delivering events.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	events   chan struct{}
	errors   chan error
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	watching bool
}

// NewWatcher creates a watcher for the given file path.
func NewWatcher(ctx context.Context, path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	watcherCtx, cancel := context.WithCancel(ctx)
	return &Watcher{
		fsw:    fsw,
		path:   path,
		events: make(chan struct{}, 1),
		errors: make(chan error, 1),
		ctx:    watcherCtx,
		cancel: cancel,
	}, nil
}

// Start begins watching with the given debounce interval.
func (w *Watcher) Start(debounce time.Duration) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return fmt.Errorf("watcher already started")
	}
	w.watching = true
	w.mu.Unlock()

	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	go w.run(debounce)
	return nil
}

func (w *Watcher) run(debounce time.Duration) {
	defer close(w.events)
	defer close(w.errors)

	var timer *time.Timer

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			// Chmod and Remove alone are not content changes.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case w.events <- struct{}{}:
				default:
					// Notification already pending.
				}
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.ctx.Done():
				return
			}
		}
	}
}

// Events returns the channel for debounced change notifications.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Errors returns the channel for watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stop stops the watcher and releases its resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = false
	w.mu.Unlock()

	w.cancel()
	return w.fsw.Close()
}
