// Package store coordinates loading and saving list documents. Documents
// are addressed by name; backends decide how names map onto storage. The
// presentation engine never touches this package directly — the UI loads a
// document, hands the parsed list to a presenter, and saves the
// presenter's archiveable snapshot back through here.
package store

import (
	"context"
	"errors"

	"github.com/cdoyle/lister-tui/internal/list"
)

// Common errors
var (
	ErrNotFound  = errors.New("document not found")
	ErrEmptyName = errors.New("document name cannot be empty")
)

// DocumentStore is the interface all document backends implement.
type DocumentStore interface {
	// Load reads and parses the named document.
	Load(ctx context.Context, name string) (*list.List, error)

	// Save writes the document, replacing any previous contents.
	Save(ctx context.Context, name string, l *list.List) error

	// List returns the names of all stored documents.
	List(ctx context.Context) ([]string, error)

	// Delete removes the named document.
	Delete(ctx context.Context, name string) error

	// Close properly shuts down the store.
	Close() error
}
