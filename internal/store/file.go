package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cdoyle/lister-tui/internal/list"
)

// docExt is the filename suffix for list documents.
const docExt = ".list.json"

// FileStore keeps one JSON document per file under a documents directory.
// This is the store other processes (sync clients, editors) also write to,
// so saves are atomic: write to a temp file, then rename over the target.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the documents directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// DocumentPath returns the on-disk path for the named document. Used to
// point the file watcher at the active document.
func (s *FileStore) DocumentPath(name string) string {
	return filepath.Join(s.dir, name+docExt)
}

// Load implements DocumentStore.
func (s *FileStore) Load(ctx context.Context, name string) (*list.List, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(s.DocumentPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read document %q: %w", name, err)
	}
	return list.UnmarshalDocument(data)
}

// Save implements DocumentStore with an atomic write.
func (s *FileStore) Save(ctx context.Context, name string, l *list.List) error {
	if name == "" {
		return ErrEmptyName
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := list.MarshalDocument(l)
	if err != nil {
		return err
	}

	target := s.DocumentPath(name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write document %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp document: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace document %q: %w", name, err)
	}
	return nil
}

// List implements DocumentStore, returning document names sorted by the
// directory's natural order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), docExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), docExt))
	}
	return names, nil
}

// Delete implements DocumentStore.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if err := os.Remove(s.DocumentPath(name)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete document %q: %w", name, err)
	}
	return nil
}

// Close implements DocumentStore. File stores hold no resources.
func (s *FileStore) Close() error {
	return nil
}
