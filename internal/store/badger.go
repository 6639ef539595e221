package store

import (
	"context"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/cdoyle/lister-tui/internal/list"
)

// BadgerStore implements DocumentStore on BadgerDB. It backs the offline
// cache of recently-opened documents, where the key/value model and cheap
// writes fit better than one file per document.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a badger-backed store at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

// Load implements DocumentStore.
func (s *BadgerStore) Load(ctx context.Context, name string) (*list.List, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			return err
		}
		// Copy value to prevent access after the transaction ends.
		return item.Value(func(v []byte) error {
			data = append([]byte{}, v...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list.UnmarshalDocument(data)
}

// Save implements DocumentStore.
func (s *BadgerStore) Save(ctx context.Context, name string, l *list.List) error {
	if name == "" {
		return ErrEmptyName
	}
	data, err := list.MarshalDocument(l)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(name), data)
	})
}

// List implements DocumentStore.
func (s *BadgerStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, string(it.Item().Key()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Delete implements DocumentStore.
func (s *BadgerStore) Delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(name))
	})
}

// Close implements DocumentStore.
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
