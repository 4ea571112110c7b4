// Package localstore is the durable key-scoped client storage backing the
// interaction stores. Values are opaque strings; serialization is the
// caller's concern. Writes are best-effort: callers log failures and keep
// in-memory state as the source of truth for the session.
package localstore

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Store is a thin key-value layer over an embedded BadgerDB.
type Store struct {
	db *badger.DB
}

// Config holds the options needed to open a store.
type Config struct {
	// Path is the directory for the database files. Ignored in memory mode.
	Path string

	// InMemory disables disk persistence. Used in tests.
	InMemory bool

	// SyncWrites makes every write durable before returning.
	SyncWrites bool
}

// DefaultConfig returns production defaults: durable synchronous writes.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns a configuration for tests: no disk, no sync.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Open opens or creates the store.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, with ok=false when the key is
// absent. Absence is not an error.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key. Last writer wins.
func (s *Store) Set(key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("removing key %q: %w", key, err)
	}
	return nil
}
