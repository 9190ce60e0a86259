// Package store persists the tracker's state documents in a local BadgerDB.
// Each document is a self-describing JSON value under a stable key; there is
// no schema migration layer.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/medtrack/medtrack/internal/errors"
	"go.uber.org/zap"
)

// Store provides JSON document access over BadgerDB.
type Store struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens (or creates) the store at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1).
		WithCompactL0OnClose(true).
		WithValueLogFileSize(16 << 20).
		WithMemTableSize(16 << 20)

	return open(opts, logger)
}

// OpenInMemory opens a store that lives only for the process. Used in tests.
func OpenInMemory(logger *zap.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)

	return open(opts, logger)
}

func open(opts badger.Options, logger *zap.Logger) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStorageUnavailable.Code, "failed to open badger")
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put marshals v and writes it under key in a single transaction.
func (s *Store) Put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrStorageUnavailable.Code, "failed to write "+key)
	}
	return nil
}

// Get unmarshals the value under key into out. It returns false with a nil
// error when the key has never been written.
func (s *Store) Get(key string, out interface{}) (bool, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			data = append([]byte{}, v...)
			return nil
		})
	})

	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, errors.ErrStorageUnavailable.Code, "failed to read "+key)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, errors.Wrap(err, errors.ErrStorageCorrupted.Code, "failed to decode "+key)
	}
	return true, nil
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrStorageUnavailable.Code, "failed to delete "+key)
	}
	return nil
}
