// Package boltstore provides the BoltDB-backed persistence gateway.
package boltstore

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kingrea/The-Muster/internal/storage"
	"go.etcd.io/bbolt"
)

const valuesBucket = "muster"

// Store is a bbolt-backed key-value store holding one bucket of opaque
// values.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the store file at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("boltstore: storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("boltstore: open %s: %w", cleanPath, err)
	}

	store := &Store{db: db}
	if err := store.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get fetches the value stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	if err := s.check(key); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(valuesBucket))
		if bucket == nil {
			return fmt.Errorf("boltstore: values bucket is missing")
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return storage.ErrNotFound
		}
		// bbolt memory is only valid inside the transaction.
		value = append([]byte(nil), raw...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key string, value []byte) error {
	if err := s.check(key); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(valuesBucket))
		if bucket == nil {
			return fmt.Errorf("boltstore: values bucket is missing")
		}
		return bucket.Put([]byte(key), value)
	})
}

// Delete removes the value stored under key. Deleting an absent key is not
// an error.
func (s *Store) Delete(key string) error {
	if err := s.check(key); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(valuesBucket))
		if bucket == nil {
			return fmt.Errorf("boltstore: values bucket is missing")
		}
		return bucket.Delete([]byte(key))
	})
}

func (s *Store) check(key string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("boltstore: store is not configured")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("boltstore: key is required")
	}
	return nil
}

func (s *Store) ensureBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(valuesBucket)); err != nil {
			return fmt.Errorf("boltstore: create values bucket: %w", err)
		}
		return nil
	})
}
