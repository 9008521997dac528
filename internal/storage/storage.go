// Package storage defines the opaque key-value gateway the roster engine
// persists through. The engine neither knows nor cares what sits behind it;
// it reads and writes whole values under fixed keys.
package storage

import "errors"

// ErrNotFound indicates a requested value is missing.
var ErrNotFound = errors.New("storage: value not found")

// Fixed keys for the values the application persists.
const (
	// KeyDocument holds the serialized AppData document.
	KeyDocument = "appdata"
	// KeyBackdrop holds the board backdrop value, independent of the
	// document.
	KeyBackdrop = "backdrop"
)

// Store is the persistence gateway contract.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}
