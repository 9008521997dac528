package tui

import (
	"github.com/kingrea/The-Muster/internal/storage"
	"github.com/kingrea/The-Muster/internal/storage/boltstore"
)

// boltOpen keeps the concrete store choice out of App construction paths
// that tests override.
func boltOpen(path string) (storage.Store, error) {
	return boltstore.Open(path)
}
