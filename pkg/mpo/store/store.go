// Package store persists named wiring snapshots.
//
// A snapshot is the declarative topology of a network
// (config.Wiring), saved under a name so an application can switch
// between wiring layouts or restore the last known topology at
// startup. Only wiring is ever stored; queued and delivered messages
// are deliberately never persisted.
//
// Two implementations are provided: MemoryStore for tests and
// ephemeral use, and SQLiteStore for durable single-process use.
package store

import (
	"errors"
	"time"

	"github.com/chmike/mpo/pkg/mpo/config"
)

// ErrNotFound is returned when no snapshot exists under the name.
var ErrNotFound = errors.New("store: wiring snapshot not found")

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("store: store is closed")

// Info describes a stored snapshot without its link data.
type Info struct {
	Name      string
	SavedAt   time.Time
	LinkCount int
}

// Store persists and retrieves named wiring snapshots. Save replaces
// any previous snapshot under the same name.
type Store interface {
	// Save stores a snapshot under a name, replacing any previous one.
	Save(name string, w config.Wiring) error

	// Load retrieves a snapshot by name.
	Load(name string) (config.Wiring, error)

	// List returns metadata for all snapshots, ordered by name.
	List() ([]Info, error)

	// Delete removes a snapshot.
	Delete(name string) error

	// Close releases the store's resources.
	Close() error
}
