package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/chmike/mpo/pkg/mpo/config"
)

// SQLiteStore persists wiring snapshots to SQLite. It is suitable for
// single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite snapshot store. The path should
// be a file path (e.g. "./wiring.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS wirings (
			name TEXT NOT NULL PRIMARY KEY,
			saved_at TEXT NOT NULL,
			link_count INTEGER NOT NULL,
			data BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(name string, w config.Wiring) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode wiring: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO wirings (name, saved_at, link_count, data)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			saved_at = excluded.saved_at,
			link_count = excluded.link_count,
			data = excluded.data
	`, name, time.Now().UTC().Format(time.RFC3339Nano), len(w.Links), data)
	if err != nil {
		return fmt.Errorf("save wiring: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(name string) (config.Wiring, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return config.Wiring{}, ErrStoreClosed
	}

	var data []byte
	err := s.db.QueryRow(`
		SELECT data FROM wirings WHERE name = ?
	`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return config.Wiring{}, ErrNotFound
	}
	if err != nil {
		return config.Wiring{}, fmt.Errorf("load wiring: %w", err)
	}

	var w config.Wiring
	if err := json.Unmarshal(data, &w); err != nil {
		return config.Wiring{}, fmt.Errorf("decode wiring: %w", err)
	}
	return w, nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT name, saved_at, link_count FROM wirings ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list wirings: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var savedAt string
		if err := rows.Scan(&info.Name, &savedAt, &info.LinkCount); err != nil {
			return nil, fmt.Errorf("scan wiring info: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, savedAt); err == nil {
			info.SavedAt = t
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wirings: %w", err)
	}
	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	res, err := s.db.Exec(`DELETE FROM wirings WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete wiring: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete wiring: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
