package store

import (
	"sort"
	"sync"
	"time"

	"github.com/chmike/mpo/pkg/mpo/config"
)

// MemoryStore is an in-memory Store implementation. Snapshots are
// copied on Save and Load, so callers can keep mutating their wiring
// values freely.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]memoryRecord
	closed    bool
}

type memoryRecord struct {
	savedAt time.Time
	wiring  config.Wiring
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]memoryRecord)}
}

// Save implements Store.
func (s *MemoryStore) Save(name string, w config.Wiring) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.snapshots[name] = memoryRecord{
		savedAt: time.Now(),
		wiring:  copyWiring(w),
	}
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(name string) (config.Wiring, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return config.Wiring{}, ErrStoreClosed
	}
	rec, ok := s.snapshots[name]
	if !ok {
		return config.Wiring{}, ErrNotFound
	}
	return copyWiring(rec.wiring), nil
}

// List implements Store.
func (s *MemoryStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	infos := make([]Info, 0, len(s.snapshots))
	for name, rec := range s.snapshots {
		infos = append(infos, Info{
			Name:      name,
			SavedAt:   rec.savedAt,
			LinkCount: len(rec.wiring.Links),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if _, ok := s.snapshots[name]; !ok {
		return ErrNotFound
	}
	delete(s.snapshots, name)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.snapshots = nil
	return nil
}

func copyWiring(w config.Wiring) config.Wiring {
	out := config.Wiring{}
	if len(w.Links) > 0 {
		out.Links = make([]config.LinkSpec, len(w.Links))
		copy(out.Links, w.Links)
	}
	return out
}
