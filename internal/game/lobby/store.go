package lobby

import "sync"

// Store is the code → lobby mapping behind the Directory. It exists as a
// seam so a sharded or externally backed implementation can replace the
// in-memory map without touching lobby or simulation logic; the per-lobby
// serialization guarantee is the lobby's own and holds regardless of store.
//
// Implementations must support concurrent insert, lookup, and delete, and
// All must never expose a partially inserted or partially deleted entry.
type Store interface {
	// PutIfAbsent registers l under code. Returns false if the code is
	// already taken.
	PutIfAbsent(code string, l *Lobby) bool
	// Get returns the lobby registered under code.
	Get(code string) (*Lobby, bool)
	// Delete removes the entry for code. Deleting an absent code is a no-op.
	Delete(code string)
	// All returns a point-in-time snapshot of every registered lobby.
	All() []*Lobby
}

// MemoryStore is the default in-process Store.
// All methods are safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	lobbies map[string]*Lobby
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lobbies: make(map[string]*Lobby),
	}
}

// PutIfAbsent registers l under code unless the code is taken.
func (s *MemoryStore) PutIfAbsent(code string, l *Lobby) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.lobbies[code]; exists {
		return false
	}
	s.lobbies[code] = l
	return true
}

// Get returns the lobby registered under code.
func (s *MemoryStore) Get(code string) (*Lobby, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lobbies[code]
	return l, ok
}

// Delete removes the entry for code, if present.
func (s *MemoryStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lobbies, code)
}

// All returns a snapshot of every registered lobby.
func (s *MemoryStore) All() []*Lobby {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Lobby, 0, len(s.lobbies))
	for _, l := range s.lobbies {
		out = append(out, l)
	}
	return out
}

// Len returns the number of registered lobbies.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lobbies)
}
