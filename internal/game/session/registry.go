// Package session tracks which lobby each live connection belongs to.
package session

import "sync"

// Membership records a connection's current lobby and chosen display name.
type Membership struct {
	// LobbyCode is the 6-character code of the lobby the connection is in.
	LobbyCode string
	// PlayerName is the display name supplied when creating or joining.
	PlayerName string
}

// Registry maps connection IDs to lobby memberships. It is a pure lookup
// table; all lobby state lives on the lobby itself.
// All methods are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	members map[string]Membership
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		members: make(map[string]Membership),
	}
}

// Bind records connID as a member of the given lobby, replacing any previous
// membership for that connection.
//
// Precondition: connID and lobbyCode must be non-empty.
func (r *Registry) Bind(connID, lobbyCode, playerName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[connID] = Membership{LobbyCode: lobbyCode, PlayerName: playerName}
}

// Lookup returns the membership for connID.
//
// Postcondition: Returns (membership, true) if bound, or (zero, false).
func (r *Registry) Lookup(connID string) (Membership, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[connID]
	return m, ok
}

// Unbind removes the membership for connID. Unbinding an unknown connection
// is a no-op, so disconnect handling stays idempotent.
func (r *Registry) Unbind(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, connID)
}

// Count returns the number of bound connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}
