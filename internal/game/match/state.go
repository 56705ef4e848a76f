// Package match holds the authoritative in-match state for a single lobby and
// the fixed-tick simulation step that advances it. The package is free of
// locking and networking: the owning lobby serializes all access, and tick
// outcomes are returned as values for the caller to broadcast.
package match

import (
	"time"

	"github.com/google/uuid"

	"github.com/openduel/arena/internal/game/arena"
	"github.com/openduel/arena/internal/game/geom"
)

// MaxHealth is the starting and maximum participant health.
const MaxHealth = 100

// Match end reasons carried on the game-ended event.
const (
	ReasonElimination = "elimination"
	ReasonForfeit     = "opponent_disconnected"
)

// Participant is a connection's in-game identity and stats within one lobby.
// The same shape serves the lobby roster and the live match snapshot; JSON
// field names match the wire protocol.
type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Health    int       `json:"health"`
	MaxHealth int       `json:"maxHealth"`
	Position  geom.Vec3 `json:"position"`
	Rotation  geom.Vec3 `json:"rotation"`
	Ready     bool      `json:"ready"`
}

// NewParticipant returns a roster entry with default fields.
//
// Postcondition: Health == MaxHealth, Ready == false.
func NewParticipant(id, name string) *Participant {
	return &Participant{
		ID:        id,
		Name:      name,
		Health:    MaxHealth,
		MaxHealth: MaxHealth,
		Position:  geom.Vec3{Y: 1},
	}
}

// Bullet is a live projectile inside one lobby's match state.
// Direction is used exactly as supplied by the shooting client: it is never
// renormalized, so a non-unit vector changes the effective speed.
type Bullet struct {
	ID        string    `json:"id"`
	ShooterID string    `json:"shooterId"`
	Position  geom.Vec3 `json:"position"`
	Direction geom.Vec3 `json:"direction"`
	Timestamp int64     `json:"timestamp"`
}

// State is the authoritative match state embedded in an in-progress lobby.
type State struct {
	arena *arena.Arena

	// Players maps participant ID to the live in-match snapshot.
	Players map[string]*Participant
	// Bullets is the live projectile set.
	Bullets []*Bullet
	// Over is set once and never cleared.
	Over bool
	// Winner is the winning participant's display name, set only at match end.
	Winner string
}

// NewState creates an empty match state bound to the given arena.
//
// Precondition: a must be non-nil and validated.
func NewState(a *arena.Arena) *State {
	return &State{
		arena:   a,
		Players: make(map[string]*Participant),
	}
}

// Seat places the roster at the arena spawn points in join order and resets
// health, bullets, and the game-over flag.
//
// Precondition: roster is ordered by join time; len(roster) <= len(spawns).
// Postcondition: every seated participant has full health and default rotation.
func (s *State) Seat(roster []*Participant) {
	s.Bullets = nil
	s.Over = false
	s.Winner = ""
	for i, p := range roster {
		s.Players[p.ID] = &Participant{
			ID:        p.ID,
			Name:      p.Name,
			Health:    p.MaxHealth,
			MaxHealth: p.MaxHealth,
			Position:  s.arena.Spawns[i%len(s.arena.Spawns)],
		}
	}
}

// Spawn creates a live bullet for shooterID at the given origin.
//
// Postcondition: The bullet is appended to the live set and returned in full
// for broadcasting.
func (s *State) Spawn(shooterID string, origin, direction geom.Vec3) *Bullet {
	b := &Bullet{
		ID:        uuid.NewString(),
		ShooterID: shooterID,
		Position:  origin,
		Direction: direction,
		Timestamp: time.Now().UnixMilli(),
	}
	s.Bullets = append(s.Bullets, b)
	return b
}

// Remove deletes a participant's in-match snapshot, if present.
func (s *State) Remove(id string) {
	delete(s.Players, id)
}

// MovePlayer overwrites a participant's position and rotation verbatim.
// There is no server-side bounds or speed validation on this path: movement
// is a documented client-side trust boundary.
func (s *State) MovePlayer(id string, position, rotation geom.Vec3) bool {
	p, ok := s.Players[id]
	if !ok {
		return false
	}
	p.Position = position
	p.Rotation = rotation
	return true
}
