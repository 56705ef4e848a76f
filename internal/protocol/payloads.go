package protocol

import (
	"github.com/openduel/arena/internal/game/geom"
	"github.com/openduel/arena/internal/game/match"
)

// JoinLobby is the join-lobby request payload.
type JoinLobby struct {
	LobbyID    string `json:"lobbyId"`
	PlayerName string `json:"playerName"`
}

// PlayerMove is the player-move request payload.
type PlayerMove struct {
	Position geom.Vec3 `json:"position"`
	Rotation geom.Vec3 `json:"rotation"`
}

// PlayerShoot is the player-shoot request payload.
type PlayerShoot struct {
	Position  geom.Vec3 `json:"position"`
	Direction geom.Vec3 `json:"direction"`
}

// LobbyState is the lobby-created / lobby-joined payload sent to the caller.
type LobbyState struct {
	LobbyID string               `json:"lobbyId"`
	Players []*match.Participant `json:"players"`
}

// Roster is the player-joined / player-left / player-ready-updated payload
// broadcast to all lobby members.
type Roster struct {
	Players []*match.Participant `json:"players"`
}

// LobbySummary is one entry of the lobbies-list payload.
type LobbySummary struct {
	ID         string `json:"id"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Host       string `json:"host"`
}

// LobbyError is the lobby-error payload, sent only to the offending caller.
type LobbyError struct {
	Message string `json:"message"`
}

// GameStarted is the game-started payload.
type GameStarted struct {
	Players map[string]*match.Participant `json:"players"`
}

// PlayerMoved is the player-moved payload, relayed to everyone but the mover.
type PlayerMoved struct {
	PlayerID string    `json:"playerId"`
	Position geom.Vec3 `json:"position"`
	Rotation geom.Vec3 `json:"rotation"`
}

// PlayerHit is the player-hit payload.
type PlayerHit struct {
	PlayerID  string `json:"playerId"`
	Health    int    `json:"health"`
	ShooterID string `json:"shooterId"`
}

// GameStateUpdate is the per-tick snapshot payload.
type GameStateUpdate struct {
	Bullets []*match.Bullet               `json:"bullets"`
	Players map[string]*match.Participant `json:"players"`
}

// GameEnded is the game-ended payload. Reason is one of the match.Reason*
// constants.
type GameEnded struct {
	Winner string `json:"winner"`
	Reason string `json:"reason"`
}
