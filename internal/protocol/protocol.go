// Package protocol defines the framed event envelope and payload types
// exchanged with clients over the websocket transport.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Inbound event names (client → server).
const (
	EventCreateLobby = "create-lobby"
	EventJoinLobby   = "join-lobby"
	EventListLobbies = "list-lobbies"
	EventLeaveLobby  = "leave-lobby"
	EventPlayerReady = "player-ready"
	EventPlayerMove  = "player-move"
	EventPlayerShoot = "player-shoot"
)

// Outbound event names (server → client).
const (
	EventLobbyCreated       = "lobby-created"
	EventLobbyJoined        = "lobby-joined"
	EventPlayerJoined       = "player-joined"
	EventPlayerLeft         = "player-left"
	EventPlayerReadyUpdated = "player-ready-updated"
	EventLobbiesList        = "lobbies-list"
	EventLobbyError         = "lobby-error"
	EventGameStarted        = "game-started"
	EventPlayerMoved        = "player-moved"
	EventBulletShot         = "bullet-shot"
	EventPlayerHit          = "player-hit"
	EventGameStateUpdate    = "game-state-update"
	EventGameEnded          = "game-ended"
)

// Message is the envelope for every frame in both directions: an event name
// for routing and a raw payload decoded by the matching handler.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode marshals an event and payload into a single wire frame.
//
// Postcondition: Returns a complete JSON frame or a non-nil error.
func Encode(event string, payload any) ([]byte, error) {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshalling %s payload: %w", event, err)
		}
		data = b
	}
	frame, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("marshalling %s frame: %w", event, err)
	}
	return frame, nil
}

// Decode parses a wire frame into its envelope.
//
// Postcondition: Returns a Message with a non-empty Event, or an error.
func Decode(frame []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		return Message{}, fmt.Errorf("parsing frame: %w", err)
	}
	if msg.Event == "" {
		return Message{}, fmt.Errorf("frame missing event name")
	}
	return msg, nil
}
