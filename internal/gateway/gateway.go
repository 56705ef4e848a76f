// Package gateway dispatches inbound client events to the lobby directory and
// identity registry, and routes outbound broadcasts back to connections. The
// gateway itself is stateless between events: all game state lives on the
// lobbies, all membership state in the registry.
package gateway

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/openduel/arena/internal/game/lobby"
	"github.com/openduel/arena/internal/game/session"
	"github.com/openduel/arena/internal/protocol"
)

// defaultPlayerName is used when a client supplies an empty display name.
const defaultPlayerName = "Player"

// Gateway is the connection-event dispatcher.
type Gateway struct {
	conns    *ConnRegistry
	dir      *lobby.Directory
	registry *session.Registry
	logger   *zap.Logger

	handlers map[string]func(connID string, data json.RawMessage)
}

// New creates a Gateway over the given directory and registry.
//
// Precondition: all arguments must be non-nil.
func New(conns *ConnRegistry, dir *lobby.Directory, registry *session.Registry, logger *zap.Logger) *Gateway {
	g := &Gateway{
		conns:    conns,
		dir:      dir,
		registry: registry,
		logger:   logger,
	}
	g.handlers = map[string]func(string, json.RawMessage){
		protocol.EventCreateLobby: g.handleCreateLobby,
		protocol.EventJoinLobby:   g.handleJoinLobby,
		protocol.EventListLobbies: g.handleListLobbies,
		protocol.EventLeaveLobby:  g.handleLeaveLobby,
		protocol.EventPlayerReady: g.handlePlayerReady,
		protocol.EventPlayerMove:  g.handlePlayerMove,
		protocol.EventPlayerShoot: g.handlePlayerShoot,
	}
	return g
}

// Connect registers a new connection's outbound endpoint.
func (g *Gateway) Connect(connID string, c Conn) {
	g.conns.Add(connID, c)
	g.logger.Debug("connection opened", zap.String("conn", connID))
}

// Message routes one inbound frame to its handler. Undecodable frames and
// unknown events are ignored; they are client noise, not server failures.
func (g *Gateway) Message(connID string, frame []byte) {
	msg, err := protocol.Decode(frame)
	if err != nil {
		g.logger.Debug("dropping undecodable frame", zap.String("conn", connID), zap.Error(err))
		return
	}
	h, ok := g.handlers[msg.Event]
	if !ok {
		g.logger.Debug("dropping unknown event",
			zap.String("conn", connID),
			zap.String("event", msg.Event),
		)
		return
	}
	h(connID, msg.Data)
}

// Disconnect tears down everything tied to a connection: its outbound
// endpoint, its lobby membership, and — for a running match — the opponent's
// forfeit win. Safe to call more than once for the same connection.
func (g *Gateway) Disconnect(connID string) {
	g.conns.Remove(connID)

	m, ok := g.registry.Lookup(connID)
	if !ok {
		return
	}
	if l, found := g.dir.Find(m.LobbyCode); found {
		if l.Disconnect(connID) {
			g.dir.Remove(m.LobbyCode)
		}
	}
	g.registry.Unbind(connID)
	g.logger.Info("connection closed",
		zap.String("conn", connID),
		zap.String("lobby", m.LobbyCode),
	)
}

func (g *Gateway) handleCreateLobby(connID string, data json.RawMessage) {
	// The payload is a bare JSON string; anything else falls back to the
	// default name.
	var name string
	_ = json.Unmarshal(data, &name)
	if name == "" {
		name = defaultPlayerName
	}

	l, err := g.dir.Create(connID, name)
	if err != nil {
		// Code-space exhaustion is a server condition, never surfaced to
		// clients.
		g.logger.Error("creating lobby", zap.String("conn", connID), zap.Error(err))
		return
	}
	g.registry.Bind(connID, l.Code(), name)
	g.send(connID, protocol.EventLobbyCreated, protocol.LobbyState{
		LobbyID: l.Code(),
		Players: l.Players(),
	})
}

func (g *Gateway) handleJoinLobby(connID string, data json.RawMessage) {
	var req protocol.JoinLobby
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}
	name := req.PlayerName
	if name == "" {
		name = defaultPlayerName
	}

	l, ok := g.dir.Find(req.LobbyID)
	if !ok {
		g.sendError(connID, lobby.ErrLobbyNotFound)
		return
	}
	players, err := l.Join(connID, name)
	if err != nil {
		g.sendError(connID, err)
		return
	}
	g.registry.Bind(connID, l.Code(), name)
	g.send(connID, protocol.EventLobbyJoined, protocol.LobbyState{
		LobbyID: l.Code(),
		Players: players,
	})
}

func (g *Gateway) handleListLobbies(connID string, _ json.RawMessage) {
	joinable := g.dir.Joinable()
	list := make([]protocol.LobbySummary, 0, len(joinable))
	for _, s := range joinable {
		list = append(list, protocol.LobbySummary{
			ID:         s.Code,
			Players:    s.Players,
			MaxPlayers: s.MaxPlayers,
			Host:       s.Host,
		})
	}
	g.send(connID, protocol.EventLobbiesList, list)
}

func (g *Gateway) handleLeaveLobby(connID string, _ json.RawMessage) {
	m, ok := g.registry.Lookup(connID)
	if !ok {
		return
	}
	if l, found := g.dir.Find(m.LobbyCode); found {
		if l.Leave(connID) {
			g.dir.Remove(m.LobbyCode)
		}
	}
	g.registry.Unbind(connID)
}

func (g *Gateway) handlePlayerReady(connID string, _ json.RawMessage) {
	if l, ok := g.callerLobby(connID); ok {
		l.SetReady(connID)
	}
}

func (g *Gateway) handlePlayerMove(connID string, data json.RawMessage) {
	var req protocol.PlayerMove
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}
	if l, ok := g.callerLobby(connID); ok {
		l.Move(connID, req.Position, req.Rotation)
	}
}

func (g *Gateway) handlePlayerShoot(connID string, data json.RawMessage) {
	var req protocol.PlayerShoot
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}
	if l, ok := g.callerLobby(connID); ok {
		l.Shoot(connID, req.Position, req.Direction)
	}
}

// callerLobby resolves the caller's lobby through the identity registry.
// A caller with no known lobby is a structural no-op, not an error.
func (g *Gateway) callerLobby(connID string) (*lobby.Lobby, bool) {
	m, ok := g.registry.Lookup(connID)
	if !ok {
		return nil, false
	}
	return g.dir.Find(m.LobbyCode)
}

// send encodes and delivers one event to one connection, best-effort.
func (g *Gateway) send(connID, event string, payload any) {
	frame, err := protocol.Encode(event, payload)
	if err != nil {
		g.logger.Error("encoding event", zap.String("event", event), zap.Error(err))
		return
	}
	g.conns.Send(connID, frame)
}

// sendError reports a client input error to the offending caller only.
func (g *Gateway) sendError(connID string, err error) {
	var msg string
	switch {
	case errors.Is(err, lobby.ErrLobbyNotFound),
		errors.Is(err, lobby.ErrRosterFull),
		errors.Is(err, lobby.ErrMatchStarted):
		msg = err.Error()
	default:
		msg = "Internal error"
	}
	g.send(connID, protocol.EventLobbyError, protocol.LobbyError{Message: msg})
}
