// Package lobby implements the matchmaking lobby: a roster of up to two
// participants, their readiness flags, and — once started — the authoritative
// match state and its fixed-tick simulation loop.
//
// Every lobby owns a single goroutine that is the only mutator of its roster
// and match state. Public methods hand a closure to that goroutine and wait
// for it to be applied, and the simulation tick is a case in the same select,
// so no two mutations of one lobby ever interleave by construction. Different
// lobbies are fully independent.
package lobby

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/openduel/arena/internal/game/arena"
	"github.com/openduel/arena/internal/game/geom"
	"github.com/openduel/arena/internal/game/match"
	"github.com/openduel/arena/internal/protocol"
)

// Capacity is the exact roster size required to start a match.
const Capacity = 2

// Client input errors, surfaced to the offending caller only.
var (
	ErrLobbyNotFound = errors.New("Lobby not found")
	ErrRosterFull    = errors.New("Lobby is full")
	ErrMatchStarted  = errors.New("Game already started")
)

// Phase is a lobby lifecycle phase.
type Phase int

const (
	// PhaseForming is the initial phase: collecting participants and ready
	// flags.
	PhaseForming Phase = iota
	// PhaseInProgress means the match simulation is running.
	PhaseInProgress
	// PhaseEnded means the match finished by elimination or forfeit.
	PhaseEnded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseForming:
		return "forming"
	case PhaseInProgress:
		return "in_progress"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Sender delivers one encoded frame to one connection. Implementations must
// be best-effort and non-blocking: a failed or slow recipient must not stall
// the caller, and delivery to one recipient is independent of the rest.
type Sender interface {
	Send(connID string, frame []byte)
}

// Summary is a point-in-time view of a lobby for the joinable listing.
type Summary struct {
	Code       string
	Players    int
	MaxPlayers int
	Host       string
	Joinable   bool
}

// Lobby is one matchmaking/match container. See the package comment for the
// ownership model.
type Lobby struct {
	code   string
	hostID string
	arena  *arena.Arena
	tick   time.Duration
	sender Sender
	logger *zap.Logger

	cmds chan func()
	done chan struct{}

	// Everything below is owned by the run goroutine.
	order    []string
	roster   map[string]*match.Participant
	phase    Phase
	game     *match.State
	ticker   *time.Ticker
	tickC    <-chan time.Time
	stopping bool
}

// New creates a lobby with the host registered as its first participant and
// starts the owning goroutine.
//
// Precondition: code and hostID must be non-empty; a must be validated;
// tickInterval > 0; sender and logger must be non-nil.
func New(code, hostID, hostName string, a *arena.Arena, tickInterval time.Duration, sender Sender, logger *zap.Logger) *Lobby {
	l := &Lobby{
		code:   code,
		hostID: hostID,
		arena:  a,
		tick:   tickInterval,
		sender: sender,
		logger: logger.With(zap.String("lobby", code)),
		cmds:   make(chan func()),
		done:   make(chan struct{}),
		order:  []string{hostID},
		roster: map[string]*match.Participant{
			hostID: match.NewParticipant(hostID, hostName),
		},
		phase: PhaseForming,
	}
	go l.run()
	return l
}

// Code returns the lobby's 6-character code.
func (l *Lobby) Code() string { return l.code }

// HostID returns the connection ID of the participant who created the lobby.
// Hosting is informational only; there are no privileged operations.
func (l *Lobby) HostID() string { return l.hostID }

// run is the lobby's owning goroutine: the sole mutator of roster and match
// state. It exits when a command marks the lobby as stopping.
func (l *Lobby) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.cmds:
			fn()
			if l.stopping {
				l.stopTicker()
				return
			}
		case <-l.tickC:
			l.step()
		}
	}
}

// do executes fn on the owning goroutine and waits for it to be applied.
// Returns false without running fn if the lobby has already shut down, which
// callers treat as a structural no-op.
func (l *Lobby) do(fn func()) bool {
	applied := make(chan struct{})
	select {
	case l.cmds <- func() { fn(); close(applied) }:
		<-applied
		return true
	case <-l.done:
		return false
	}
}

// Close shuts the owning goroutine down. Used by the Directory when a
// generated code loses a collision race; normal teardown happens through
// Leave and Disconnect emptying the roster. Safe to call more than once.
func (l *Lobby) Close() {
	l.do(func() { l.stopping = true })
}

// Join adds a participant to the roster and broadcasts the updated roster to
// every member.
//
// Postcondition: Returns the join-ordered roster snapshot on success, or
// ErrRosterFull / ErrMatchStarted. A failed join mutates nothing.
func (l *Lobby) Join(id, name string) ([]*match.Participant, error) {
	var (
		players []*match.Participant
		err     error
	)
	ok := l.do(func() {
		if len(l.roster) >= Capacity {
			err = ErrRosterFull
			return
		}
		if l.phase != PhaseForming {
			err = ErrMatchStarted
			return
		}
		l.roster[id] = match.NewParticipant(id, name)
		l.order = append(l.order, id)
		players = l.rosterSnapshot()
		l.broadcast(protocol.EventPlayerJoined, protocol.Roster{Players: players})
	})
	if !ok {
		return nil, ErrLobbyNotFound
	}
	return players, err
}

// Players returns a join-ordered snapshot of the roster.
func (l *Lobby) Players() []*match.Participant {
	var players []*match.Participant
	l.do(func() { players = l.rosterSnapshot() })
	return players
}

// Phase returns the current lifecycle phase.
func (l *Lobby) Phase() Phase {
	var p Phase
	if !l.do(func() { p = l.phase }) {
		return PhaseEnded
	}
	return p
}

// SetReady marks the participant ready and broadcasts the updated roster.
// Readiness is the sole start trigger: if this makes a full roster all-ready
// while the lobby is still forming, the match starts as a side effect.
// Unknown participants are ignored.
func (l *Lobby) SetReady(id string) {
	l.do(func() {
		p, ok := l.roster[id]
		if !ok {
			return
		}
		p.Ready = true
		l.broadcast(protocol.EventPlayerReadyUpdated, protocol.Roster{Players: l.rosterSnapshot()})
		if l.phase == PhaseForming && l.allReady() {
			l.startMatch()
		}
	})
}

// Move overwrites the participant's position and rotation and relays the
// movement to every other member. Ignored unless the match is in progress.
// Positions are applied verbatim: movement bounding is a client-side trust
// boundary carried over from the reference implementation.
func (l *Lobby) Move(id string, position, rotation geom.Vec3) {
	l.do(func() {
		if l.phase != PhaseInProgress {
			return
		}
		if _, ok := l.roster[id]; !ok {
			return
		}
		if l.game.MovePlayer(id, position, rotation) {
			l.broadcastExcept(id, protocol.EventPlayerMoved, protocol.PlayerMoved{
				PlayerID: id,
				Position: position,
				Rotation: rotation,
			})
		}
	})
}

// Shoot spawns a bullet and broadcasts it to every member, shooter included.
// Ignored unless the match is in progress and not over.
func (l *Lobby) Shoot(id string, position, direction geom.Vec3) {
	l.do(func() {
		if l.phase != PhaseInProgress || l.game.Over {
			return
		}
		if _, ok := l.roster[id]; !ok {
			return
		}
		b := l.game.Spawn(id, position, direction)
		l.broadcast(protocol.EventBulletShot, b)
	})
}

// Leave removes the participant from the roster. Leaving never forfeits a
// running match; only a transport disconnect does.
//
// Postcondition: Returns true iff the roster is now empty, in which case the
// lobby has shut down and must be removed from the Directory.
func (l *Lobby) Leave(id string) (empty bool) {
	l.do(func() {
		if _, ok := l.roster[id]; !ok {
			empty = len(l.roster) == 0
			return
		}
		l.remove(id)
		if len(l.roster) == 0 {
			l.stopping = true
			empty = true
			return
		}
		l.broadcast(protocol.EventPlayerLeft, protocol.Roster{Players: l.rosterSnapshot()})
	})
	return empty
}

// Disconnect removes the participant after their connection dropped. If the
// match was in progress and not yet over, the sole remaining participant wins
// by forfeit and the match ends; otherwise the remaining members get the
// updated roster.
//
// Postcondition: Returns true iff the roster is now empty (lobby shut down,
// remove it from the Directory). Calling it again for the same participant
// changes nothing.
func (l *Lobby) Disconnect(id string) (empty bool) {
	l.do(func() {
		if _, ok := l.roster[id]; !ok {
			empty = len(l.roster) == 0
			return
		}
		l.remove(id)
		if len(l.roster) == 0 {
			l.stopping = true
			empty = true
			return
		}
		if l.phase == PhaseInProgress && !l.game.Over {
			winner := l.roster[l.order[0]].Name
			if end := l.game.Forfeit(winner); end != nil {
				l.phase = PhaseEnded
				l.stopTicker()
				l.logger.Info("match forfeited",
					zap.String("winner", winner),
					zap.String("disconnected", id),
				)
				l.broadcast(protocol.EventGameEnded, protocol.GameEnded{
					Winner: end.Winner,
					Reason: end.Reason,
				})
			}
			return
		}
		l.broadcast(protocol.EventPlayerLeft, protocol.Roster{Players: l.rosterSnapshot()})
	})
	return empty
}

// Summary returns a point-in-time view for the joinable listing.
//
// Postcondition: ok is false if the lobby has already shut down.
func (l *Lobby) Summary() (s Summary, ok bool) {
	ok = l.do(func() {
		host := "Unknown"
		if h, present := l.roster[l.hostID]; present {
			host = h.Name
		}
		s = Summary{
			Code:       l.code,
			Players:    len(l.roster),
			MaxPlayers: Capacity,
			Host:       host,
			Joinable:   l.phase == PhaseForming && len(l.roster) < Capacity,
		}
	})
	return s, ok
}

// --- actor-goroutine internals below ---

// allReady reports whether the roster is exactly at capacity with every
// ready flag set. A partial roster is never ready.
func (l *Lobby) allReady() bool {
	if len(l.roster) != Capacity {
		return false
	}
	for _, p := range l.roster {
		if !p.Ready {
			return false
		}
	}
	return true
}

// startMatch performs the one-shot Forming → InProgress transition: seats
// participants at opposing spawns in join order, resets match state,
// broadcasts the full snapshot, and starts the tick loop.
func (l *Lobby) startMatch() {
	l.phase = PhaseInProgress
	l.game = match.NewState(l.arena)
	ordered := make([]*match.Participant, 0, len(l.order))
	for _, id := range l.order {
		ordered = append(ordered, l.roster[id])
	}
	l.game.Seat(ordered)

	l.logger.Info("match started", zap.Int("players", len(ordered)))
	l.broadcast(protocol.EventGameStarted, protocol.GameStarted{Players: l.game.Players})

	l.ticker = time.NewTicker(l.tick)
	l.tickC = l.ticker.C
}

// step runs one simulation tick and broadcasts its outcomes. The tick that
// ends the match still emits its post-tick snapshot; no tick runs after it.
func (l *Lobby) step() {
	if l.phase != PhaseInProgress {
		return
	}
	res := l.game.Step()

	for _, h := range res.Hits {
		l.broadcast(protocol.EventPlayerHit, protocol.PlayerHit{
			PlayerID:  h.PlayerID,
			Health:    h.Health,
			ShooterID: h.ShooterID,
		})
	}
	if res.End != nil {
		l.phase = PhaseEnded
		l.logger.Info("match ended",
			zap.String("winner", res.End.Winner),
			zap.String("reason", res.End.Reason),
		)
		l.broadcast(protocol.EventGameEnded, protocol.GameEnded{
			Winner: res.End.Winner,
			Reason: res.End.Reason,
		})
	}

	bullets := l.game.Bullets
	if bullets == nil {
		bullets = []*match.Bullet{}
	}
	l.broadcast(protocol.EventGameStateUpdate, protocol.GameStateUpdate{
		Bullets: bullets,
		Players: l.game.Players,
	})

	if res.End != nil {
		l.stopTicker()
	}
}

func (l *Lobby) stopTicker() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
		l.tickC = nil
	}
}

// remove deletes the participant from roster, join order, and any live match
// state.
func (l *Lobby) remove(id string) {
	delete(l.roster, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	if l.game != nil {
		l.game.Remove(id)
	}
}

// rosterSnapshot returns value copies of the roster in join order, safe to
// hand outside the owning goroutine.
func (l *Lobby) rosterSnapshot() []*match.Participant {
	out := make([]*match.Participant, 0, len(l.order))
	for _, id := range l.order {
		p := *l.roster[id]
		out = append(out, &p)
	}
	return out
}

// broadcast encodes once and sends to every member.
func (l *Lobby) broadcast(event string, payload any) {
	l.broadcastExcept("", event, payload)
}

// broadcastExcept encodes once and sends to every member except one.
// Sends are best-effort: a failure for one recipient never aborts the rest,
// and the state mutation that triggered the broadcast stands regardless.
func (l *Lobby) broadcastExcept(except, event string, payload any) {
	frame, err := protocol.Encode(event, payload)
	if err != nil {
		l.logger.Error("encoding broadcast", zap.String("event", event), zap.Error(err))
		return
	}
	for _, id := range l.order {
		if id == except {
			continue
		}
		l.sender.Send(id, frame)
	}
}
