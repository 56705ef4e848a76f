package lobby

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openduel/arena/internal/game/arena"
)

// maxCodeAttempts bounds code generation retries on collision. The code
// space holds 36^6 values, so exhausting this is implausible outside a
// broken randomness source; when it happens, creation fails hard instead of
// looping forever.
const maxCodeAttempts = 5

// Directory owns the mapping from lobby code to live lobby. Lookup and
// iteration go through the injected Store; lobby construction parameters
// (arena, tick interval, sender) are fixed at Directory creation.
type Directory struct {
	store  Store
	arena  *arena.Arena
	tick   time.Duration
	sender Sender
	logger *zap.Logger
}

// NewDirectory creates a Directory backed by the given store.
//
// Precondition: store, a, sender, and logger must be non-nil; tickInterval > 0.
func NewDirectory(store Store, a *arena.Arena, tickInterval time.Duration, sender Sender, logger *zap.Logger) *Directory {
	return &Directory{
		store:  store,
		arena:  a,
		tick:   tickInterval,
		sender: sender,
		logger: logger,
	}
}

// Create generates a fresh unique code and registers a new lobby with the
// host as its first participant. Code collisions are retried with a new code
// up to maxCodeAttempts times and never surfaced to clients.
//
// Postcondition: Returns a registered, running lobby, or an error if the
// code space could not yield a free code.
func (d *Directory) Create(hostID, hostName string) (*Lobby, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := NewCode()
		if err != nil {
			return nil, fmt.Errorf("generating lobby code: %w", err)
		}
		l := New(code, hostID, hostName, d.arena, d.tick, d.sender, d.logger)
		if !d.store.PutIfAbsent(code, l) {
			// Lost the code to a concurrent create; discard and retry.
			l.Close()
			continue
		}
		d.logger.Info("lobby created",
			zap.String("lobby", code),
			zap.String("host", hostID),
		)
		return l, nil
	}
	return nil, fmt.Errorf("creating lobby: no free code after %d attempts", maxCodeAttempts)
}

// Find returns the lobby registered under code.
func (d *Directory) Find(code string) (*Lobby, bool) {
	return d.store.Get(code)
}

// Joinable returns a point-in-time snapshot of every lobby that is still
// forming and has a free seat. It is a listing, not a subscription.
func (d *Directory) Joinable() []Summary {
	all := d.store.All()
	out := make([]Summary, 0, len(all))
	for _, l := range all {
		s, ok := l.Summary()
		if ok && s.Joinable {
			out = append(out, s)
		}
	}
	return out
}

// Remove deletes the entry for code. Removing an already-removed lobby is a
// no-op.
func (d *Directory) Remove(code string) {
	d.store.Delete(code)
	d.logger.Debug("lobby removed", zap.String("lobby", code))
}
