package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// lobbyEntry is the HTTP projection of one joinable lobby. The field names
// deliberately differ from the websocket lobbies-list event; both shapes are
// part of the published interface.
type lobbyEntry struct {
	ID           string `json:"id"`
	CurrentCount int    `json:"currentCount"`
	Capacity     int    `json:"capacity"`
	HostName     string `json:"hostName"`
}

// LobbiesHandler serves the read-only joinable-lobby listing. It is a
// point-in-time projection of the same directory state the websocket event
// reads, not a subscription.
func (g *Gateway) LobbiesHandler() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		joinable := g.dir.Joinable()
		out := make([]lobbyEntry, 0, len(joinable))
		for _, s := range joinable {
			out = append(out, lobbyEntry{
				ID:           s.Code,
				CurrentCount: s.Players,
				Capacity:     s.MaxPlayers,
				HostName:     s.Host,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			g.logger.Debug("writing lobby listing", zap.Error(err))
		}
	}
}

// HealthzHandler serves a liveness probe.
func HealthzHandler() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	}
}
