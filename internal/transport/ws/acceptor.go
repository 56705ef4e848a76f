package ws

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/openduel/arena/internal/gateway"
)

// Hub consumes connection lifecycle events from the transport. The gateway
// implements it; the transport never inspects frame contents.
type Hub interface {
	// Connect registers a new connection's outbound endpoint.
	Connect(connID string, c gateway.Conn)
	// Message delivers one inbound frame.
	Message(connID string, frame []byte)
	// Disconnect reports that the connection is gone. Called exactly once
	// per connection, after its last Message.
	Disconnect(connID string)
}

// Acceptor upgrades HTTP requests into websocket connections and wires each
// one to the hub.
type Acceptor struct {
	hub      Hub
	opts     Options
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewAcceptor creates an Acceptor.
//
// Precondition: hub and logger must be non-nil; opts must carry positive
// limits and timeouts.
func NewAcceptor(hub Hub, opts Options, logger *zap.Logger) *Acceptor {
	return &Acceptor{
		hub:  hub,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from arbitrary origins; lobby codes
			// are the access control, not the Origin header.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Handle is the websocket endpoint. Each accepted connection gets a fresh
// UUID, is registered with the hub, and runs its two pumps until the socket
// dies.
func (a *Acceptor) Handle() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := a.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the error response.
			a.logger.Debug("upgrade failed", zap.Error(err))
			return
		}

		c := newClient(uuid.NewString(), conn, a.opts, a.logger)
		a.hub.Connect(c.ID(), c)
		a.logger.Info("connection accepted",
			zap.String("conn", c.ID()),
			zap.String("remote", conn.RemoteAddr().String()),
		)

		go c.writePump()
		go c.readPump(a.hub)
	}
}
