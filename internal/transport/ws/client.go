// Package ws carries the websocket transport: upgrading HTTP requests,
// pumping frames in both directions, and translating socket lifecycle into
// hub events. Everything above this package deals in opaque frames and
// connection IDs only.
package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Options tunes per-connection transport behavior.
type Options struct {
	// ReadLimit caps the size of one inbound frame in bytes.
	ReadLimit int64
	// WriteTimeout bounds each outbound write.
	WriteTimeout time.Duration
	// PongTimeout is how long a connection may go without a pong before it
	// is considered dead. Pings are sent at 9/10 of this interval.
	PongTimeout time.Duration
	// SendBuffer is the outbound frame buffer size. A full buffer drops
	// frames rather than blocking the sender.
	SendBuffer int
}

// pingPeriod returns the ping interval for the configured pong timeout.
func (o Options) pingPeriod() time.Duration {
	return o.PongTimeout * 9 / 10
}

// Client is the server-side half of one websocket connection. Enqueue is
// safe for concurrent use; the two pump goroutines own the socket itself.
type Client struct {
	id     string
	conn   *websocket.Conn
	opts   Options
	logger *zap.Logger

	send chan []byte
	done chan struct{}
	once sync.Once
}

func newClient(id string, conn *websocket.Conn, opts Options, logger *zap.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		opts:   opts,
		logger: logger.With(zap.String("conn", id)),
		send:   make(chan []byte, opts.SendBuffer),
		done:   make(chan struct{}),
	}
}

// ID returns the connection's server-assigned identifier.
func (c *Client) ID() string { return c.id }

// Enqueue offers a frame for delivery without blocking.
//
// Postcondition: Returns false if the frame was dropped because the buffer
// is full or the connection is closing. A dropped broadcast frame is
// acceptable; the next tick snapshot supersedes it.
func (c *Client) Enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	case c.send <- frame:
		return true
	default:
		c.logger.Debug("outbound buffer full, dropping frame")
		return false
	}
}

// close signals both pumps to stop and closes the socket. Safe to call from
// either pump, once each.
func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump reads frames until the socket dies and hands each one to the hub.
// It owns disconnect notification: the hub learns about the connection's end
// exactly once, from here.
func (c *Client) readPump(hub Hub) {
	defer func() {
		c.close()
		hub.Disconnect(c.id)
	}()

	c.conn.SetReadLimit(c.opts.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.opts.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.PongTimeout))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read failed", zap.Error(err))
			}
			return
		}
		hub.Message(c.id, frame)
	}
}

// writePump drains the send buffer onto the socket and keeps the connection
// alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.opts.pingPeriod())
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Debug("write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
