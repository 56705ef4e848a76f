package gateway

import "sync"

// Conn is the outbound half of one client connection. Enqueue must never
// block: implementations buffer and drop rather than stall a broadcast.
type Conn interface {
	// Enqueue offers a frame for delivery. Returns false if the frame was
	// dropped (buffer full or connection closed).
	Enqueue(frame []byte) bool
}

// ConnRegistry tracks the outbound endpoint for every live connection and
// implements the lobby Sender. Sends are fire-and-forget: an unknown or
// saturated recipient is skipped, never an error, so one bad connection
// cannot abort a broadcast to the rest.
// All methods are safe for concurrent use.
type ConnRegistry struct {
	mu    sync.RWMutex
	conns map[string]Conn
}

// NewConnRegistry creates an empty ConnRegistry.
func NewConnRegistry() *ConnRegistry {
	return &ConnRegistry{
		conns: make(map[string]Conn),
	}
}

// Add registers the outbound endpoint for connID.
func (r *ConnRegistry) Add(id string, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = c
}

// Remove drops the endpoint for connID. Removing an unknown ID is a no-op.
func (r *ConnRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
}

// Send delivers a frame to one connection, best-effort.
func (r *ConnRegistry) Send(id string, frame []byte) {
	r.mu.RLock()
	c, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok {
		return
	}
	_ = c.Enqueue(frame)
}

// Len returns the number of registered connections.
func (r *ConnRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
