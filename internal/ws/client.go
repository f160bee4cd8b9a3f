package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// clientConn wraps one websocket connection with a write mutex and the
// opaque identity the coordinator keys sessions on. The identity lives
// exactly as long as the physical connection.
type clientConn struct {
	id      string
	rawConn *websocket.Conn
	mu      sync.Mutex
}

func newClientConn(raw *websocket.Conn) *clientConn {
	return &clientConn{id: uuid.NewString(), rawConn: raw}
}

func (c *clientConn) ID() string { return c.id }

// Send wraps the event in the wire envelope and writes it. Implements
// room.Conn.
func (c *clientConn) Send(event string, body any) error {
	msg := map[string]any{"event": event}
	if body != nil {
		msg["body"] = body
	}
	return c.writeJSON(msg)
}

func (c *clientConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteJSON(v)
}

func (c *clientConn) close() {
	_ = c.rawConn.Close()
}
