package ws

import (
	"sync"

	"pairroomgo/internal/room"
)

// channel is one named connection group. Broadcast I/O happens outside the
// lock against a snapshot; connections whose writes fail are dropped.
type channel struct {
	mu    sync.RWMutex
	conns map[room.Conn]struct{}
}

func newChannel() *channel { return &channel{conns: map[room.Conn]struct{}{}} }

func (ch *channel) add(c room.Conn) {
	ch.mu.Lock()
	ch.conns[c] = struct{}{}
	ch.mu.Unlock()
}

func (ch *channel) remove(c room.Conn) {
	ch.mu.Lock()
	delete(ch.conns, c)
	ch.mu.Unlock()
}

func (ch *channel) has(c room.Conn) bool {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	_, ok := ch.conns[c]
	return ok
}

func (ch *channel) size() int {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return len(ch.conns)
}

func (ch *channel) broadcast(except room.Conn, event string, body any) {
	// Take a quick snapshot of the current connections
	ch.mu.RLock()
	conns := make([]room.Conn, 0, len(ch.conns))
	for c := range ch.conns {
		if c != except {
			conns = append(conns, c)
		}
	}
	ch.mu.RUnlock()

	// Do the I/O outside the lock
	var failed []room.Conn
	for _, c := range conns {
		if err := c.Send(event, body); err != nil {
			failed = append(failed, c)
		}
	}
	for _, c := range failed {
		ch.remove(c)
	}
}
