package ws

import (
	"sync"

	"pairroomgo/internal/room"
)

// Hub keeps connection sets per room code. It implements room.Channels, the
// transport substrate the coordinator broadcasts through.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*channel
}

func NewHub() *Hub { return &Hub{rooms: make(map[string]*channel)} }

func (h *Hub) Join(code string, c room.Conn) {
	h.mu.Lock()
	ch, ok := h.rooms[code]
	if !ok {
		ch = newChannel()
		h.rooms[code] = ch
	}
	h.mu.Unlock()
	ch.add(c)
}

func (h *Hub) Leave(code string, c room.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.rooms[code]
	if !ok {
		return
	}
	ch.remove(c)
	if ch.size() == 0 {
		delete(h.rooms, code)
	}
}

func (h *Hub) Member(code string, c room.Conn) bool {
	if ch, ok := h.channel(code); ok {
		return ch.has(c)
	}
	return false
}

func (h *Hub) Count(code string) int {
	if ch, ok := h.channel(code); ok {
		return ch.size()
	}
	return 0
}

func (h *Hub) Broadcast(code string, event string, body any) {
	if ch, ok := h.channel(code); ok {
		ch.broadcast(nil, event, body)
	}
}

func (h *Hub) BroadcastExcept(code string, except room.Conn, event string, body any) {
	if ch, ok := h.channel(code); ok {
		ch.broadcast(except, event, body)
	}
}

func (h *Hub) channel(code string) (*channel, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ch, ok := h.rooms[code]
	return ch, ok
}
