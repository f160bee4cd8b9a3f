package room

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultDisplayName = "Anonymous"

// How many generated codes to try before giving up. At 4 characters the
// space is ~1M codes, so more than one retry is already rare.
const maxCodeAttempts = 64

type session struct {
	name string
	room string
}

// Coordinator owns room lifecycle and serializes all mutations of a room's
// shared state. Commands for the same code are applied one at a time under
// that room's mutex; their broadcasts go out under the same mutex, so every
// member sees counter and ready updates in the same order they were applied.
type Coordinator struct {
	registry *Registry
	channels Channels
	codeLen  int

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewCoordinator(registry *Registry, channels Channels, codeLen int) *Coordinator {
	return &Coordinator{
		registry: registry,
		channels: channels,
		codeLen:  codeLen,
		sessions: make(map[string]*session),
	}
}

// Connect registers a fresh connection with the coordinator. Display name
// and room membership start empty.
func (c *Coordinator) Connect(conn Conn) {
	c.mu.Lock()
	c.sessions[conn.ID()] = &session{}
	c.mu.Unlock()
}

// SetUsername stores the connection-scoped display name. Nothing is
// persisted; a reconnecting client must re-announce it.
func (c *Coordinator) SetUsername(conn Conn, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[conn.ID()]
	if !ok {
		s = &session{}
		c.sessions[conn.ID()] = s
	}
	s.name = name
}

// CreateRoom registers a room under the given code, or under a generated
// one when code is empty, and joins the creator to it. Returns the live
// code. A connection already in another room leaves it first.
func (c *Coordinator) CreateRoom(conn Conn, code string) (string, error) {
	var (
		r   *Room
		err error
	)
	if code == "" {
		for i := 0; i < maxCodeAttempts; i++ {
			code = NewCode(c.codeLen)
			if r, err = c.registry.Create(code); err == nil {
				break
			}
		}
	} else {
		r, err = c.registry.Create(code)
	}
	if err != nil {
		return "", err
	}

	c.leaveCurrent(conn, code)

	r.mu.Lock()
	defer r.mu.Unlock()

	c.channels.Join(code, conn)
	c.setRoom(conn.ID(), code)

	c.channels.Broadcast(code, EvtRoomInfo, RoomInfoBody{Code: code, Count: c.channels.Count(code)})
	_ = conn.Send(EvtRoomCreated, RoomBody{Code: code})

	zap.L().Info("room.created", zap.String("code", code), zap.String("conn_id", conn.ID()))
	return code, nil
}

// JoinRoom admits the connection as the second participant. The joiner gets
// the current counter value before the room-wide membership broadcast, so a
// slow broadcast never races a late counter read.
func (c *Coordinator) JoinRoom(conn Conn, code string) error {
	r, ok := c.registry.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	c.leaveCurrent(conn, code)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gone {
		return ErrRoomNotFound
	}
	if r.locked {
		return ErrRoomLocked
	}
	if !c.channels.Member(code, conn) && c.channels.Count(code) >= MaxMembers {
		return ErrRoomFull
	}

	c.channels.Join(code, conn)
	c.setRoom(conn.ID(), code)

	_ = conn.Send(EvtCounterUpdate, CounterBody{Value: r.counter})
	c.channels.Broadcast(code, EvtRoomInfo, RoomInfoBody{Code: code, Count: c.channels.Count(code)})
	_ = conn.Send(EvtRoomJoined, RoomBody{Code: code})

	zap.L().Info("room.joined", zap.String("code", code), zap.String("conn_id", conn.ID()))
	return nil
}

// Resync reconciles a reconnecting client with authoritative state. The
// reply is targeted: only the resyncing connection hears anything, and a
// dead code never turns into a phantom room.
func (c *Coordinator) Resync(conn Conn, code string) {
	r, ok := c.registry.Get(code)
	if !ok {
		_ = conn.Send(EvtResyncFailed, struct{}{})
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gone {
		_ = conn.Send(EvtResyncFailed, struct{}{})
		return
	}

	if !c.channels.Member(code, conn) {
		// A stranger resyncing into a full room would make a third member.
		if c.channels.Count(code) >= MaxMembers {
			_ = conn.Send(EvtResyncFailed, struct{}{})
			return
		}
		c.channels.Join(code, conn)
		c.setRoom(conn.ID(), code)
	}

	_ = conn.Send(EvtRoomInfo, RoomInfoBody{Code: code, Count: c.channels.Count(code)})
	_ = conn.Send(EvtCounterUpdate, CounterBody{Value: r.counter})
}

// Increment adjusts the shared counter by +1 and fans the new value out to
// every member, sender included. Stale codes are silently ignored.
func (c *Coordinator) Increment(code string) { c.adjustCounter(code, +1) }

// Decrement is Increment's mirror.
func (c *Coordinator) Decrement(code string) { c.adjustCounter(code, -1) }

func (c *Coordinator) adjustCounter(code string, delta int64) {
	r, ok := c.registry.Get(code)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gone {
		return
	}
	r.counter += delta
	c.channels.Broadcast(code, EvtCounterUpdate, CounterBody{Value: r.counter})
}

// MarkReady adds the connection to the ready set. When both participants
// are ready the room locks, permanently. Re-marking ready is idempotent.
func (c *Coordinator) MarkReady(conn Conn, code string) {
	r, ok := c.registry.Get(code)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gone || r.locked {
		return
	}
	if !c.channels.Member(code, conn) {
		return // ready set stays a subset of current members
	}

	r.ready[conn.ID()] = struct{}{}
	c.channels.Broadcast(code, EvtReadyUpdate, ReadyBody{Count: len(r.ready)})

	if len(r.ready) == MaxMembers {
		r.locked = true
		c.channels.Broadcast(code, EvtRoomLocked, struct{}{})
		zap.L().Info("room.locked", zap.String("code", code))
	}
}

// MarkUnready removes the connection from the ready set. Once the room is
// locked the set is frozen and the command is ignored.
func (c *Coordinator) MarkUnready(conn Conn, code string) {
	r, ok := c.registry.Get(code)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gone || r.locked {
		return
	}
	delete(r.ready, conn.ID())
	c.channels.Broadcast(code, EvtReadyUpdate, ReadyBody{Count: len(r.ready)})
}

// SendMessage relays a chat message to every member, sender included.
// Nothing is stored; missing code or empty text degrades to a no-op.
func (c *Coordinator) SendMessage(conn Conn, code, text string) {
	if code == "" || text == "" {
		return
	}
	r, ok := c.registry.Get(code)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gone {
		return
	}
	c.channels.Broadcast(code, EvtRoomMessage, MessageBody{
		Text:      text,
		Sender:    c.displayName(conn.ID()),
		Timestamp: time.Now().UnixMilli(),
	})
}

// Typing relays a typing indicator to every other member. Purely advisory;
// no state is kept and the sender never hears its own indicator.
func (c *Coordinator) Typing(conn Conn, code string) {
	if _, ok := c.registry.Get(code); !ok {
		return
	}
	c.channels.BroadcastExcept(code, conn, EvtUserTyping, TypingBody{Username: c.displayName(conn.ID())})
}

// StopTyping clears the indicator for the other member.
func (c *Coordinator) StopTyping(conn Conn, code string) {
	if _, ok := c.registry.Get(code); !ok {
		return
	}
	c.channels.BroadcastExcept(code, conn, EvtUserStopTyping, struct{}{})
}

// Disconnect tears down the connection's room membership and session state.
// The last member leaving destroys the room; otherwise the remaining member
// learns the new count.
func (c *Coordinator) Disconnect(conn Conn) {
	c.mu.Lock()
	s, ok := c.sessions[conn.ID()]
	delete(c.sessions, conn.ID())
	c.mu.Unlock()

	if !ok || s.room == "" {
		return
	}
	c.teardown(conn, s.room)
	zap.L().Debug("conn.disconnected", zap.String("conn_id", conn.ID()))
}

// RoomInfo snapshots a room for the debug REST surface.
func (c *Coordinator) RoomInfo(code string) (*RoomDTO, bool) {
	r, ok := c.registry.Get(code)
	if !ok {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gone {
		return nil, false
	}
	return &RoomDTO{
		Code:       code,
		Members:    c.channels.Count(code),
		Counter:    r.counter,
		ReadyCount: len(r.ready),
		Locked:     r.locked,
	}, true
}

// RoomCount reports how many rooms are live.
func (c *Coordinator) RoomCount() int { return c.registry.Len() }

// ---------------------------------------------------------------------------
//  internals
// ---------------------------------------------------------------------------

// leaveCurrent enforces single-room-per-connection: entering a new room
// implicitly leaves the old one through the same path a disconnect takes.
func (c *Coordinator) leaveCurrent(conn Conn, next string) {
	c.mu.Lock()
	s, ok := c.sessions[conn.ID()]
	if !ok {
		s = &session{}
		c.sessions[conn.ID()] = s
	}
	prev := s.room
	c.mu.Unlock()

	if prev == "" || prev == next {
		return
	}
	c.teardown(conn, prev)
}

func (c *Coordinator) teardown(conn Conn, code string) {
	r, ok := c.registry.Get(code)
	if !ok {
		c.channels.Leave(code, conn)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// A departed member must not block a future lock with a stale ready
	// mark. After the lock the set is frozen, departures included.
	if !r.locked {
		delete(r.ready, conn.ID())
	}

	c.channels.Leave(code, conn)

	if c.channels.Count(code) == 0 {
		r.gone = true
		c.registry.Delete(code)
		zap.L().Info("room.deleted", zap.String("code", code))
		return
	}
	c.channels.Broadcast(code, EvtRoomInfo, RoomInfoBody{Code: code, Count: c.channels.Count(code)})
}

func (c *Coordinator) setRoom(connID, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[connID]
	if !ok {
		s = &session{}
		c.sessions[connID] = s
	}
	s.room = code
}

func (c *Coordinator) displayName(connID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.sessions[connID]; ok && s.name != "" {
		return s.name
	}
	return defaultDisplayName
}
