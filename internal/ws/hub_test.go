package ws

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConn struct {
	id   string
	fail bool

	mu     sync.Mutex
	events []string
}

func (s *stubConn) ID() string { return s.id }

func (s *stubConn) Send(event string, body any) error {
	if s.fail {
		return errors.New("broken pipe")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *stubConn) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	copy(out, s.events)
	return out
}

func TestHubJoinLeaveCount(t *testing.T) {
	h := NewHub()
	a := &stubConn{id: "a"}
	b := &stubConn{id: "b"}

	assert.Equal(t, 0, h.Count("4821"))
	assert.False(t, h.Member("4821", a))

	h.Join("4821", a)
	h.Join("4821", b)
	h.Join("4821", b) // idempotent
	assert.Equal(t, 2, h.Count("4821"))
	assert.True(t, h.Member("4821", a))

	h.Leave("4821", a)
	assert.Equal(t, 1, h.Count("4821"))
	assert.False(t, h.Member("4821", a))

	// last member leaving drops the channel entirely
	h.Leave("4821", b)
	assert.Equal(t, 0, h.Count("4821"))

	// leaving an unknown channel is harmless
	h.Leave("0000", a)
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	a := &stubConn{id: "a"}
	b := &stubConn{id: "b"}
	h.Join("4821", a)
	h.Join("4821", b)

	h.Broadcast("4821", "counter-update", map[string]int{"value": 1})

	require.Equal(t, []string{"counter-update"}, a.received())
	require.Equal(t, []string{"counter-update"}, b.received())

	h.BroadcastExcept("4821", a, "user-typing", nil)
	assert.Equal(t, []string{"counter-update"}, a.received())
	assert.Equal(t, []string{"counter-update", "user-typing"}, b.received())

	// broadcasting into a dead channel is a no-op
	h.Broadcast("0000", "counter-update", nil)
}

func TestHubDropsConnsWithFailedWrites(t *testing.T) {
	h := NewHub()
	dead := &stubConn{id: "dead", fail: true}
	live := &stubConn{id: "live"}
	h.Join("4821", dead)
	h.Join("4821", live)

	h.Broadcast("4821", "room-info", nil)

	assert.False(t, h.Member("4821", dead))
	assert.True(t, h.Member("4821", live))
}
