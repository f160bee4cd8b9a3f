package roomhandler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairroomgo/internal/http/roomhandler"
	"pairroomgo/internal/room"
)

type nopConn struct{ id string }

func (n nopConn) ID() string                     { return n.id }
func (n nopConn) Send(event string, _ any) error { return nil }

type memChannels struct {
	mu      sync.Mutex
	members map[string]map[room.Conn]struct{}
}

func newMemChannels() *memChannels {
	return &memChannels{members: make(map[string]map[room.Conn]struct{})}
}

func (m *memChannels) Join(code string, c room.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.members[code] == nil {
		m.members[code] = make(map[room.Conn]struct{})
	}
	m.members[code][c] = struct{}{}
}

func (m *memChannels) Leave(code string, c room.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.members[code], c)
}

func (m *memChannels) Member(code string, c room.Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.members[code][c]
	return ok
}

func (m *memChannels) Count(code string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.members[code])
}

func (m *memChannels) Broadcast(string, string, any)                  {}
func (m *memChannels) BroadcastExcept(string, room.Conn, string, any) {}

func newRouter(t *testing.T) (*gin.Engine, *room.Coordinator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	coordinator := room.NewCoordinator(room.NewRegistry(), newMemChannels(), 4)
	engine := gin.New()
	roomhandler.New(coordinator).Register(engine)
	return engine, coordinator
}

func TestHealthz(t *testing.T) {
	engine, _ := newRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body roomhandler.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 0, body.Rooms)
}

func TestRoomInfoEndpoint(t *testing.T) {
	engine, coordinator := newRouter(t)

	conn := nopConn{id: "a"}
	coordinator.Connect(conn)
	_, err := coordinator.CreateRoom(conn, "4821")
	require.NoError(t, err)
	coordinator.Increment("4821")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/4821", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var dto room.RoomDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, room.RoomDTO{Code: "4821", Members: 1, Counter: 1}, dto)
}

func TestRoomInfoNotFound(t *testing.T) {
	engine, _ := newRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/0000", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body roomhandler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "room does not exist", body.Error)
}
