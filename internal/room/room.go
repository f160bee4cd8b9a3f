package room

import (
	"errors"
	"sync"
)

// MaxMembers is the hard capacity of every room: exactly two participants
// share a session.
const MaxMembers = 2

var (
	ErrRoomNotFound  = errors.New("room does not exist")
	ErrRoomLocked    = errors.New("room is locked")
	ErrRoomFull      = errors.New("room is full")
	ErrDuplicateCode = errors.New("room code already in use")
)

// Room holds the authoritative shared state for one code. All mutations and
// the broadcasts they trigger run under mu, so every member observes the
// same event sequence.
type Room struct {
	Code string

	mu      sync.Mutex
	counter int64
	ready   map[string]struct{}
	locked  bool
	gone    bool // set when the room is torn down; late commands become no-ops
}

func newRoom(code string) *Room {
	return &Room{
		Code:  code,
		ready: make(map[string]struct{}),
	}
}

// RoomDTO is the read-only snapshot served by the debug REST endpoint.
type RoomDTO struct {
	Code       string `json:"code"`
	Members    int    `json:"members"`
	Counter    int64  `json:"counter"`
	ReadyCount int    `json:"ready_count"`
	Locked     bool   `json:"locked"`
}
