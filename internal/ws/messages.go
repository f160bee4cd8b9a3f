package ws

import "encoding/json"

// Envelope wraps every WS frame.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "join-room"
	Body  json.RawMessage `json:"body,omitempty"` // arbitrary JSON object
}

// ──────────────────────────── Command bodies ─────────────────────────────

// RoomRequest is the body for every command that targets a room code.
type RoomRequest struct {
	Code string `json:"code"`
}

// UsernameRequest is the body for "set-username".
type UsernameRequest struct {
	Name string `json:"name"`
}

// MessageRequest is the body for "send-room-message".
type MessageRequest struct {
	Code string `json:"code"`
	Text string `json:"text"`
}
