package room

// Events emitted to connections. The transport wraps each one in the wire
// envelope {"event": ..., "body": ...}.
const (
	EvtRoomCreated    = "room-created"
	EvtRoomJoined     = "room-joined"
	EvtError          = "error"
	EvtRoomInfo       = "room-info"
	EvtCounterUpdate  = "counter-update"
	EvtReadyUpdate    = "ready-update"
	EvtRoomLocked     = "room-locked"
	EvtRoomMessage    = "room-message"
	EvtUserTyping     = "user-typing"
	EvtUserStopTyping = "user-stop-typing"
	EvtResyncFailed   = "resync-failed"
)

type RoomBody struct {
	Code string `json:"code"`
}

type RoomInfoBody struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

type CounterBody struct {
	Value int64 `json:"value"`
}

type ReadyBody struct {
	Count int `json:"count"`
}

type MessageBody struct {
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

type TypingBody struct {
	Username string `json:"username"`
}

type ErrorBody struct {
	Message string `json:"message"`
}
