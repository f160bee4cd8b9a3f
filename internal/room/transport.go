package room

// Conn is one participant connection as seen by the coordinator: an opaque
// identity for the lifetime of the physical connection, plus a
// fire-and-forget unicast. The websocket layer provides the real thing.
type Conn interface {
	ID() string
	Send(event string, body any) error
}

// Channels is the transport substrate the coordinator depends on: named
// channels of connections with membership counting and broadcast. Sends are
// not acknowledged; a failed write is the transport's problem.
type Channels interface {
	Join(code string, c Conn)
	Leave(code string, c Conn)
	Member(code string, c Conn) bool
	Count(code string) int
	Broadcast(code string, event string, body any)
	BroadcastExcept(code string, except Conn, event string, body any)
}
