package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pairroomgo/internal/room"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 20 * time.Second // must be < pongWait
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // dev-only
}

type WsServer struct {
	hub       *Hub
	coord     *room.Coordinator
	router    *Router
	readLimit int64
}

func NewWsServer(h *Hub, coord *room.Coordinator, readLimit int64) *WsServer {
	srv := &WsServer{
		hub:       h,
		coord:     coord,
		router:    NewRouter(),
		readLimit: readLimit,
	}
	srv.registerHandlers() // ← all WS commands configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(s.readLimit)

	// ─────────────────── Client connected ────────────────────────
	conn := newClientConn(rawConn)
	s.coord.Connect(conn)
	zap.L().Debug("ws.connected", zap.String("conn_id", conn.ID()))

	go s.reader(conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	Register(s.router, "create-room", func(c *ConnContext, req RoomRequest) error {
		_, err := c.Coord.CreateRoom(c.Conn, req.Code)
		return err
	})

	Register(s.router, "join-room", func(c *ConnContext, req RoomRequest) error {
		return c.Coord.JoinRoom(c.Conn, req.Code)
	})

	Register(s.router, "resync-room", func(c *ConnContext, req RoomRequest) error {
		c.Coord.Resync(c.Conn, req.Code)
		return nil
	})

	Register(s.router, "set-username", func(c *ConnContext, req UsernameRequest) error {
		c.Coord.SetUsername(c.Conn, req.Name)
		return nil
	})

	Register(s.router, "increment-counter", func(c *ConnContext, req RoomRequest) error {
		c.Coord.Increment(req.Code)
		return nil
	})

	Register(s.router, "decrement-counter", func(c *ConnContext, req RoomRequest) error {
		c.Coord.Decrement(req.Code)
		return nil
	})

	Register(s.router, "player-ready", func(c *ConnContext, req RoomRequest) error {
		c.Coord.MarkReady(c.Conn, req.Code)
		return nil
	})

	Register(s.router, "player-unready", func(c *ConnContext, req RoomRequest) error {
		c.Coord.MarkUnready(c.Conn, req.Code)
		return nil
	})

	Register(s.router, "send-room-message", func(c *ConnContext, req MessageRequest) error {
		c.Coord.SendMessage(c.Conn, req.Code, req.Text)
		return nil
	})

	Register(s.router, "typing", func(c *ConnContext, req RoomRequest) error {
		c.Coord.Typing(c.Conn, req.Code)
		return nil
	})

	Register(s.router, "stop-typing", func(c *ConnContext, req RoomRequest) error {
		c.Coord.StopTyping(c.Conn, req.Code)
		return nil
	})
}

func (s *WsServer) reader(conn *clientConn) {
	defer func() {
		s.coord.Disconnect(conn)
		conn.close()
	}()

	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{Conn: conn, Coord: s.coord}

	for {
		var env Envelope
		if err := conn.rawConn.ReadJSON(&env); err != nil {
			return // client closed or errored
		}

		// ---- error -> {"event":"error", "body":{"message":...}} ------
		if err := s.router.dispatch(cc, env); err != nil {
			_ = conn.Send(room.EvtError, room.ErrorBody{Message: err.Error()})
		}
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		deadline := time.Now().Add(writeWait)
		if err := conn.rawConn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
			conn.close()
			return
		}
	}
}
