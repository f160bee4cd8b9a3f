package roomhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pairroomgo/internal/room"
)

// Handler exposes a read-only view of live rooms for debugging. Clients get
// authoritative state over the socket, never from here.
type Handler struct {
	coord *room.Coordinator
}

func New(coord *room.Coordinator) *Handler { return &Handler{coord: coord} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/healthz", h.health)
	r.GET("/rooms/:code", h.info)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Rooms: h.coord.RoomCount()})
}

func (h *Handler) info(c *gin.Context) {
	dto, ok := h.coord.RoomInfo(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: room.ErrRoomNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}
