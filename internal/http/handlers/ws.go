package handlers

import (
	"net/http"

	"billboard_compliance/internal/logger"
	"billboard_compliance/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the feed is public and read-only
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ActivityFeed upgrades the connection and streams dashboard events
func (h *Handler) ActivityFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(conn, h.Hub)
	h.Hub.Register(client)
	client.Run()
}
