package handlers

import (
	"net/http"

	"github.com/imran12mia/hopweb/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NoticeFeed upgrades the connection and subscribes it to the live
// notice broadcast.
func (h *Handler) NoticeFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	ws.Serve(h.NoticeHub, conn)
}
