package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws  (需带 JWT，auth.JwtAuthMiddleware 注入 "player")
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetString("player")
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing player"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := &Client{
			ID:   id,
			Conn: conn,
			Send: make(chan OutgoingMessage, 32),
			Hub:  hub,
		}

		select {
		case hub.register <- client:
		case <-hub.quit:
			_ = conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}
