package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// Client is one websocket connection, keyed in the hub by its JWT subject.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan OutgoingMessage
	Hub  *Hub
}

const (
	writeWait      = 10 * time.Second    // 单次写超时
	pongWait       = 60 * time.Second    // 读超时
	pingPeriod     = (pongWait * 9) / 10 // 心跳发送周期
	maxMessageSize = 1024 * 4            // 最大4KB
)

func (c *Client) leave() {
	select {
	case c.Hub.unregister <- c:
	case <-c.Hub.quit:
	}
}

// 写协程
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod) // 心跳
	defer func() {
		ticker.Stop()
		c.leave()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub关闭Send，通知前端
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// 读协程：所有消息交给 hub.incoming
func (c *Client) readPump() {
	defer func() {
		c.leave()
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg IncomingMessage
		if err := c.Conn.ReadJSON(&msg); err != nil {
			return
		}
		select {
		case c.Hub.incoming <- IncomingMessage{From: c.ID, Event: msg.Event, Data: msg.Data}:
		case <-c.Hub.quit:
			return
		}
	}
}
