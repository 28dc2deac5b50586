package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(hub *Hub, id string, buf int) *Client {
	return &Client{ID: id, Send: make(chan OutgoingMessage, buf), Hub: hub}
}

func TestHubBroadcastToPlayers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c1 := newClient(hub, "game-a", 1)
	c2 := newClient(hub, "game-b", 1)
	hub.register <- c1
	hub.register <- c2

	hub.BroadcastToPlayers([]string{"game-a", "game-b"}, OutgoingMessage{
		Event: "phase",
		Data:  map[string]any{"phase": "ante"},
	})

	assert.Equal(t, "phase", (<-c1.Send).Event)
	assert.Equal(t, "phase", (<-c2.Send).Event)
}

func TestHubSendToPlayer(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c1 := newClient(hub, "game-a", 1)
	c2 := newClient(hub, "game-b", 1)
	hub.register <- c1
	hub.register <- c2

	hub.SendToPlayer("game-a", OutgoingMessage{Event: "prompt", Data: "bet"})

	received := <-c1.Send
	assert.Equal(t, "prompt", received.Event)
	assert.Equal(t, "bet", received.Data)

	select {
	case <-c2.Send:
		assert.Fail(t, "game-b should NOT receive anything")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c := newClient(hub, "game-a", 1)
	hub.register <- c
	assert.Eventually(t, func() bool { _, ok := hub.ClientByID("game-a"); return ok }, time.Second, 5*time.Millisecond)

	hub.unregister <- c
	assert.Eventually(t, func() bool { _, ok := hub.ClientByID("game-a"); return !ok }, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open, "send channel should be closed")
}

// ✅ 重连后旧连接的 unregister 不能踢掉新连接
func TestHubReconnectKeepsNewClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	old := newClient(hub, "game-a", 1)
	fresh := newClient(hub, "game-a", 1)
	hub.register <- old
	hub.register <- fresh

	_, open := <-old.Send
	assert.False(t, open)

	hub.unregister <- old
	hub.SendToPlayer("game-a", OutgoingMessage{Event: "card"})
	assert.Equal(t, "card", (<-fresh.Send).Event)
}

func TestHubDropsForSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	c := newClient(hub, "game-a", 1)
	hub.register <- c

	hub.SendToPlayer("game-a", OutgoingMessage{Event: "first"})
	hub.SendToPlayer("game-a", OutgoingMessage{Event: "second"})
	hub.SendToPlayer("game-a", OutgoingMessage{Event: "third"})

	assert.Equal(t, "first", (<-c.Send).Event)
}

func TestServeWSRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	got := make(chan IncomingMessage, 1)
	hub := NewHub()
	hub.OnIncoming = func(m IncomingMessage) { got <- m }
	go hub.Run()
	defer hub.Close()

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { c.Set("player", "game-a") }, ServeWS(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// From 由服务端填充
	require.NoError(t, conn.WriteJSON(IncomingMessage{From: "spoofed", Event: "answer", Data: true}))
	select {
	case m := <-got:
		assert.Equal(t, "game-a", m.From)
		assert.Equal(t, "answer", m.Event)
		assert.Equal(t, true, m.Data)
	case <-time.After(time.Second):
		t.Fatalf("incoming message not forwarded")
	}

	hub.SendToPlayer("game-a", OutgoingMessage{Event: "prompt", Data: map[string]any{"kind": "hit"}})
	var out OutgoingMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "prompt", out.Event)
	assert.Equal(t, map[string]any{"kind": "hit"}, out.Data)
}

func TestHubIncomingHandlerCanReply(t *testing.T) {
	hub := NewHub()
	hub.OnIncoming = func(m IncomingMessage) {
		hub.SendToPlayer(m.From, OutgoingMessage{Event: "echo", Data: m.Data})
	}
	go hub.Run()
	defer hub.Close()

	c := newClient(hub, "game-a", 4)
	hub.register <- c

	for i := 1; i <= 3; i++ {
		hub.incoming <- IncomingMessage{From: "game-a", Event: "ready", Data: i}
	}
	for i := 1; i <= 3; i++ {
		select {
		case out := <-c.Send:
			assert.Equal(t, "echo", out.Event)
			assert.Equal(t, i, out.Data)
		case <-time.After(time.Second):
			t.Fatalf("reply %d not delivered", i)
		}
	}

	// Run 仍在处理发送
	hub.SendToPlayer("game-a", OutgoingMessage{Event: "after"})
	select {
	case out := <-c.Send:
		assert.Equal(t, "after", out.Event)
	case <-time.After(time.Second):
		t.Fatalf("hub stalled")
	}
}

func TestServeWSRequiresPlayer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	r := gin.New()
	r.GET("/ws", ServeWS(hub))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ws", nil))
	assert.Equal(t, 401, w.Code)
}

func BenchmarkHubBroadcast(b *testing.B) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	// 所有 Send 都必须有人接收
	c1 := newClient(hub, "game-a", 1024)
	c2 := newClient(hub, "game-b", 1024)
	go func() {
		for range c1.Send {
		}
	}()
	go func() {
		for range c2.Send {
		}
	}()
	hub.register <- c1
	hub.register <- c2

	b.ResetTimer()
	msg := OutgoingMessage{Event: "bench"}
	for i := 0; i < b.N; i++ {
		hub.BroadcastToPlayers([]string{"game-a", "game-b"}, msg)
	}
}
