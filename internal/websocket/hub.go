package websocket

import (
	"sync"

	"CasinoBlackjack/internal/utils"
)

type HubInterface interface {
	BroadcastToPlayers(ids []string, msg OutgoingMessage)
	ClientByID(id string) (*Client, bool)
	SendToPlayer(id string, msg OutgoingMessage)
	Close()
}

type Hub struct {
	clients    map[string]*Client // player id -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastReq
	sendOne    chan sendReq
	incoming   chan IncomingMessage
	OnIncoming func(IncomingMessage)
	quit       chan struct{}
	closeOnce  sync.Once
	mu         sync.RWMutex
}

type broadcastReq struct {
	IDs     []string
	Message OutgoingMessage
}

type sendReq struct {
	ID      string
	Message OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq),
		sendOne:    make(chan sendReq),
		incoming:   make(chan IncomingMessage, 64),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	utils.Print.Info("hub started")
	go h.dispatch()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			// 同一玩家重连：踢掉旧连接
			if old, ok := h.clients[c.ID]; ok && old != c {
				close(old.Send)
			}
			h.clients[c.ID] = c
			n := len(h.clients)
			h.mu.Unlock()
			utils.Print.Debug("hub register", "player", c.ID, "clients", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[c.ID]; ok && cur == c {
				delete(h.clients, c.ID)
				close(c.Send)
				utils.Print.Debug("hub unregister", "player", c.ID, "clients", len(h.clients))
			}
			h.mu.Unlock()

		case req := <-h.broadcast:
			h.mu.RLock()
			for _, id := range req.IDs {
				if client, ok := h.clients[id]; ok {
					h.deliver(client, req.Message)
				}
			}
			h.mu.RUnlock()

		case req := <-h.sendOne:
			h.mu.RLock()
			if client, ok := h.clients[req.ID]; ok {
				h.deliver(client, req.Message)
			}
			h.mu.RUnlock()

		case <-h.quit:
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			utils.Print.Info("hub stopped")
			return
		}
	}
}

// dispatch 在独立协程里按顺序把玩家消息交给游戏层（GameManager），
// OnIncoming 可以回调 SendToPlayer 而不会卡住 Run
func (h *Hub) dispatch() {
	for {
		select {
		case req := <-h.incoming:
			if h.OnIncoming != nil {
				h.OnIncoming(req)
			}
		case <-h.quit:
			return
		}
	}
}

// slow clients drop messages instead of stalling the hub
func (h *Hub) deliver(c *Client, msg OutgoingMessage) {
	select {
	case c.Send <- msg:
	default:
		utils.Print.Warn("hub dropped message", "player", c.ID, "event", msg.Event)
	}
}

func (h *Hub) BroadcastToPlayers(ids []string, msg OutgoingMessage) {
	select {
	case h.broadcast <- broadcastReq{IDs: ids, Message: msg}:
	case <-h.quit:
	}
}

func (h *Hub) SendToPlayer(id string, msg OutgoingMessage) {
	select {
	case h.sendOne <- sendReq{ID: id, Message: msg}:
	case <-h.quit:
	}
}

func (h *Hub) ClientByID(id string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	return c, ok
}

func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}
