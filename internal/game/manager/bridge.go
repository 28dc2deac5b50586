package manager

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"CasinoBlackjack/internal/game/engine"
	"CasinoBlackjack/internal/websocket"
)

var ErrDecisionTimeout = errors.New("manager: no answer in time")

// websocket 事件名
const (
	EventPrompt        = "prompt"
	EventInvalidAnswer = "invalid_answer"
	EventGameOver      = "game_over"

	MsgReady  = "ready"
	MsgAnswer = "answer"
	MsgQuit   = "quit"
)

// hubDecider sends each Prompt to one websocket player and waits for the
// matching "answer" message.
type hubDecider struct {
	hub     websocket.HubInterface
	player  string
	timeout time.Duration

	answers chan any
	quits   chan struct{}

	mu      sync.Mutex
	pending *engine.Prompt
}

func newHubDecider(hub websocket.HubInterface, player string, timeout time.Duration) *hubDecider {
	return &hubDecider{
		hub:     hub,
		player:  player,
		timeout: timeout,
		answers: make(chan any, 1),
		quits:   make(chan struct{}, 1),
	}
}

func (d *hubDecider) Confirm(ctx context.Context, p engine.Prompt) (bool, error) {
	for {
		a, err := d.ask(ctx, p)
		if err != nil {
			return false, err
		}
		if v, ok := parseBool(a); ok {
			return v, nil
		}
		d.invalid(p, a)
	}
}

func (d *hubDecider) Amount(ctx context.Context, p engine.Prompt) (int, error) {
	for {
		a, err := d.ask(ctx, p)
		if err != nil {
			return 0, err
		}
		if v, ok := parseAmount(a); ok {
			return v, nil
		}
		d.invalid(p, a)
	}
}

func (d *hubDecider) ask(ctx context.Context, p engine.Prompt) (any, error) {
	// 丢弃过期的回答
	select {
	case <-d.answers:
	default:
	}
	d.setPending(&p)
	defer d.setPending(nil)
	d.hub.SendToPlayer(d.player, websocket.OutgoingMessage{Event: EventPrompt, Data: p})

	var timeout <-chan time.Time
	if d.timeout > 0 {
		t := time.NewTimer(d.timeout)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case a := <-d.answers:
		return a, nil
	case <-d.quits:
		return nil, engine.ErrQuit
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeout:
		return nil, ErrDecisionTimeout
	}
}

func (d *hubDecider) invalid(p engine.Prompt, a any) {
	d.hub.SendToPlayer(d.player, websocket.OutgoingMessage{
		Event: EventInvalidAnswer,
		Data:  map[string]any{"kind": p.Kind, "answer": a},
	})
}

func (d *hubDecider) setPending(p *engine.Prompt) {
	d.mu.Lock()
	d.pending = p
	d.mu.Unlock()
}

// resend repeats the open prompt, e.g. after a reconnect.
func (d *hubDecider) resend() {
	d.mu.Lock()
	p := d.pending
	d.mu.Unlock()
	if p != nil {
		d.hub.SendToPlayer(d.player, websocket.OutgoingMessage{Event: EventPrompt, Data: *p})
	}
}

func (d *hubDecider) answer(v any) {
	select {
	case d.answers <- v:
	default:
	}
}

// quit aborts the question being asked now, or the next one.
func (d *hubDecider) quit() {
	select {
	case d.quits <- struct{}{}:
	default:
	}
}

func parseBool(a any) (bool, bool) {
	switch v := a.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "y", "yes", "true":
			return true, true
		case "n", "no", "false":
			return false, true
		}
	}
	return false, false
}

func parseAmount(a any) (int, bool) {
	switch v := a.(type) {
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}

// hubNotifier forwards engine events to the player as they happen.
type hubNotifier struct {
	hub    websocket.HubInterface
	player string
}

func (n hubNotifier) Notify(ev engine.Event) {
	n.hub.SendToPlayer(n.player, websocket.OutgoingMessage{Event: ev.Name, Data: ev})
}
