package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"CasinoBlackjack/internal/auth"
	"CasinoBlackjack/internal/game/engine"
	"CasinoBlackjack/internal/game/table"
	"CasinoBlackjack/internal/roster"
	"CasinoBlackjack/internal/websocket"

	"github.com/charmbracelet/log"
)

var (
	ErrGameRunning   = errors.New("manager: a game is already running")
	ErrNoPlayers     = errors.New("manager: no saved players, create some first")
	ErrUnknownDealer = errors.New("manager: no such dealer")
	ErrDealerLocked  = errors.New("manager: dealer is above the players' skill")
)

type Options struct {
	Catalog         table.Catalog
	Secret          []byte
	TokenTTL        time.Duration
	DecisionTimeout time.Duration
	Seed            int64 // 0 = time based
	Logger          *log.Logger
}

// GameManager 管理唯一的一局游戏
type GameManager struct {
	mu     sync.Mutex
	hub    websocket.HubInterface
	roster *roster.Service
	opts   Options
	log    *log.Logger
	rnd    *rand.Rand

	active *game
	last   *Summary
}

type game struct {
	session *Session
	decider *hubDecider
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

type StartRequest struct {
	Dealer string `json:"dealer" binding:"required"`
}

type StartResponse struct {
	GameID   string             `json:"gameId"`
	Token    string             `json:"token"`
	Table    table.View         `json:"table"`
	Survival []SurvivalEstimate `json:"survival"`
}

func NewGameManager(hub websocket.HubInterface, svc *roster.Service, opts Options) *GameManager {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if len(opts.Catalog.Dealers) == 0 {
		opts.Catalog = table.DefaultCatalog()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &GameManager{
		hub:    hub,
		roster: svc,
		opts:   opts,
		log:    opts.Logger,
		rnd:    rand.New(rand.NewSource(seed)),
	}
}

// StartGame seats the saved players at dealerName's table. The game itself
// starts once the owner's websocket sends "ready".
func (m *GameManager) StartGame(ctx context.Context, dealerName string) (*StartResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		if m.active.started {
			return nil, ErrGameRunning
		}
		// 从未连接的对局直接作废
		m.log.Info("discarding unstarted game", "game", m.active.session.ID)
		m.active = nil
	}
	recs := m.roster.Load(ctx)
	if len(recs) == 0 {
		return nil, ErrNoPlayers
	}
	spec, ok := m.opts.Catalog.Find(dealerName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDealer, dealerName)
	}
	if !unlocked(m.opts.Catalog, spec, recs) {
		return nil, fmt.Errorf("%w: %s", ErrDealerLocked, spec.Name)
	}

	t, err := NewTable(spec, recs, m.rnd)
	if err != nil {
		return nil, err
	}
	token, err := auth.IssueToken(m.opts.Secret, t.ID, m.opts.TokenTTL)
	if err != nil {
		return nil, err
	}

	dec := newHubDecider(m.hub, t.ID, m.opts.DecisionTimeout)
	s := NewSession(t, recs, dec, m.roster, m.log.With("game", t.ID),
		engine.WithNotifier(hubNotifier{hub: m.hub, player: t.ID}))
	m.active = &game{session: s, decider: dec, done: make(chan struct{})}

	m.log.Info("game created", "game", t.ID, "dealer", spec.Name, "players", len(recs))
	return &StartResponse{GameID: t.ID, Token: token, Table: t.View(), Survival: Survival(spec, recs)}, nil
}

// HandlePlayerMessage 统一入口（来自 Hub.OnIncoming）
func (m *GameManager) HandlePlayerMessage(msg websocket.IncomingMessage) {
	m.mu.Lock()
	g := m.active
	if g == nil || g.session.ID != msg.From {
		m.mu.Unlock()
		m.log.Debug("message for no running game", "from", msg.From, "event", msg.Event)
		return
	}
	var ctx context.Context
	start := msg.Event == MsgReady && !g.started
	if start {
		g.started = true
		ctx, g.cancel = context.WithCancel(context.Background())
	}
	m.mu.Unlock()

	switch msg.Event {
	case MsgReady:
		if start {
			m.run(ctx, g)
		} else {
			g.decider.resend()
		}
	case MsgAnswer:
		g.decider.answer(msg.Data)
	case MsgQuit:
		g.decider.quit()
	default:
		m.log.Warn("unknown event", "from", msg.From, "event", msg.Event)
	}
}

func (m *GameManager) run(ctx context.Context, g *game) {
	go func() {
		defer g.cancel()
		defer close(g.done)

		sum, err := g.session.Run(ctx)
		if err != nil {
			m.log.Error("game ended with error", "game", g.session.ID, "err", err)
		}
		m.hub.SendToPlayer(g.session.ID, websocket.OutgoingMessage{Event: EventGameOver, Data: sum})

		m.mu.Lock()
		if m.active == g {
			m.active = nil
		}
		m.last = sum
		m.mu.Unlock()
	}()
}

// Status reports the running game id, or the summary of the last one.
func (m *GameManager) Status() (string, *Summary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		return m.active.session.ID, nil
	}
	return "", m.last
}

// Tables lists the catalog with what the saved players may sit at.
func (m *GameManager) Tables(ctx context.Context) []TableInfo {
	recs := m.roster.Load(ctx)
	out := make([]TableInfo, 0, len(m.opts.Catalog.Dealers))
	for _, d := range m.opts.Catalog.Dealers {
		out = append(out, TableInfo{
			DealerSpec: d,
			Available:  len(recs) > 0 && unlocked(m.opts.Catalog, d, recs),
			Survival:   Survival(d, recs),
		})
	}
	return out
}

type TableInfo struct {
	table.DealerSpec
	Available bool               `json:"available"`
	Survival  []SurvivalEstimate `json:"survival"`
}

// Shutdown cancels the running game (which saves the seated banks) and waits
// for it to finish or ctx to expire.
func (m *GameManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	g := m.active
	if g != nil && !g.started {
		m.active = nil
		g = nil
	}
	m.mu.Unlock()
	if g == nil {
		return nil
	}

	g.cancel()
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
