package table

import (
	"errors"
	"fmt"
	"time"

	"CasinoBlackjack/internal/game/cards"
	"CasinoBlackjack/internal/game/dealer"
	"CasinoBlackjack/internal/game/hand"
	"CasinoBlackjack/internal/game/player"

	"github.com/google/uuid"
)

var (
	ErrNoPlayers      = errors.New("table: no players to seat")
	ErrTooManyPlayers = errors.New("table: at most three seats")
)

// Config is everything needed to open a table besides the players.
type Config struct {
	DealerName string
	DealerBank int
	Skill      Skill
	Payout     Payout
	Limits     Limits
	Seed       int64
}

// Table owns the shoe, the dealer and every seat for the life of a session.
type Table struct {
	ID        string
	Skill     Skill
	Payout    Payout
	Limits    Limits
	CreatedAt time.Time

	// 运行时状态
	Dealer  *dealer.Dealer
	Shoe    *cards.Shoe
	Seats   [SeatCount]*player.Player
	Results map[string]hand.Result
	Phase   Phase
}

// New seats players left to right and loads a shoe shuffled from cfg.Seed
// (the clock when zero).
func New(cfg Config, players ...*player.Player) (*Table, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if len(players) > SeatCount {
		return nil, ErrTooManyPlayers
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.Name] {
			return nil, fmt.Errorf("table: player %q seated twice", p.Name)
		}
		seen[p.Name] = true
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	t := &Table{
		ID:        uuid.NewString(),
		Skill:     cfg.Skill,
		Payout:    cfg.Payout,
		Limits:    cfg.Limits,
		CreatedAt: time.Now(),
		Dealer:    dealer.New(cfg.DealerName, cfg.DealerBank),
		Shoe:      cards.NewShoe(cfg.Seed),
		Results:   make(map[string]hand.Result),
		Phase:     PhasePregame,
	}
	for i, p := range players {
		t.Seats[i] = p
	}
	return t, nil
}

// Occupied lists the taken seats in play order.
func (t *Table) Occupied() []Seat {
	out := make([]Seat, 0, SeatCount)
	for _, s := range Seats {
		if t.Seats[s] != nil {
			out = append(out, s)
		}
	}
	return out
}

func (t *Table) Player(s Seat) *player.Player {
	return t.Seats[s]
}

func (t *Table) Empty() bool {
	return len(t.Occupied()) == 0
}

// Remove takes a player off the table, dropping any unsettled bet and its
// entries in the results map.
func (t *Table) Remove(s Seat) *player.Player {
	p := t.Seats[s]
	if p == nil {
		return nil
	}
	p.Forfeit()
	t.Seats[s] = nil
	delete(t.Results, RegKey(s))
	delete(t.Results, SplitKey(s))
	return p
}

func (t *Table) Result(key string) hand.Result {
	return t.Results[key]
}

func (t *Table) SetResult(key string, r hand.Result) {
	t.Results[key] = r
}

func (t *Table) ResetResults() {
	t.Results = make(map[string]hand.Result)
}
