package engine

import (
	"context"
	"io"

	"CasinoBlackjack/internal/game/cards"
	"CasinoBlackjack/internal/game/player"
	"CasinoBlackjack/internal/game/table"

	"github.com/charmbracelet/log"
)

// ---------------------
//       ENGINE
// ---------------------

type Engine struct {
	Table    *table.Table
	decider  Decider
	notifier Notifier
	log      *log.Logger
	round    int
}

type Option func(*Engine)

func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func NewEngine(t *table.Table, d Decider, opts ...Option) *Engine {
	e := &Engine{
		Table:    t,
		decider:  d,
		notifier: nopNotifier{},
		log:      log.New(io.Discard),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Round is the number of rounds started so far.
func (e *Engine) Round() int {
	return e.round
}

// RoundReport tells the session what changed at the table this round.
type RoundReport struct {
	Round        int
	Withdrawn    []*player.Player
	Eliminated   []*player.Player
	ShoeReplaced bool
	HouseBroken  bool
	HouseWon     bool
	GameOver     bool
}

// round is the scratch state of one PlayRound call.
type round struct {
	RoundReport
	dealerWon  int
	dealerLost int
	over       bool
}

// PlayRound runs one full round, START through END. A Decider error leaves
// the table mid-round and is returned as is.
func (e *Engine) PlayRound(ctx context.Context) (*RoundReport, error) {
	if e.Table.Phase == table.PhasePostgame {
		return nil, ErrGameOver
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.round++
	r := &round{RoundReport: RoundReport{Round: e.round}}
	e.log.Info("round start", "table", e.Table.ID, "round", e.round)

	if err := e.start(ctx, r); err != nil {
		return &r.RoundReport, err
	}
	if !e.Table.Empty() {
		steps := []func(context.Context, *round) error{
			e.ante, e.deal, e.insurance, e.split, e.raise, e.turns, e.dealerTurn,
		}
		for _, step := range steps {
			if err := step(ctx, r); err != nil {
				return &r.RoundReport, err
			}
			if r.over {
				break
			}
		}
	}
	if err := e.end(ctx, r); err != nil {
		return &r.RoundReport, err
	}
	return &r.RoundReport, nil
}

func (e *Engine) setPhase(p table.Phase) {
	e.Table.Phase = p
	e.emit(Event{Name: EventPhase})
}

func (e *Engine) emit(ev Event) {
	ev.View = e.Table.View()
	e.notifier.Notify(ev)
}

func (e *Engine) draw() cards.Card {
	return e.Table.Shoe.Draw()
}

func (e *Engine) eliminate(r *round, s table.Seat, reason string) {
	p := e.Table.Remove(s)
	if p == nil {
		return
	}
	r.Eliminated = append(r.Eliminated, p)
	e.log.Info("seat eliminated", "seat", s, "player", p.Name, "bank", p.Bank, "reason", reason)
	e.emit(Event{Name: EventEliminated, Seat: s.String(), Player: p.Name, Amount: p.Bank})
}

// collect asks for an amount until apply accepts it.
func (e *Engine) collect(ctx context.Context, pr Prompt, apply func(int) player.BetResult) (int, error) {
	for {
		amount, err := e.decider.Amount(ctx, pr)
		if err != nil {
			return 0, err
		}
		res := apply(amount)
		if res == player.BetSuccess {
			return amount, nil
		}
		e.log.Debug("bet refused", "kind", pr.Kind, "seat", pr.Seat, "amount", amount, "result", res)
		pr.Retry = res
	}
}

func (e *Engine) seatPrompt(kind PromptKind, s table.Seat) Prompt {
	return Prompt{
		Kind:   kind,
		Seat:   s.String(),
		Player: e.Table.Player(s).Name,
		Min:    e.Table.Limits.Min,
		Max:    e.Table.Limits.Max,
	}
}
