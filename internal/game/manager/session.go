package manager

import (
	"context"
	"errors"
	"io"

	"CasinoBlackjack/internal/game/engine"
	"CasinoBlackjack/internal/game/player"
	"CasinoBlackjack/internal/game/table"
	"CasinoBlackjack/internal/roster"

	"github.com/charmbracelet/log"
)

// Summary is how a session ended.
type Summary struct {
	GameID      string          `json:"gameId"`
	Dealer      string          `json:"dealer"`
	Rounds      int             `json:"rounds"`
	HouseBroken bool            `json:"houseBroken"`
	HouseWon    bool            `json:"houseWon"`
	Quit        bool            `json:"quit"`
	Saved       bool            `json:"saved"`
	Winner      string          `json:"winner,omitempty"`
	Left        []roster.Record `json:"left"`
	Eliminated  []string        `json:"eliminated"`
}

// Session plays rounds at one table until the game ends, keeping the saved
// game in step with who left, who was knocked out and who got promoted.
type Session struct {
	ID     string
	Engine *engine.Engine

	decider   engine.Decider
	roster    *roster.Service
	skills    map[string]table.Skill
	log       *log.Logger
	completed int
}

// NewSession wraps t in an engine. svc may be nil for a game that saves nothing.
func NewSession(t *table.Table, recs []roster.Record, dec engine.Decider, svc *roster.Service, l *log.Logger, opts ...engine.Option) *Session {
	if l == nil {
		l = log.New(io.Discard)
	}
	skills := make(map[string]table.Skill, len(recs))
	for _, r := range recs {
		skills[r.Name] = r.Skill
	}
	opts = append([]engine.Option{engine.WithLogger(l)}, opts...)
	return &Session{
		ID:      t.ID,
		Engine:  engine.NewEngine(t, dec, opts...),
		decider: dec,
		roster:  svc,
		skills:  skills,
		log:     l,
	}
}

// Run plays until the table is empty, the house is broken or a player quits.
// A quit is not an error.
func (s *Session) Run(ctx context.Context) (*Summary, error) {
	t := s.Engine.Table
	sum := &Summary{GameID: s.ID, Dealer: t.Dealer.Name}
	s.log.Info("session start", "game", s.ID, "dealer", t.Dealer.Name, "payout", t.Payout.Ratio, "min", t.Limits.Min, "max", t.Limits.Max)

	for {
		rep, err := s.Engine.PlayRound(ctx)
		if rep != nil {
			s.leave(ctx, rep, sum)
		}
		if err != nil {
			if errors.Is(err, engine.ErrQuit) || ctx.Err() != nil {
				sum.Quit = true
				sum.Rounds = s.completed
				return sum, s.quit(ctx, sum)
			}
			return sum, err
		}

		s.completed++
		sum.Rounds = s.completed
		if !rep.GameOver {
			continue
		}

		sum.HouseWon = rep.HouseWon
		if rep.HouseBroken {
			sum.HouseBroken = true
			sum.Winner = s.winner()
			s.saveSeated(ctx, sum)
		}
		s.log.Info("session over", "game", s.ID, "rounds", sum.Rounds, "houseBroken", sum.HouseBroken, "houseWon", sum.HouseWon)
		return sum, nil
	}
}

// leave books this round's departures against the saved game.
func (s *Session) leave(ctx context.Context, rep *engine.RoundReport, sum *Summary) {
	for _, p := range rep.Withdrawn {
		// withdrawals happen before the round's ante
		s.save(ctx, p, s.completed, sum)
	}
	for _, p := range rep.Eliminated {
		sum.Eliminated = append(sum.Eliminated, p.Name)
		if s.roster == nil {
			continue
		}
		if err := s.roster.Remove(ctx, p.Name); err != nil && !errors.Is(err, roster.ErrUnknownPlayer) {
			s.log.Error("remove eliminated player", "player", p.Name, "err", err)
		}
	}
}

func (s *Session) quit(ctx context.Context, sum *Summary) error {
	if s.Engine.Table.Empty() {
		return nil
	}
	if ctx.Err() == nil {
		ok, err := s.decider.Confirm(ctx, engine.Prompt{Kind: engine.PromptSave})
		if err != nil && !errors.Is(err, engine.ErrQuit) && ctx.Err() == nil {
			return err
		}
		if err == nil && !ok {
			s.log.Info("quit without saving", "game", s.ID)
			return nil
		}
	}
	// an abandoned session still keeps the banks
	s.saveSeated(context.WithoutCancel(ctx), sum)
	return nil
}

func (s *Session) saveSeated(ctx context.Context, sum *Summary) {
	t := s.Engine.Table
	for _, seat := range t.Occupied() {
		s.save(ctx, t.Player(seat), s.completed, sum)
	}
	sum.Saved = s.roster != nil
}

func (s *Session) save(ctx context.Context, p *player.Player, rounds int, sum *Summary) {
	start, ok := s.skills[p.Name]
	if !ok {
		start = table.Starter
	}
	rec := roster.Record{Name: p.Name, Bank: p.Bank, Skill: start.Promote(rounds)}
	if rec.Skill != start {
		s.log.Info("player promoted", "player", p.Name, "from", start, "to", rec.Skill, "rounds", rounds)
	}
	sum.Left = append(sum.Left, rec)
	if s.roster == nil {
		return
	}
	if err := s.roster.Update(ctx, rec); err != nil {
		s.log.Error("save player", "player", p.Name, "err", err)
	}
}

func (s *Session) winner() string {
	t := s.Engine.Table
	best, name := -1, ""
	for _, seat := range t.Occupied() {
		if p := t.Player(seat); p.Bank > best {
			best, name = p.Bank, p.Name
		}
	}
	return name
}
