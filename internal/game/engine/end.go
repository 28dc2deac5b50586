package engine

import (
	"context"

	"CasinoBlackjack/internal/game/table"
)

// END: clear the felt, sweep broke seats, look after the shoe.
func (e *Engine) end(ctx context.Context, r *round) error {
	t := e.Table
	e.setPhase(table.PhaseEnd)

	t.Dealer.EndRound()
	for _, s := range t.Occupied() {
		t.Player(s).EndRound()
	}
	for _, s := range t.Occupied() {
		if t.Player(s).Bank <= 0 {
			e.eliminate(r, s, "bank exhausted")
		}
	}
	t.ResetResults()

	r.GameOver = t.Empty() || r.HouseBroken
	r.HouseWon = t.Empty() && !r.HouseBroken && len(r.Eliminated) > 0

	switch {
	case t.Shoe.Low():
		e.replaceShoe(r)
	case !r.GameOver:
		replace, err := e.decider.Confirm(ctx, Prompt{Kind: PromptReplaceShoe})
		if err != nil {
			return err
		}
		if replace {
			e.replaceShoe(r)
		}
	}

	if r.HouseWon {
		e.log.Info("house wins", "table", t.ID, "round", r.Round)
		e.emit(Event{Name: EventHouseWins, Seat: "dealer", Amount: t.Dealer.Bank})
	}
	e.emit(Event{Name: EventRoundEnd})
	if r.GameOver {
		e.setPhase(table.PhasePostgame)
	} else {
		e.setPhase(table.PhaseStart)
	}
	return nil
}

func (e *Engine) replaceShoe(r *round) {
	left := e.Table.Shoe.Remaining()
	e.Table.Shoe.Replace()
	r.ShoeReplaced = true
	e.log.Info("shoe replaced", "table", e.Table.ID, "discarded", left)
	e.emit(Event{Name: EventShoeReplaced, Amount: left})
}
