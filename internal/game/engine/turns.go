package engine

import (
	"context"

	"CasinoBlackjack/internal/game/hand"
	"CasinoBlackjack/internal/game/table"
)

// LEFT / MIDDLE / RIGHT: each seat plays its regular hand, then its split hand.
func (e *Engine) turns(ctx context.Context, r *round) error {
	for _, s := range table.Seats {
		if e.Table.Player(s) == nil {
			continue
		}
		e.setPhase(table.TurnPhase(s))
		gone, err := e.playHand(ctx, r, seatHand{seat: s})
		if err != nil {
			return err
		}
		if gone {
			continue
		}
		if e.Table.Player(s).SplitFlag {
			if _, err := e.playHand(ctx, r, seatHand{seat: s, split: true}); err != nil {
				return err
			}
		}
	}
	return nil
}

// playHand runs the hit/stand loop. It reports true when the bust cost the
// seat its place at the table.
func (e *Engine) playHand(ctx context.Context, r *round, h seatHand) (bool, error) {
	t := e.Table
	p := t.Player(h.seat)
	for t.Result(h.key()) == hand.Playable {
		pr := e.seatPrompt(PromptHit, h.seat)
		pr.Hand = h.name()
		hit, err := e.decider.Confirm(ctx, pr)
		if err != nil {
			return false, err
		}
		if !hit {
			return false, nil
		}

		c := e.draw()
		var res hand.Result
		if h.split {
			res = p.AddCardToSplit(c)
		} else {
			res = p.AddCardToHand(c)
		}
		t.SetResult(h.key(), res)
		e.emit(Event{Name: EventCard, Seat: h.seat.String(), Hand: h.name(), Card: &c, Result: res})
		if res != hand.Bust {
			continue
		}

		lost, solvent := e.loseHand(r, h)
		e.log.Info("bust", "seat", h.seat, "player", p.Name, "hand", h.name(), "lost", lost)
		e.emit(Event{Name: EventBust, Seat: h.seat.String(), Player: p.Name, Hand: h.name(), Amount: lost, Result: hand.Bust})
		if !solvent && !p.LiveStake() {
			e.eliminate(r, h.seat, "bank exhausted")
			return true, nil
		}
	}
	return false, nil
}

// loseHand takes the hand's bet for the house and reports the amount and
// whether the seat still has money.
func (e *Engine) loseHand(r *round, h seatHand) (int, bool) {
	p := e.Table.Player(h.seat)
	if h.split {
		lost := p.SplitBet
		r.dealerWon += lost
		return lost, p.SplitLoss()
	}
	lost := p.Bet
	r.dealerWon += lost
	return lost, p.RegLoss()
}
