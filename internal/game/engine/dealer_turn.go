package engine

import (
	"context"

	"CasinoBlackjack/internal/game/hand"
	"CasinoBlackjack/internal/game/table"
)

// DEALER: reveal, settle insurance, then forced play and settlement.
func (e *Engine) dealerTurn(ctx context.Context, r *round) error {
	t := e.Table
	d := t.Dealer
	e.setPhase(table.PhaseDealer)
	d.Reveal()
	e.emit(Event{Name: EventReveal, Seat: "dealer", Hand: HandReg})

	defer e.settleHouse(r)

	if t.Empty() {
		r.over = true
		return nil
	}

	dealerBJ := d.HasBlackjack()
	for _, s := range t.Occupied() {
		p := t.Player(s)
		if p.Insurance == 0 {
			continue
		}
		amount := p.Insurance
		solvent := p.Ins(dealerBJ)
		if dealerBJ {
			r.dealerLost += amount
		} else {
			r.dealerWon += amount
		}
		e.emit(Event{Name: EventInsurance, Seat: s.String(), Player: p.Name, Amount: amount, Result: insuranceResult(dealerBJ)})
		if !solvent && len(e.liveHands(s)) == 0 {
			e.eliminate(r, s, "lost insurance")
		}
	}

	live := e.allLiveHands()
	switch {
	case dealerBJ:
		t.SetResult(table.DealerKey, hand.Blackjack)
		for _, h := range live {
			e.settle(r, h, hand.Lose)
		}
	case len(live) == 0:
		e.log.Debug("no live hands, dealer stands", "table", t.ID)
	default:
		contenders := make([]int, 0, len(live))
		for _, h := range live {
			contenders = append(contenders, e.softScore(h))
		}
		for !d.MustStand(contenders) {
			c := e.draw()
			t.SetResult(table.DealerKey, d.AddCardToHand(c))
			e.emit(Event{Name: EventCard, Seat: "dealer", Hand: HandReg, Card: &c, Result: t.Result(table.DealerKey)})
		}
		e.log.Info("dealer stands", "table", t.ID, "soft", d.Hand.Score.Soft, "hard", d.Hand.Score.Hard)

		if d.Busted() {
			for _, h := range live {
				e.settle(r, h, hand.Win)
			}
			return nil
		}
		for _, h := range live {
			switch ps := e.softScore(h); {
			case ps < d.Hand.Score.Soft:
				e.settle(r, h, hand.Lose)
			case ps == d.Hand.Score.Soft:
				e.settle(r, h, hand.Tie)
			default:
				e.settle(r, h, hand.Win)
			}
		}
	}
	return nil
}

func (e *Engine) softScore(h seatHand) int {
	p := e.Table.Player(h.seat)
	if h.split {
		return p.SplitHand.Score.Soft
	}
	return p.Hand.Score.Soft
}

// settle pays, pushes or takes one live hand.
func (e *Engine) settle(r *round, h seatHand, res hand.Result) {
	t := e.Table
	p := t.Player(h.seat)
	if p == nil {
		return
	}
	amount := 0
	solvent := true
	switch res {
	case hand.Win:
		if h.split {
			amount = p.SplitWin()
		} else {
			amount = p.Win()
		}
		r.dealerLost += amount
	case hand.Tie:
		if h.split {
			p.SplitTie()
		} else {
			p.Tie()
		}
	case hand.Lose:
		amount, solvent = e.loseHand(r, h)
	}
	t.SetResult(h.key(), res)
	e.log.Info("settle", "seat", h.seat, "player", p.Name, "hand", h.name(), "result", res, "amount", amount)
	e.emit(Event{Name: EventSettle, Seat: h.seat.String(), Player: p.Name, Hand: h.name(), Result: res, Amount: amount})

	if !solvent && len(e.liveHands(h.seat)) == 0 && p.Insurance == 0 {
		e.eliminate(r, h.seat, "bank exhausted")
	}
}

// settleHouse books the round's aggregate against the dealer's bank.
func (e *Engine) settleHouse(r *round) {
	d := e.Table.Dealer
	d.Won(r.dealerWon)
	if !d.Lost(r.dealerLost) {
		r.HouseBroken = true
	}
	e.log.Info("house settled", "table", e.Table.ID, "won", r.dealerWon, "lost", r.dealerLost, "bank", d.Bank)
	r.dealerWon, r.dealerLost = 0, 0
	if r.HouseBroken {
		e.houseBroken(r)
	}
}

func (e *Engine) houseBroken(r *round) {
	r.over = true
	e.log.Warn("house broken", "table", e.Table.ID, "dealer", e.Table.Dealer.Name, "bank", e.Table.Dealer.Bank)
	e.emit(Event{Name: EventHouseBroken, Seat: "dealer", Amount: e.Table.Dealer.Bank})
}

func insuranceResult(dealerBJ bool) hand.Result {
	if dealerBJ {
		return hand.Win
	}
	return hand.Lose
}
