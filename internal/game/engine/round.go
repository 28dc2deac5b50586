package engine

import (
	"context"

	"CasinoBlackjack/internal/game/hand"
	"CasinoBlackjack/internal/game/player"
	"CasinoBlackjack/internal/game/table"
)

// START: withdrawals, then drop anyone who cannot cover the minimum.
func (e *Engine) start(ctx context.Context, r *round) error {
	e.setPhase(table.PhaseStart)
	for _, s := range e.Table.Occupied() {
		leave, err := e.decider.Confirm(ctx, e.seatPrompt(PromptWithdraw, s))
		if err != nil {
			return err
		}
		if !leave {
			continue
		}
		p := e.Table.Remove(s)
		r.Withdrawn = append(r.Withdrawn, p)
		e.log.Info("player withdrew", "seat", s, "player", p.Name, "bank", p.Bank)
		e.emit(Event{Name: EventWithdrawn, Seat: s.String(), Player: p.Name, Amount: p.Bank})
	}
	for _, s := range e.Table.Occupied() {
		if e.Table.Player(s).Bank < e.Table.Limits.Min {
			e.eliminate(r, s, "cannot cover table minimum")
		}
	}
	return nil
}

// ANTE
func (e *Engine) ante(ctx context.Context, r *round) error {
	e.setPhase(table.PhaseAnte)
	lim := e.Table.Limits
	for _, s := range e.Table.Occupied() {
		p := e.Table.Player(s)
		amount, err := e.collect(ctx, e.seatPrompt(PromptBet, s), func(a int) player.BetResult {
			return p.UpdateBet(a, lim.Min, lim.Max)
		})
		if err != nil {
			return err
		}
		e.emit(Event{Name: EventBet, Seat: s.String(), Player: p.Name, Hand: HandReg, Amount: amount})
	}
	return nil
}

// DEAL: two passes, seats then dealer. Naturals are paid straight away.
func (e *Engine) deal(ctx context.Context, r *round) error {
	e.setPhase(table.PhaseDeal)
	t := e.Table
	for pass := 0; pass < 2; pass++ {
		for _, s := range t.Occupied() {
			c := e.draw()
			t.SetResult(table.RegKey(s), t.Player(s).AddCardToHand(c))
			e.emit(Event{Name: EventCard, Seat: s.String(), Hand: HandReg, Card: &c, Result: t.Result(table.RegKey(s))})
		}
		c := e.draw()
		t.SetResult(table.DealerKey, t.Dealer.AddCardToHand(c))
		ev := Event{Name: EventCard, Seat: "dealer", Hand: HandReg}
		if pass == 1 {
			ev.Card = &c
		}
		e.emit(ev)
	}

	for _, s := range t.Occupied() {
		if t.Result(table.RegKey(s)) != hand.Blackjack {
			continue
		}
		p := t.Player(s)
		won := p.Blackjack(t.Payout.Multiplier)
		e.log.Info("blackjack", "seat", s, "player", p.Name, "paid", won, "payout", t.Payout.Ratio)
		e.emit(Event{Name: EventBlackjack, Seat: s.String(), Player: p.Name, Hand: HandReg, Amount: won, Result: hand.Blackjack})
		if !t.Dealer.Lost(won) {
			r.HouseBroken = true
		}
	}
	if r.HouseBroken {
		e.houseBroken(r)
	}
	return nil
}

// INSURANCE: only when the up card is an ace or ten-value.
func (e *Engine) insurance(ctx context.Context, r *round) error {
	e.setPhase(table.PhaseInsurance)
	t := e.Table
	if !t.Dealer.BlackjackFlag {
		return nil
	}
	lim := t.Limits
	for _, s := range t.Occupied() {
		p := t.Player(s)
		if p.TotalBets()+lim.Min >= p.Bank {
			continue
		}
		yes, err := e.decider.Confirm(ctx, e.seatPrompt(PromptInsure, s))
		if err != nil {
			return err
		}
		if !yes {
			continue
		}
		amount, err := e.collect(ctx, e.seatPrompt(PromptInsuranceBet, s), func(a int) player.BetResult {
			return p.UpdateIns(a, lim.Min, lim.Max)
		})
		if err != nil {
			return err
		}
		e.emit(Event{Name: EventInsurance, Seat: s.String(), Player: p.Name, Amount: amount})
	}
	return nil
}

// SPLIT
func (e *Engine) split(ctx context.Context, r *round) error {
	e.setPhase(table.PhaseSplit)
	t := e.Table
	lim := t.Limits
	for _, s := range t.Occupied() {
		p := t.Player(s)
		if t.Result(table.RegKey(s)) != hand.Playable || !p.SplitCheck() || p.TotalBets()+lim.Min >= p.Bank {
			continue
		}
		yes, err := e.decider.Confirm(ctx, e.seatPrompt(PromptSplit, s))
		if err != nil {
			return err
		}
		if !yes {
			continue
		}
		if err := p.SplitPair(); err != nil {
			return err
		}
		amount, err := e.collect(ctx, e.seatPrompt(PromptSplitBet, s), func(a int) player.BetResult {
			return p.UpdateSplitBet(a, lim.Min, lim.Max)
		})
		if err != nil {
			return err
		}
		e.emit(Event{Name: EventSplit, Seat: s.String(), Player: p.Name, Hand: HandSplit, Amount: amount})

		c := e.draw()
		t.SetResult(table.RegKey(s), p.AddCardToHand(c))
		e.emit(Event{Name: EventCard, Seat: s.String(), Hand: HandReg, Card: &c, Result: t.Result(table.RegKey(s))})
		c = e.draw()
		t.SetResult(table.SplitKey(s), p.AddCardToSplit(c))
		e.emit(Event{Name: EventCard, Seat: s.String(), Hand: HandSplit, Card: &c, Result: t.Result(table.SplitKey(s))})
	}
	return nil
}

// RAISE: double down on any live hand, capped at the hand's bet. Zero declines.
func (e *Engine) raise(ctx context.Context, r *round) error {
	e.setPhase(table.PhaseRaise)
	t := e.Table
	for _, s := range t.Occupied() {
		p := t.Player(s)
		for _, h := range e.liveHands(s) {
			bet, update := p.Bet, p.UpdateBet
			if h.split {
				bet, update = p.SplitBet, p.UpdateSplitBet
			}
			pr := e.seatPrompt(PromptDouble, s)
			pr.Hand, pr.Min, pr.Max = h.name(), 0, bet
			for {
				amount, err := e.decider.Amount(ctx, pr)
				if err != nil {
					return err
				}
				if amount == 0 {
					p.RaiseBet = true
					break
				}
				res := update(amount, 0, bet)
				if res == player.BetSuccess {
					e.log.Info("double down", "seat", s, "player", p.Name, "hand", h.name(), "amount", amount)
					e.emit(Event{Name: EventBet, Seat: s.String(), Player: p.Name, Hand: h.name(), Amount: amount})
					break
				}
				pr.Retry = res
			}
		}
	}
	return nil
}

// seatHand addresses one of a seat's two hands.
type seatHand struct {
	seat  table.Seat
	split bool
}

func (h seatHand) key() string {
	if h.split {
		return table.SplitKey(h.seat)
	}
	return table.RegKey(h.seat)
}

func (h seatHand) name() string {
	if h.split {
		return HandSplit
	}
	return HandReg
}

// liveHands are the seat's hands still marked playable, regular first.
func (e *Engine) liveHands(s table.Seat) []seatHand {
	out := make([]seatHand, 0, 2)
	for _, h := range []seatHand{{seat: s}, {seat: s, split: true}} {
		if e.Table.Result(h.key()) == hand.Playable {
			out = append(out, h)
		}
	}
	return out
}

func (e *Engine) allLiveHands() []seatHand {
	var out []seatHand
	for _, s := range e.Table.Occupied() {
		out = append(out, e.liveHands(s)...)
	}
	return out
}
