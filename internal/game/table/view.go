package table

import (
	"CasinoBlackjack/internal/game/cards"
	"CasinoBlackjack/internal/game/hand"
)

// View is a read-only snapshot of the table for front ends.
type View struct {
	ID            string                 `json:"id"`
	Phase         Phase                  `json:"phase"`
	Payout        Payout                 `json:"payout"`
	Limits        Limits                 `json:"limits"`
	Seats         []SeatView             `json:"seats"`
	Dealer        DealerView             `json:"dealer"`
	Results       map[string]hand.Result `json:"results"`
	ShoeRemaining int                    `json:"shoeRemaining"`
}

type SeatView struct {
	Seat      string     `json:"seat"`
	Name      string     `json:"name"`
	Bank      int        `json:"bank"`
	Hand      hand.Hand  `json:"hand"`
	SplitHand *hand.Hand `json:"splitHand,omitempty"`
	Bet       int        `json:"bet"`
	SplitBet  int        `json:"splitBet"`
	Insurance int        `json:"insurance"`
}

// DealerView shows only the up card until the hold card is revealed.
type DealerView struct {
	Name     string       `json:"name"`
	Bank     int          `json:"bank"`
	Cards    []cards.Card `json:"cards"`
	Score    cards.Score  `json:"score"`
	Revealed bool         `json:"revealed"`
}

func (t *Table) View() View {
	v := View{
		ID:            t.ID,
		Phase:         t.Phase,
		Payout:        t.Payout,
		Limits:        t.Limits,
		Seats:         make([]SeatView, 0, SeatCount),
		Results:       make(map[string]hand.Result, len(t.Results)),
		ShoeRemaining: t.Shoe.Remaining(),
	}
	for k, r := range t.Results {
		v.Results[k] = r
	}
	for _, s := range t.Occupied() {
		p := t.Seats[s]
		sv := SeatView{
			Seat:      s.String(),
			Name:      p.Name,
			Bank:      p.Bank,
			Hand:      copyHand(p.Hand),
			Bet:       p.Bet,
			SplitBet:  p.SplitBet,
			Insurance: p.Insurance,
		}
		if p.SplitFlag {
			h := copyHand(p.SplitHand)
			sv.SplitHand = &h
		}
		v.Seats = append(v.Seats, sv)
	}

	d := t.Dealer
	v.Dealer = DealerView{Name: d.Name, Bank: d.Bank, Revealed: d.Revealed}
	if d.Revealed {
		v.Dealer.Cards = append([]cards.Card(nil), d.Hand.Cards...)
		v.Dealer.Score = d.Hand.Score
	} else {
		v.Dealer.Cards = append([]cards.Card(nil), d.Visible...)
		v.Dealer.Score = d.VisibleScore
	}
	return v
}

func copyHand(h hand.Hand) hand.Hand {
	return hand.Hand{Cards: append([]cards.Card(nil), h.Cards...), Score: h.Score}
}
