package dealer

import (
	"CasinoBlackjack/internal/game/cards"
	"CasinoBlackjack/internal/game/hand"
)

const DefaultBank = 100000

// Dealer 庄家：一手牌 + 庄家资金，没有下注概念
type Dealer struct {
	Name string `json:"name"`
	Bank int    `json:"bank"`

	Hand          hand.Hand    `json:"hand"`
	Visible       []cards.Card `json:"visible"`
	VisibleScore  cards.Score  `json:"visibleScore"`
	BlackjackFlag bool         `json:"blackjackFlag"`
	Revealed      bool         `json:"revealed"`
}

func New(name string, bank int) *Dealer {
	if bank <= 0 {
		bank = DefaultBank
	}
	return &Dealer{Name: name, Bank: bank}
}

// AddCardToHand deals to the house. The second card is the face-up card and
// decides whether insurance can be offered.
func (d *Dealer) AddCardToHand(c cards.Card) hand.Result {
	r := d.Hand.Add(c, true)
	if d.Hand.Len() == 2 {
		d.Visible = []cards.Card{c}
		d.VisibleScore = cards.ScoreCards(d.Visible)
		v := c.Value()
		d.BlackjackFlag = v == 1 || v == 10
	}
	return r
}

func (d *Dealer) HasBlackjack() bool {
	return cards.IsBlackjack(d.Hand.Cards)
}

func (d *Dealer) Reveal() {
	d.Revealed = true
}

// Won credits the house with the round's player losses.
func (d *Dealer) Won(amount int) {
	d.Bank += amount
}

// Lost pays out the round's player wins; false means the house is broken.
func (d *Dealer) Lost(amount int) bool {
	d.Bank -= amount
	return d.Bank > 0
}

// MustStand is the forced-play stand test. contenders are the soft scores of
// player hands still in play; only those at 17 or better set the score the
// house has to beat.
func (d *Dealer) MustStand(contenders []int) bool {
	s := d.Hand.Score
	switch {
	case s.Hard > 21:
		return true
	case s.Hard >= 17:
		return true
	case s.Soft == 21:
		return true
	}
	min, ok := minScore(contenders)
	return ok && s.Soft > min && s.Soft >= 17
}

func minScore(contenders []int) (int, bool) {
	min, ok := 0, false
	for _, c := range contenders {
		if c < 17 {
			continue
		}
		if !ok || c < min {
			min, ok = c, true
		}
	}
	return min, ok
}

// Busted reports a hard total over 21.
func (d *Dealer) Busted() bool {
	return d.Hand.Score.Hard > 21
}

func (d *Dealer) EndRound() {
	d.Hand.Reset()
	d.Visible = nil
	d.VisibleScore = cards.Score{}
	d.BlackjackFlag = false
	d.Revealed = false
}
