package player

import (
	"errors"
	"math"

	"CasinoBlackjack/internal/game/cards"
	"CasinoBlackjack/internal/game/hand"
)

var (
	ErrCannotSplit  = errors.New("player: hand cannot be split")
	ErrNegativeBank = errors.New("player: bank went negative")
)

// SlotState tracks one bet slot (regular, split, insurance) through a round.
type SlotState string

const (
	SlotNone    SlotState = "none"
	SlotPlaced  SlotState = "placed"
	SlotWon     SlotState = "won"
	SlotLost    SlotState = "lost"
	SlotTied    SlotState = "tied"
	SlotForfeit SlotState = "forfeit"
)

// Player is one seat at the table: up to two hands and three bets against a single bank.
type Player struct {
	Name string `json:"name"`
	Bank int    `json:"bank"`

	Hand      hand.Hand `json:"hand"`
	SplitHand hand.Hand `json:"splitHand"`
	SplitFlag bool      `json:"splitFlag"`
	RaiseBet  bool      `json:"raiseBet"`

	Bet       int `json:"bet"`
	SplitBet  int `json:"splitBet"`
	Insurance int `json:"insurance"`

	RegSlot   SlotState `json:"regSlot"`
	SplitSlot SlotState `json:"splitSlot"`
	InsSlot   SlotState `json:"insSlot"`
}

func New(name string, bank int) *Player {
	return &Player{
		Name:      name,
		Bank:      bank,
		RegSlot:   SlotNone,
		SplitSlot: SlotNone,
		InsSlot:   SlotNone,
	}
}

func (p *Player) AddCardToHand(c cards.Card) hand.Result {
	return p.Hand.Add(c, !p.SplitFlag)
}

// AddCardToSplit never reports blackjack; a split 21 is an ordinary 21.
func (p *Player) AddCardToSplit(c cards.Card) hand.Result {
	return p.SplitHand.Add(c, false)
}

func (p *Player) TotalBets() int {
	return p.Bet + p.SplitBet + p.Insurance
}

// LiveStake reports whether any bet of this round is still unsettled.
func (p *Player) LiveStake() bool {
	return p.Bet > 0 || p.Insurance > 0 || (p.SplitFlag && p.SplitBet > 0)
}

func (p *Player) SplitCheck() bool {
	return !p.SplitFlag && p.Hand.Len() == 2 && p.Hand.Cards[0].Rank == p.Hand.Cards[1].Rank
}

// SplitPair moves the second card into a new split hand.
func (p *Player) SplitPair() error {
	if !p.SplitCheck() {
		return ErrCannotSplit
	}
	second := p.Hand.Cards[1]
	p.Hand.Cards = p.Hand.Cards[:1]
	p.Hand.Rescore()
	p.SplitHand.Reset()
	p.SplitHand.Cards = append(p.SplitHand.Cards, second)
	p.SplitHand.Rescore()
	p.SplitFlag = true
	return nil
}

// Blackjack pays floor(bet * multiplier), clears the regular hand and returns the winnings.
func (p *Player) Blackjack(multiplier float64) int {
	won := int(math.Floor(float64(p.Bet) * multiplier))
	p.Bank += won
	p.clearReg(SlotWon)
	return won
}

// Win pays the regular bet 1:1 and returns the amount.
func (p *Player) Win() int {
	won := p.Bet
	p.Bank += won
	p.clearReg(SlotWon)
	return won
}

func (p *Player) SplitWin() int {
	won := p.SplitBet
	p.Bank += won
	p.clearSplit(SlotWon)
	return won
}

// RegLoss takes the regular bet and reports whether the bank is still positive.
func (p *Player) RegLoss() bool {
	p.debit(p.Bet)
	p.clearReg(SlotLost)
	return p.Bank > 0
}

func (p *Player) SplitLoss() bool {
	p.debit(p.SplitBet)
	p.clearSplit(SlotLost)
	return p.Bank > 0
}

func (p *Player) Tie() {
	p.clearReg(SlotTied)
}

func (p *Player) SplitTie() {
	p.clearSplit(SlotTied)
}

// Ins settles the insurance bet against the dealer's hold card.
func (p *Player) Ins(dealerBlackjack bool) bool {
	if dealerBlackjack {
		p.Bank += p.Insurance
		p.InsSlot = SlotWon
	} else {
		p.debit(p.Insurance)
		p.InsSlot = SlotLost
	}
	p.Insurance = 0
	return p.Bank > 0
}

// Forfeit drops every unsettled bet without touching the bank.
func (p *Player) Forfeit() {
	for _, s := range []*SlotState{&p.RegSlot, &p.SplitSlot, &p.InsSlot} {
		if *s == SlotPlaced {
			*s = SlotForfeit
		}
	}
	p.Bet, p.SplitBet, p.Insurance = 0, 0, 0
}

func (p *Player) EndRound() {
	p.Hand.Reset()
	p.SplitHand.Reset()
	p.SplitFlag = false
	p.RaiseBet = false
	p.Bet, p.SplitBet, p.Insurance = 0, 0, 0
	p.RegSlot, p.SplitSlot, p.InsSlot = SlotNone, SlotNone, SlotNone
}

func (p *Player) debit(amount int) {
	p.Bank -= amount
	if p.Bank < 0 {
		panic(ErrNegativeBank)
	}
}

func (p *Player) clearReg(s SlotState) {
	p.Hand.Reset()
	p.Bet = 0
	p.RegSlot = s
}

func (p *Player) clearSplit(s SlotState) {
	p.SplitHand.Reset()
	p.SplitBet = 0
	p.SplitSlot = s
}
