package hand

import "CasinoBlackjack/internal/game/cards"

// Result is the per-hand outcome code published in the table results map.
type Result string

const (
	None      Result = ""
	Playable  Result = "playable"
	Blackjack Result = "blackjack"
	Bust      Result = "bust"
	Win       Result = "win"
	Lose      Result = "lose"
	Tie       Result = "tie"
)

// Hand is an ordered run of cards with its cached score.
type Hand struct {
	Cards []cards.Card `json:"cards"`
	Score cards.Score  `json:"score"`
}

// Add appends c and rescores. Blackjack is only reported when natural is set.
func (h *Hand) Add(c cards.Card, natural bool) Result {
	h.Cards = append(h.Cards, c)
	h.Score = cards.ScoreCards(h.Cards)
	switch {
	case h.Score.Hard > 21:
		return Bust
	case natural && cards.IsBlackjack(h.Cards):
		return Blackjack
	default:
		return Playable
	}
}

func (h *Hand) Len() int {
	return len(h.Cards)
}

func (h *Hand) Empty() bool {
	return len(h.Cards) == 0
}

func (h *Hand) Reset() {
	h.Cards = nil
	h.Score = cards.Score{}
}

// Rescore recomputes the score after cards were moved in or out directly.
func (h *Hand) Rescore() {
	h.Score = cards.ScoreCards(h.Cards)
}
