package engine

import (
	"context"
	"errors"

	"CasinoBlackjack/internal/game/cards"
	"CasinoBlackjack/internal/game/hand"
	"CasinoBlackjack/internal/game/player"
	"CasinoBlackjack/internal/game/table"
)

var (
	ErrQuit     = errors.New("engine: player quit")
	ErrGameOver = errors.New("engine: game is over")
)

// PromptKind names the decision being asked for.
type PromptKind string

const (
	PromptWithdraw     PromptKind = "withdraw"
	PromptBet          PromptKind = "bet"
	PromptInsure       PromptKind = "insure"
	PromptInsuranceBet PromptKind = "insurance_bet"
	PromptSplit        PromptKind = "split"
	PromptSplitBet     PromptKind = "split_bet"
	PromptDouble       PromptKind = "double"
	PromptHit          PromptKind = "hit"
	PromptReplaceShoe  PromptKind = "replace_shoe"
	PromptSave         PromptKind = "save"
)

const (
	HandReg   = "reg"
	HandSplit = "split"
)

// Prompt is one question put to the front end. Retry carries the code that
// refused the previous answer to the same question.
type Prompt struct {
	Kind   PromptKind       `json:"kind"`
	Seat   string           `json:"seat,omitempty"`
	Player string           `json:"player,omitempty"`
	Hand   string           `json:"hand,omitempty"`
	Min    int              `json:"min,omitempty"`
	Max    int              `json:"max,omitempty"`
	Retry  player.BetResult `json:"retry,omitempty"`
}

// Decider supplies every player decision as a plain value. Returning an
// error (ErrQuit, a context error) abandons the round.
type Decider interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
	Amount(ctx context.Context, p Prompt) (int, error)
}

const (
	EventPhase        = "phase"
	EventCard         = "card"
	EventBet          = "bet"
	EventBlackjack    = "blackjack"
	EventSplit        = "split"
	EventBust         = "bust"
	EventReveal       = "reveal"
	EventInsurance    = "insurance"
	EventSettle       = "settle"
	EventWithdrawn    = "withdrawn"
	EventEliminated   = "eliminated"
	EventShoeReplaced = "shoe_replaced"
	EventHouseBroken  = "house_broken"
	EventHouseWins    = "house_wins"
	EventRoundEnd     = "round_end"
)

// Event is what the engine narrates; View is the table right after it happened.
type Event struct {
	Name   string      `json:"event"`
	Seat   string      `json:"seat,omitempty"`
	Player string      `json:"player,omitempty"`
	Hand   string      `json:"hand,omitempty"`
	Card   *cards.Card `json:"card,omitempty"`
	Result hand.Result `json:"result,omitempty"`
	Amount int         `json:"amount,omitempty"`
	View   table.View  `json:"view"`
}

type Notifier interface {
	Notify(ev Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}
