package player

import (
	"errors"
	"testing"

	"CasinoBlackjack/internal/game/cards"
	"CasinoBlackjack/internal/game/hand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deal(p *Player, cs ...string) hand.Result {
	var r hand.Result
	for _, c := range cards.MustParse(cs...) {
		r = p.AddCardToHand(c)
	}
	return r
}

func TestUpdateBetPreDeal(t *testing.T) {
	p := New("ann", 100)

	assert.Equal(t, BetMin, p.UpdateBet(5, 10, 200))
	assert.Equal(t, BetMin, p.UpdateBet(-20, 10, 200))
	assert.Equal(t, BetMax, p.UpdateBet(250, 10, 200))
	assert.Equal(t, BetBust, p.UpdateBet(150, 10, 200))
	assert.Equal(t, 0, p.Bet)
	assert.Equal(t, SlotNone, p.RegSlot)

	assert.Equal(t, BetSuccess, p.UpdateBet(40, 10, 200))
	assert.Equal(t, 40, p.Bet)
	assert.Equal(t, SlotPlaced, p.RegSlot)
	assert.False(t, p.RaiseBet)
}

func TestUpdateBetNoMax(t *testing.T) {
	p := New("ann", 100000)
	assert.Equal(t, BetSuccess, p.UpdateBet(90000, 500, 0))
}

func TestDoubleDownCappedAtBet(t *testing.T) {
	p := New("ann", 1000000)
	require.Equal(t, BetSuccess, p.UpdateBet(20, 10, 200))

	// 超过当前注额一律 SIZE，与余额无关
	assert.Equal(t, BetSize, p.UpdateBet(21, 10, 20))
	assert.Equal(t, BetSize, p.UpdateBet(-1, 10, 20))
	assert.Equal(t, 20, p.Bet)

	assert.Equal(t, BetSuccess, p.UpdateBet(20, 10, 20))
	assert.Equal(t, 40, p.Bet)
	assert.True(t, p.RaiseBet)
}

func TestDoubleDownZeroIsNoop(t *testing.T) {
	p := New("ann", 100)
	require.Equal(t, BetSuccess, p.UpdateBet(20, 10, 200))
	assert.Equal(t, BetSuccess, p.UpdateBet(0, 10, 20))
	assert.Equal(t, 20, p.Bet)
}

func TestDoubleDownBust(t *testing.T) {
	p := New("ann", 30)
	require.Equal(t, BetSuccess, p.UpdateBet(20, 10, 200))
	assert.Equal(t, BetBust, p.UpdateBet(20, 10, 20))
	assert.Equal(t, BetSuccess, p.UpdateBet(10, 10, 20))
	assert.Equal(t, 30, p.TotalBets())
}

func TestUpdateInsOncePerRound(t *testing.T) {
	p := New("ann", 100)
	require.Equal(t, BetSuccess, p.UpdateBet(50, 10, 200))

	assert.Equal(t, BetMin, p.UpdateIns(5, 10, 200))
	assert.Equal(t, BetBust, p.UpdateIns(60, 10, 200))
	assert.Equal(t, BetSuccess, p.UpdateIns(25, 10, 200))
	assert.Equal(t, BetExists, p.UpdateIns(10, 10, 200))
	assert.Equal(t, 25, p.Insurance)
	assert.Equal(t, 75, p.TotalBets())
}

func TestBlackjackDetection(t *testing.T) {
	p := New("ann", 100)
	assert.Equal(t, hand.Playable, deal(p, "AS"))
	assert.Equal(t, hand.Blackjack, deal(p, "KD"))
	assert.Equal(t, cards.Score{Soft: 21, Hard: 11}, p.Hand.Score)
}

func TestSplitPair(t *testing.T) {
	p := New("ann", 100)
	deal(p, "8S", "8D")
	require.True(t, p.SplitCheck())
	require.NoError(t, p.SplitPair())

	assert.True(t, p.SplitFlag)
	assert.Equal(t, cards.ScoreCards(cards.MustParse("8S")), p.Hand.Score)
	assert.Equal(t, cards.ScoreCards(cards.MustParse("8D")), p.SplitHand.Score)
	assert.Len(t, p.Hand.Cards, 1)
	assert.Len(t, p.SplitHand.Cards, 1)

	// 分牌后 A+10 只是普通 21
	q := New("bob", 100)
	deal(q, "AS", "AD")
	require.NoError(t, q.SplitPair())
	assert.Equal(t, hand.Playable, q.AddCardToHand(cards.MustParse("KC")[0]))
	assert.Equal(t, hand.Playable, q.AddCardToSplit(cards.MustParse("QH")[0]))
	assert.Equal(t, 21, q.Hand.Score.Soft)
	assert.Equal(t, 21, q.SplitHand.Score.Soft)
}

func TestSplitPairRejected(t *testing.T) {
	p := New("ann", 100)
	deal(p, "8S", "9S")
	assert.False(t, p.SplitCheck())
	assert.True(t, errors.Is(p.SplitPair(), ErrCannotSplit))

	// ranks must match exactly, ten-values are not a pair
	q := New("bob", 100)
	deal(q, "KS", "QS")
	assert.False(t, q.SplitCheck())

	r := New("cat", 100)
	deal(r, "8S", "8D", "2C")
	assert.Error(t, r.SplitPair())

	s := New("dan", 100)
	deal(s, "8S", "8D")
	require.NoError(t, s.SplitPair())
	assert.Error(t, s.SplitPair())
}

func TestBlackjackPayout(t *testing.T) {
	p := New("ann", 100)
	require.Equal(t, BetSuccess, p.UpdateBet(10, 10, 200))
	deal(p, "AS", "KD")

	assert.Equal(t, 15, p.Blackjack(1.5))
	assert.Equal(t, 115, p.Bank)
	assert.True(t, p.Hand.Empty())
	assert.Equal(t, 0, p.Bet)
	assert.Equal(t, SlotWon, p.RegSlot)

	q := New("bob", 100)
	require.Equal(t, BetSuccess, q.UpdateBet(7, 5, 100))
	assert.Equal(t, 16, q.Blackjack(2.33))
}

func TestSettlement(t *testing.T) {
	p := New("ann", 100)
	require.Equal(t, BetSuccess, p.UpdateBet(20, 10, 200))
	deal(p, "8S", "8D")
	require.NoError(t, p.SplitPair())
	require.Equal(t, BetSuccess, p.UpdateSplitBet(30, 10, 200))

	assert.Equal(t, 20, p.Win())
	assert.Equal(t, 120, p.Bank)
	assert.True(t, p.LiveStake())

	assert.True(t, p.SplitLoss())
	assert.Equal(t, 90, p.Bank)
	assert.Equal(t, SlotLost, p.SplitSlot)
	assert.False(t, p.LiveStake())
}

func TestRegLossReportsSolvency(t *testing.T) {
	p := New("ann", 50)
	require.Equal(t, BetSuccess, p.UpdateBet(20, 10, 200))
	assert.True(t, p.RegLoss())
	assert.Equal(t, 30, p.Bank)

	require.Equal(t, BetSuccess, p.UpdateBet(30, 10, 200))
	assert.False(t, p.RegLoss())
	assert.Equal(t, 0, p.Bank)
}

func TestTieKeepsBank(t *testing.T) {
	p := New("ann", 50)
	require.Equal(t, BetSuccess, p.UpdateBet(20, 10, 200))
	p.Tie()
	assert.Equal(t, 50, p.Bank)
	assert.Equal(t, SlotTied, p.RegSlot)
}

func TestIns(t *testing.T) {
	p := New("ann", 100)
	require.Equal(t, BetSuccess, p.UpdateIns(10, 10, 200))
	assert.True(t, p.Ins(true))
	assert.Equal(t, 110, p.Bank)
	assert.Equal(t, 0, p.Insurance)

	q := New("bob", 10)
	require.Equal(t, BetSuccess, q.UpdateIns(10, 10, 200))
	assert.False(t, q.Ins(false))
	assert.Equal(t, 0, q.Bank)
	assert.Equal(t, SlotLost, q.InsSlot)
}

func TestNegativeBankPanics(t *testing.T) {
	p := New("ann", 10)
	p.Bet = 20
	assert.PanicsWithValue(t, ErrNegativeBank, func() { p.RegLoss() })
}

// end_round then a fresh deal: empty hands, zeroed slots, bank and name untouched
func TestEndRoundRoundTrip(t *testing.T) {
	p := New("ann", 100)
	require.Equal(t, BetSuccess, p.UpdateBet(20, 10, 200))
	deal(p, "8S", "8D")
	require.NoError(t, p.SplitPair())
	require.Equal(t, BetSuccess, p.UpdateSplitBet(20, 10, 200))
	require.Equal(t, BetSuccess, p.UpdateIns(10, 10, 200))

	p.EndRound()

	assert.Equal(t, "ann", p.Name)
	assert.Equal(t, 100, p.Bank)
	assert.True(t, p.Hand.Empty())
	assert.True(t, p.SplitHand.Empty())
	assert.Zero(t, p.Bet)
	assert.Zero(t, p.SplitBet)
	assert.Zero(t, p.Insurance)
	assert.False(t, p.SplitFlag)
	assert.False(t, p.RaiseBet)
	assert.Equal(t, SlotNone, p.RegSlot)
}

func TestForfeit(t *testing.T) {
	p := New("ann", 100)
	require.Equal(t, BetSuccess, p.UpdateBet(20, 10, 200))
	p.Forfeit()
	assert.Equal(t, SlotForfeit, p.RegSlot)
	assert.Equal(t, SlotNone, p.InsSlot)
	assert.Equal(t, 100, p.Bank)
	assert.False(t, p.LiveStake())
}
