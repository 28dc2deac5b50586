package dealer

import (
	"testing"

	"CasinoBlackjack/internal/game/cards"
	"CasinoBlackjack/internal/game/hand"
)

func dealTo(d *Dealer, cs ...string) hand.Result {
	var r hand.Result
	for _, c := range cards.MustParse(cs...) {
		r = d.AddCardToHand(c)
	}
	return r
}

// ✅ 第二张牌为明牌
func TestVisibleCardIsSecond(t *testing.T) {
	d := New("Frank", 0)
	if d.Bank != DefaultBank {
		t.Fatalf("expected default bank %d, got %d", DefaultBank, d.Bank)
	}

	dealTo(d, "9C")
	if len(d.Visible) != 0 || d.BlackjackFlag {
		t.Fatalf("nothing should be visible after one card")
	}
	dealTo(d, "KD")
	if len(d.Visible) != 1 || d.Visible[0].String() != "K♦" {
		t.Fatalf("expected K♦ visible, got %v", d.Visible)
	}
	if d.VisibleScore.Soft != 10 {
		t.Fatalf("expected visible score 10, got %d", d.VisibleScore.Soft)
	}
	if !d.BlackjackFlag {
		t.Fatalf("ten-valued up card should allow insurance")
	}
}

func TestBlackjackFlag(t *testing.T) {
	cases := map[string]bool{"AS": true, "10H": true, "QC": true, "9D": false, "2S": false}
	for up, want := range cases {
		d := New("Frank", 1000)
		dealTo(d, "5C", up)
		if d.BlackjackFlag != want {
			t.Fatalf("up card %s: expected flag %v", up, want)
		}
	}
}

func TestHasBlackjack(t *testing.T) {
	d := New("Frank", 1000)
	if r := dealTo(d, "KC", "AS"); r != hand.Blackjack {
		t.Fatalf("expected blackjack, got %s", r)
	}
	if !d.HasBlackjack() {
		t.Fatalf("dealer should hold blackjack")
	}
}

func TestWonLost(t *testing.T) {
	d := New("Frank", 100)
	d.Won(50)
	if d.Bank != 150 {
		t.Fatalf("expected 150, got %d", d.Bank)
	}
	if !d.Lost(149) {
		t.Fatalf("bank 1 should still be solvent")
	}
	if d.Lost(1) {
		t.Fatalf("bank 0 should break the house")
	}
}

func TestMustStand(t *testing.T) {
	cases := []struct {
		name       string
		hand       []string
		contenders []int
		want       bool
	}{
		{"hard 17", []string{"10C", "7D"}, []int{20}, true},
		{"hard 21", []string{"10C", "5D", "6H"}, nil, true},
		{"hard 12 draws", []string{"10C", "2D"}, []int{18}, false},
		// soft 18 (hard 8) against a 17 standing hand
		{"soft 18 beats 17", []string{"AC", "5D", "2H"}, []int{17, 12}, true},
		// same dealer hand, every contender below 17
		{"soft 18 no contenders", []string{"AC", "5D", "2H"}, []int{16, 12}, false},
		{"soft 18 vs 19", []string{"AC", "5D", "2H"}, []int{19, 20}, false},
		{"soft 18 tie", []string{"AC", "5D", "2H"}, []int{18}, false},
		{"soft 21", []string{"AC", "5D", "5H"}, []int{12}, true},
		{"soft 17 vs 17", []string{"AC", "6D"}, []int{17}, false},
	}
	for _, tc := range cases {
		d := New("Frank", 1000)
		dealTo(d, tc.hand...)
		if got := d.MustStand(tc.contenders); got != tc.want {
			t.Fatalf("%s: expected %v, got %v (score %+v)", tc.name, tc.want, got, d.Hand.Score)
		}
	}
}

func TestEndRound(t *testing.T) {
	d := New("Frank", 500)
	dealTo(d, "AS", "KD")
	d.Reveal()
	d.EndRound()
	if !d.Hand.Empty() || d.Visible != nil || d.BlackjackFlag || d.Revealed {
		t.Fatalf("round state should be cleared")
	}
	if d.Bank != 500 {
		t.Fatalf("bank should persist")
	}
}
