package cards

import (
	"errors"
	"testing"
	"time"
)

// ✅ 测试牌靴初始化：6 副牌，每种牌恰好 6 张
func TestNewShoe(t *testing.T) {
	s := NewShoe(time.Now().UnixNano())

	if s.Remaining() != ShoeSize {
		t.Fatalf("expected %d cards, got %d", ShoeSize, s.Remaining())
	}

	counts := make(map[Card]int)
	for _, c := range s.cards {
		counts[c]++
	}
	if len(counts) != DeckSize {
		t.Fatalf("expected %d distinct cards, got %d", DeckSize, len(counts))
	}
	for c, n := range counts {
		if n != Decks {
			t.Fatalf("card %s appears %d times, want %d", c, n, Decks)
		}
	}
}

// ✅ 测试洗牌效果（概率性验证）
func TestShuffleSeeded(t *testing.T) {
	s1 := NewShoe(42)
	s2 := NewShoe(42)
	for i := range s1.cards {
		if s1.cards[i] != s2.cards[i] {
			t.Fatalf("expected identical shoes for same seed")
		}
	}

	s3 := NewShoe(99)
	diff := false
	for i := range s1.cards {
		if s1.cards[i] != s3.cards[i] {
			diff = true
			break
		}
	}
	if !diff {
		t.Fatalf("expected shoe with different seed to differ")
	}
}

func TestDrawFromFront(t *testing.T) {
	top := MustParse("AS", "KD", "7H")
	s := NewStackedShoe(1, top...)

	for i, want := range top {
		if got := s.Draw(); got != want {
			t.Fatalf("draw %d: got %s want %s", i, got, want)
		}
	}
	if s.Remaining() != 0 {
		t.Fatalf("expected empty shoe, got %d", s.Remaining())
	}
}

func TestDrawEmptyPanics(t *testing.T) {
	s := NewStackedShoe(1)
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrEmptyShoe) {
			t.Fatalf("expected ErrEmptyShoe panic, got %v", r)
		}
	}()
	s.Draw()
}

// ✅ 抽 n 张后替换，总是回到 312 张
func TestReplaceIndependentOfDraws(t *testing.T) {
	for _, n := range []int{0, 1, 57, 212, ShoeSize} {
		s := NewShoe(int64(n))
		for i := 0; i < n; i++ {
			s.Draw()
		}
		if s.Remaining() != ShoeSize-n {
			t.Fatalf("after %d draws expected %d, got %d", n, ShoeSize-n, s.Remaining())
		}
		s.Replace()
		if s.Remaining() != ShoeSize {
			t.Fatalf("after replace expected %d, got %d", ShoeSize, s.Remaining())
		}
	}
}

func TestLowWater(t *testing.T) {
	s := NewShoe(5)
	for s.Remaining() > LowWater {
		s.Draw()
	}
	if s.Low() {
		t.Fatalf("exactly %d cards should not be low", LowWater)
	}
	s.Draw()
	if !s.Low() {
		t.Fatalf("%d cards should be low", s.Remaining())
	}
}
