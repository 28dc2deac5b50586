package cards

import (
	"errors"
	"math/rand"
)

const (
	Decks    = 6
	DeckSize = 52
	ShoeSize = Decks * DeckSize
	LowWater = 100 // shoe is replaced at end of round below this many cards
)

var ErrEmptyShoe = errors.New("cards: draw from empty shoe")

// Shoe 只负责洗牌与发牌（无规则判断）
type Shoe struct {
	cards []Card
	rnd   *rand.Rand
}

func NewShoe(seed int64) *Shoe {
	s := &Shoe{rnd: rand.New(rand.NewSource(seed))}
	s.Replace()
	return s
}

// NewStackedShoe deals the given cards first, in order. Replace brings it
// back to a regular shuffled shoe.
func NewStackedShoe(seed int64, top ...Card) *Shoe {
	s := &Shoe{rnd: rand.New(rand.NewSource(seed))}
	s.cards = append(make([]Card, 0, len(top)), top...)
	return s
}

// Replace discards whatever is left and loads a fresh shuffled shoe.
func (s *Shoe) Replace() {
	s.cards = makeShoe()
	s.shuffle()
}

func makeShoe() []Card {
	out := make([]Card, 0, ShoeSize)
	for d := 0; d < Decks; d++ {
		for st := Clubs; st <= Spades; st++ {
			for r := Ace; r <= King; r++ {
				out = append(out, Card{Suit: st, Rank: r})
			}
		}
	}
	return out
}

func (s *Shoe) shuffle() {
	s.rnd.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw removes the front card. Running dry is a sequencing bug upstream.
func (s *Shoe) Draw() Card {
	if len(s.cards) == 0 {
		panic(ErrEmptyShoe)
	}
	c := s.cards[0]
	s.cards = s.cards[1:]
	return c
}

func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Low reports whether the shoe must be replaced before the next round.
func (s *Shoe) Low() bool {
	return len(s.cards) < LowWater
}
