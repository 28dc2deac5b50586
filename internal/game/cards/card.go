package cards

import (
	"fmt"
	"strconv"
	"strings"
)

type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitSymbols = []string{"♣", "♦", "♥", "♠"}
var suitLetters = []string{"C", "D", "H", "S"}

type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// Card (suit 0-3, rank 1-13)
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Value is the scoring value with every ace counted as one.
func (c Card) Value() int {
	if c.Rank >= 10 {
		return 10
	}
	return int(c.Rank)
}

func (c Card) String() string {
	return fmtCard(c)
}

func fmtCard(c Card) string {
	ranks := map[Rank]string{
		Ace:   "A",
		Jack:  "J",
		Queen: "Q",
		King:  "K",
	}
	rankStr, ok := ranks[c.Rank]
	if !ok {
		rankStr = strconv.Itoa(int(c.Rank))
	}
	suitStr := "?"
	if c.Suit >= 0 && int(c.Suit) < len(suitSymbols) {
		suitStr = suitSymbols[c.Suit]
	}
	return rankStr + suitStr
}

// ParseCard reads the short form used in fixtures and logs, e.g. "AS", "10D", "qh".
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	rankPart, suitPart := s[:len(s)-1], s[len(s)-1:]

	suit := -1
	for i, l := range suitLetters {
		if l == suitPart {
			suit = i
		}
	}
	if suit < 0 {
		return Card{}, fmt.Errorf("invalid suit in %q", s)
	}

	var rank Rank
	switch rankPart {
	case "A":
		rank = Ace
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		n, err := strconv.Atoi(rankPart)
		if err != nil || n < 2 || n > 10 {
			return Card{}, fmt.Errorf("invalid rank in %q", s)
		}
		rank = Rank(n)
	}
	return Card{Suit: Suit(suit), Rank: rank}, nil
}

// MustParse is ParseCard for literals; it panics on bad input.
func MustParse(ss ...string) []Card {
	out := make([]Card, 0, len(ss))
	for _, s := range ss {
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}
