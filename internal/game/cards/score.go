package cards

// Score holds both readings of a hand. Soft is the best total not above 21
// reachable by counting some aces as eleven, Hard counts every ace as one.
type Score struct {
	Soft int `json:"soft"`
	Hard int `json:"hard"`
}

func ScoreCards(cs []Card) Score {
	hard, aces := 0, 0
	for _, c := range cs {
		hard += c.Value()
		if c.Rank == Ace {
			aces++
		}
	}
	soft := hard
	if hard < 21 {
		for i := 0; i < aces; i++ {
			if soft+10 > 21 {
				break
			}
			soft += 10
		}
	}
	return Score{Soft: soft, Hard: hard}
}

// IsBlackjack reports a natural: exactly two cards, hard 11, soft 21.
func IsBlackjack(cs []Card) bool {
	if len(cs) != 2 {
		return false
	}
	s := ScoreCards(cs)
	return s.Hard == 11 && s.Soft == 21
}
