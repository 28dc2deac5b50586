package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Limits are the table's minimum and maximum ante. Max 0 means no maximum.
type Limits struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Payout is the blackjack payout ratio, kept both as printed ("3:2") and as
// the multiplier applied to the bet.
type Payout struct {
	Ratio      string  `json:"ratio"`
	Multiplier float64 `json:"multiplier"`
}

var ThreeToTwo = Payout{Ratio: "3:2", Multiplier: 1.5}

// ParsePayout reads "a:b". The multiplier is rounded to two places the way
// it is printed on the felt, so 7:3 pays 2.33.
func ParsePayout(ratio string) (Payout, error) {
	parts := strings.SplitN(strings.TrimSpace(ratio), ":", 2)
	if len(parts) != 2 {
		return Payout{}, fmt.Errorf("table: bad payout ratio %q", ratio)
	}
	a, err1 := strconv.Atoi(parts[0])
	b, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || a <= 0 || b <= 0 {
		return Payout{}, fmt.Errorf("table: bad payout ratio %q", ratio)
	}
	m := math.Round(float64(a)/float64(b)*100) / 100
	return Payout{Ratio: fmt.Sprintf("%d:%d", a, b), Multiplier: m}, nil
}

// SurvivalRounds is how many losing rounds a bank lasts betting the minimum.
func SurvivalRounds(bank, min int) int {
	if min <= 0 {
		return 0
	}
	return bank / min
}
