package manager

import (
	"math/rand"

	"CasinoBlackjack/internal/game/player"
	"CasinoBlackjack/internal/game/table"
	"CasinoBlackjack/internal/roster"
)

// LowSurvivalRounds 低于该轮数时提醒玩家这张桌子太贵
const LowSurvivalRounds = 20

type SurvivalEstimate struct {
	Name   string `json:"name"`
	Rounds int    `json:"rounds"`
	Low    bool   `json:"low"`
}

// NewTable opens the dealer's table with recs seated left to right.
func NewTable(spec table.DealerSpec, recs []roster.Record, rnd *rand.Rand) (*table.Table, error) {
	players := make([]*player.Player, 0, len(recs))
	for _, r := range recs {
		players = append(players, player.New(r.Name, r.Bank))
	}
	return table.New(spec.Config(rnd), players...)
}

// Survival estimates how long each saved bank lasts at the dealer's minimum.
func Survival(spec table.DealerSpec, recs []roster.Record) []SurvivalEstimate {
	out := make([]SurvivalEstimate, 0, len(recs))
	for _, r := range recs {
		n := table.SurvivalRounds(r.Bank, spec.Limits.Min)
		out = append(out, SurvivalEstimate{Name: r.Name, Rounds: n, Low: n < LowSurvivalRounds})
	}
	return out
}

func skillsOf(recs []roster.Record) []table.Skill {
	out := make([]table.Skill, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Skill)
	}
	return out
}

func unlocked(c table.Catalog, spec table.DealerSpec, recs []roster.Record) bool {
	for _, d := range c.Available(skillsOf(recs)...) {
		if d.Name == spec.Name {
			return true
		}
	}
	return false
}
