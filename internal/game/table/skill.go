package table

import "fmt"

// Skill is a player's tier. It only ever moves up.
type Skill string

const (
	Starter Skill = "starter"
	Normal  Skill = "normal"
	Special Skill = "special"
	High    Skill = "high"
)

var Skills = []Skill{Starter, Normal, Special, High}

// rounds a player must survive at a tier before moving to the next one
var promoteAfter = map[Skill]int{
	Starter: 50,
	Normal:  75,
	Special: 100,
}

func ParseSkill(s string) (Skill, error) {
	for _, sk := range Skills {
		if string(sk) == s {
			return sk, nil
		}
	}
	return "", fmt.Errorf("table: unknown skill %q", s)
}

// Level orders tiers, starter being 0. Unknown tiers are -1.
func (s Skill) Level() int {
	for i, sk := range Skills {
		if sk == s {
			return i
		}
	}
	return -1
}

// Promote moves one tier up when rounds reaches the current tier's threshold.
func (s Skill) Promote(rounds int) Skill {
	need, ok := promoteAfter[s]
	if !ok || rounds < need {
		return s
	}
	return Skills[s.Level()+1]
}
