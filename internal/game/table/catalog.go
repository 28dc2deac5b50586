package table

import (
	"math/rand"
	"strings"
)

// DealerSpec describes one house dealer and the table they run.
type DealerSpec struct {
	Name    string   `json:"name"`
	Skill   Skill    `json:"skill"`
	Limits  Limits   `json:"limits"`
	Payouts []string `json:"payouts"`
	BankMin int      `json:"bankMin"`
	BankMax int      `json:"bankMax"`
}

type Catalog struct {
	Dealers []DealerSpec
}

var (
	starterPayouts = []string{"7:3", "9:4", "2:1", "7:4", "5:3", "3:2"}
	normalPayouts  = []string{"2:1", "9:5", "7:4", "8:5", "5:3", "7:5", "4:3", "6:5"}
	specialPayouts = []string{"3:1", "5:2", "2:1", "3:2"}
	highPayouts    = []string{"11:4", "8:3", "5:2", "7:3", "9:4", "2:1"}
)

func DefaultCatalog() Catalog {
	starter := func(name string) DealerSpec {
		return DealerSpec{Name: name, Skill: Starter, Limits: Limits{Min: 5, Max: 100}, Payouts: starterPayouts, BankMin: 50000, BankMax: 75000}
	}
	normal := func(name string) DealerSpec {
		return DealerSpec{Name: name, Skill: Normal, Limits: Limits{Min: 50, Max: 200}, Payouts: normalPayouts, BankMin: 100000, BankMax: 250000}
	}
	special := func(name string) DealerSpec {
		return DealerSpec{Name: name, Skill: Special, Limits: Limits{Min: 250, Max: 1000}, Payouts: specialPayouts, BankMin: 250000, BankMax: 750000}
	}
	high := func(name string) DealerSpec {
		return DealerSpec{Name: name, Skill: High, Limits: Limits{Min: 500, Max: 100000}, Payouts: highPayouts, BankMin: 1000000, BankMax: 3500000}
	}
	return Catalog{Dealers: []DealerSpec{
		starter("Frank"),
		normal("Hannah"), normal("Mike"),
		special("Rayden"), special("Charlie"),
		high("Freddie"), high("James"), high("Angela"),
	}}
}

// Available lists the dealers open to a party: every table at or below the
// best tier among the players.
func (c Catalog) Available(skills ...Skill) []DealerSpec {
	best := -1
	for _, s := range skills {
		if l := s.Level(); l > best {
			best = l
		}
	}
	out := make([]DealerSpec, 0, len(c.Dealers))
	for _, d := range c.Dealers {
		if d.Skill.Level() <= best {
			out = append(out, d)
		}
	}
	return out
}

func (c Catalog) Find(name string) (DealerSpec, bool) {
	for _, d := range c.Dealers {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return DealerSpec{}, false
}

// Config draws this dealer's payout and bank for a new table.
func (d DealerSpec) Config(rnd *rand.Rand) Config {
	p, err := ParsePayout(d.Payouts[rnd.Intn(len(d.Payouts))])
	if err != nil {
		p = ThreeToTwo
	}
	bank := d.BankMin
	if span := (d.BankMax - d.BankMin) / 1000; span > 0 {
		bank += rnd.Intn(span+1) * 1000
	}
	return Config{
		DealerName: d.Name,
		DealerBank: bank,
		Skill:      d.Skill,
		Payout:     p,
		Limits:     d.Limits,
		Seed:       rnd.Int63(),
	}
}
