package player

// BetResult is returned by every bet update; anything but BetSuccess means re-prompt.
type BetResult string

const (
	BetSuccess BetResult = "success"
	BetMin     BetResult = "min"
	BetMax     BetResult = "max"
	BetSize    BetResult = "size"
	BetBust    BetResult = "bust"
	BetExists  BetResult = "exists"
)

// UpdateBet places the ante (bet == 0, checked against the table limits) or
// raises it (bet > 0, capped at the current bet). A max of 0 means no limit.
func (p *Player) UpdateBet(amount, min, max int) BetResult {
	if r := p.checkBank(p.Bet, amount, min, max); r != BetSuccess {
		return r
	}
	p.Bet += amount
	p.RegSlot = SlotPlaced
	if p.Bet > amount {
		p.RaiseBet = true
	}
	return BetSuccess
}

func (p *Player) UpdateSplitBet(amount, min, max int) BetResult {
	if r := p.checkBank(p.SplitBet, amount, min, max); r != BetSuccess {
		return r
	}
	p.SplitBet += amount
	p.SplitSlot = SlotPlaced
	return BetSuccess
}

// UpdateIns places the insurance bet; only one per round.
func (p *Player) UpdateIns(amount, min, max int) BetResult {
	if p.Insurance > 0 {
		return BetExists
	}
	if r := p.checkBank(0, amount, min, max); r != BetSuccess {
		return r
	}
	p.Insurance = amount
	p.InsSlot = SlotPlaced
	return BetSuccess
}

func (p *Player) checkBank(current, amount, min, max int) BetResult {
	if r := checkLimits(current, amount, min, max); r != BetSuccess {
		return r
	}
	if p.TotalBets()+amount > p.Bank {
		return BetBust
	}
	return BetSuccess
}

func checkLimits(current, amount, min, max int) BetResult {
	if current > 0 {
		if amount < 0 || amount > current {
			return BetSize
		}
		return BetSuccess
	}
	if amount < min || amount <= 0 {
		return BetMin
	}
	if max > 0 && amount > max {
		return BetMax
	}
	return BetSuccess
}
