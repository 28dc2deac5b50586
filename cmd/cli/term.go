package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"CasinoBlackjack/internal/game/engine"
	"CasinoBlackjack/internal/game/hand"
	"CasinoBlackjack/internal/game/player"
	"CasinoBlackjack/internal/game/table"

	"github.com/pterm/pterm"
)

const (
	optYes  = "Yes"
	optNo   = "No"
	optQuit = "Quit"
)

// termDecider asks every question on the terminal. Any prompt can quit.
type termDecider struct{}

func question(p engine.Prompt) string {
	who := pterm.LightCyan(p.Player)
	switch p.Kind {
	case engine.PromptWithdraw:
		return fmt.Sprintf("%s, leave the table?", who)
	case engine.PromptBet:
		return fmt.Sprintf("%s, your ante (%s)", who, limits(p))
	case engine.PromptInsure:
		return fmt.Sprintf("%s, dealer may have blackjack. Take insurance?", who)
	case engine.PromptInsuranceBet:
		return fmt.Sprintf("%s, insurance bet (%s)", who, limits(p))
	case engine.PromptSplit:
		return fmt.Sprintf("%s, split your pair?", who)
	case engine.PromptSplitBet:
		return fmt.Sprintf("%s, bet on the split hand (%s)", who, limits(p))
	case engine.PromptDouble:
		return fmt.Sprintf("%s, raise your %s bet by up to the same amount (0 to skip)", who, p.Hand)
	case engine.PromptHit:
		return fmt.Sprintf("%s, hit your %s hand?", who, p.Hand)
	case engine.PromptReplaceShoe:
		return "Replace the shoe before the next round?"
	case engine.PromptSave:
		return "Save the game before leaving?"
	}
	return string(p.Kind)
}

func limits(p engine.Prompt) string {
	if p.Max == 0 {
		return fmt.Sprintf("min %d", p.Min)
	}
	return fmt.Sprintf("%d-%d", p.Min, p.Max)
}

func retryReason(r player.BetResult) string {
	switch r {
	case player.BetMin:
		return "below the table minimum"
	case player.BetMax:
		return "above the table maximum"
	case player.BetSize:
		return "a raise cannot be negative or more than the bet"
	case player.BetBust:
		return "not enough in the bank"
	case player.BetExists:
		return "already placed"
	}
	return string(r)
}

func (termDecider) Confirm(ctx context.Context, p engine.Prompt) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.Kind == engine.PromptSave {
		return pterm.DefaultInteractiveConfirm.WithDefaultText(question(p)).WithDefaultValue(true).Show()
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText(question(p)).
		WithOptions([]string{optNo, optYes, optQuit}).
		Show()
	if err != nil {
		return false, err
	}
	switch choice {
	case optYes:
		return true, nil
	case optQuit:
		return false, engine.ErrQuit
	}
	return false, nil
}

func (termDecider) Amount(ctx context.Context, p engine.Prompt) (int, error) {
	if p.Retry != "" {
		pterm.Error.Printfln("Bet refused: %s", retryReason(p.Retry))
	}
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		in, err := pterm.DefaultInteractiveTextInput.WithDefaultText(question(p) + " [q quits]").Show()
		if err != nil {
			return 0, err
		}
		in = strings.TrimSpace(in)
		if strings.EqualFold(in, "q") {
			return 0, engine.ErrQuit
		}
		if in == "" && p.Kind == engine.PromptDouble {
			return 0, nil
		}
		n, err := strconv.Atoi(in)
		if err != nil {
			pterm.Error.Printfln("%q is not a whole number", in)
			continue
		}
		return n, nil
	}
}

// termNotifier narrates the round.
type termNotifier struct{}

func (termNotifier) Notify(ev engine.Event) {
	who := pterm.LightCyan(ev.Player)
	switch ev.Name {
	case engine.EventPhase:
		switch ev.View.Phase {
		case table.PhaseAnte, table.PhaseDealer, table.PhaseLeft, table.PhaseMiddle, table.PhaseRight:
			pterm.DefaultSection.WithLevel(2).Println(strings.ToUpper(string(ev.View.Phase)))
		}
	case engine.EventCard:
		if ev.Card == nil {
			pterm.Printfln("  %s takes a card face down", ev.Seat)
			return
		}
		pterm.Printfln("  %s %s draws %s", ev.Seat, ev.Hand, pterm.LightYellow(ev.Card.String()))
	case engine.EventBet:
		pterm.Info.Printfln("%s bets %d on %s", who, ev.Amount, ev.Hand)
	case engine.EventBlackjack:
		pterm.Success.Printfln("%s has blackjack and wins %d", who, ev.Amount)
	case engine.EventSplit:
		pterm.Info.Printfln("%s splits for %d", who, ev.Amount)
	case engine.EventBust:
		pterm.Warning.Printfln("%s busts the %s hand and loses %d", who, ev.Hand, ev.Amount)
	case engine.EventReveal:
		d := ev.View.Dealer
		pterm.Info.Printfln("Dealer %s reveals %v (%d)", d.Name, d.Cards, best(d.Score.Soft, d.Score.Hard))
	case engine.EventInsurance:
		if ev.Result != hand.None {
			pterm.Info.Printfln("%s insurance: %s %d", who, ev.Result, ev.Amount)
		}
	case engine.EventSettle:
		pterm.Printfln("  %s %s: %s %d", who, ev.Hand, ev.Result, ev.Amount)
	case engine.EventWithdrawn:
		pterm.Info.Printfln("%s leaves the table with %d", who, ev.Amount)
	case engine.EventEliminated:
		pterm.Error.Printfln("%s is out of the game", who)
	case engine.EventShoeReplaced:
		pterm.Info.Printfln("New shoe (%d cards discarded)", ev.Amount)
	case engine.EventHouseBroken:
		pterm.Success.Println("The house is broken!")
	case engine.EventHouseWins:
		pterm.Error.Println("The house wins.")
	case engine.EventRoundEnd:
		renderTable(ev.View)
	}
}

func best(soft, hard int) int {
	if soft <= 21 {
		return soft
	}
	return hard
}

func renderTable(v table.View) {
	data := pterm.TableData{{"Seat", "Player", "Bank"}}
	for _, s := range v.Seats {
		data = append(data, []string{s.Seat, s.Name, strconv.Itoa(s.Bank)})
	}
	data = append(data, []string{"dealer", v.Dealer.Name, strconv.Itoa(v.Dealer.Bank)})
	_ = pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}
