package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"CasinoBlackjack/config"
	"CasinoBlackjack/internal/game/engine"
	"CasinoBlackjack/internal/game/manager"
	"CasinoBlackjack/internal/game/table"
	"CasinoBlackjack/internal/roster"
	"CasinoBlackjack/internal/storage"
	"CasinoBlackjack/internal/utils"

	"github.com/pterm/pterm"
)

func main() {
	if err := config.Load("config/config.yaml"); err != nil {
		pterm.Fatal.Printfln("config: %v", err)
	}
	utils.Init(config.C.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	repo, err := roster.Open(ctx, roster.StoreConfig{
		Kind:          config.C.Game.Store,
		SaveFile:      config.C.Game.SaveFile,
		RedisAddr:     config.C.Redis.Addr,
		RedisPassword: config.C.Redis.Password,
		RedisDB:       config.C.Redis.DB,
		PostgresDSN:   config.C.Database.DSN,
	})
	if err != nil {
		return err
	}
	defer storage.Close()
	svc := roster.NewService(repo)

	pterm.DefaultHeader.WithFullWidth().Println("Casino Blackjack")

	recs, err := seatPlayers(ctx, svc)
	if err != nil {
		return err
	}
	spec, err := pickDealer(recs)
	if err != nil {
		return err
	}

	seed := config.C.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	t, err := manager.NewTable(spec, recs, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	pterm.Info.Printfln("%s deals. Blackjack pays %s, bets %s, house bank %d",
		pterm.LightCyan(t.Dealer.Name), t.Payout.Ratio, limitsText(t.Limits), t.Dealer.Bank)

	s := manager.NewSession(t, recs, termDecider{}, svc, utils.Print, engine.WithNotifier(termNotifier{}))
	sum, err := s.Run(ctx)
	if sum != nil {
		printSummary(sum)
	}
	return err
}

// seatPlayers loads the saved game and offers to add players to empty seats.
func seatPlayers(ctx context.Context, svc *roster.Service) ([]roster.Record, error) {
	recs := svc.Load(ctx)
	if len(recs) > 0 {
		data := pterm.TableData{{"Player", "Bank", "Skill"}}
		for _, r := range recs {
			data = append(data, []string{r.Name, fmt.Sprint(r.Bank), string(r.Skill)})
		}
		pterm.Info.Println("Saved game found")
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	for len(recs) < roster.MaxRecords {
		if len(recs) > 0 {
			more, err := pterm.DefaultInteractiveConfirm.WithDefaultText("Add another player?").WithDefaultValue(false).Show()
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
		}
		name, err := pterm.DefaultInteractiveTextInput.WithDefaultText("New player name").Show()
		if err != nil {
			return nil, err
		}
		created, err := svc.Create(ctx, []string{name})
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		recs = created
		pterm.Success.Printfln("%s joins with %d", strings.TrimSpace(name), roster.StartingBank)
	}
	return recs, nil
}

func pickDealer(recs []roster.Record) (table.DealerSpec, error) {
	skills := make([]table.Skill, 0, len(recs))
	for _, r := range recs {
		skills = append(skills, r.Skill)
	}
	catalog := table.DefaultCatalog()
	avail := catalog.Available(skills...)
	if len(avail) == 0 {
		return table.DealerSpec{}, errors.New("no table open to these players")
	}

	for {
		opts := make([]string, 0, len(avail))
		byOpt := make(map[string]table.DealerSpec, len(avail))
		for _, d := range avail {
			opt := fmt.Sprintf("%s (%s, %s)", d.Name, d.Skill, limitsText(d.Limits))
			opts = append(opts, opt)
			byOpt[opt] = d
		}
		choice, err := pterm.DefaultInteractiveSelect.WithDefaultText("Choose a dealer").WithOptions(opts).Show()
		if err != nil {
			return table.DealerSpec{}, err
		}
		spec, ok := byOpt[choice]
		if !ok {
			pterm.Error.Printfln("unknown dealer %q", choice)
			continue
		}

		low := false
		for _, est := range manager.Survival(spec, recs) {
			if est.Low {
				low = true
				pterm.Warning.Printfln("%s can only cover %d rounds at this table", est.Name, est.Rounds)
			}
		}
		if !low {
			return spec, nil
		}
		sit, err := pterm.DefaultInteractiveConfirm.WithDefaultText("Sit down anyway?").Show()
		if err != nil {
			return table.DealerSpec{}, err
		}
		if sit {
			return spec, nil
		}
	}
}

func limitsText(l table.Limits) string {
	if l.Max == 0 {
		return fmt.Sprintf("%d+", l.Min)
	}
	return fmt.Sprintf("%d-%d", l.Min, l.Max)
}

func printSummary(sum *manager.Summary) {
	var b strings.Builder
	fmt.Fprintf(&b, "Rounds played: %d\n", sum.Rounds)
	switch {
	case sum.HouseBroken:
		fmt.Fprintf(&b, "The house is broken. Top bank: %s\n", sum.Winner)
	case sum.HouseWon:
		b.WriteString("The house won every seat.\n")
	case sum.Quit:
		b.WriteString("Game abandoned.\n")
	}
	for _, r := range sum.Left {
		fmt.Fprintf(&b, "%s leaves with %d (%s)\n", r.Name, r.Bank, r.Skill)
	}
	for _, n := range sum.Eliminated {
		fmt.Fprintf(&b, "%s was eliminated\n", n)
	}
	if sum.Saved {
		b.WriteString("Game saved.\n")
	}
	pterm.DefaultBox.WithTitle(pterm.LightGreen("|GAME OVER|")).WithTitleTopCenter().Println(b.String())
}
