package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"CasinoBlackjack/internal/game/table"
	"CasinoBlackjack/internal/utils"
)

// Service wraps a Repo with the load-modify-save rules of the roster.
type Service struct {
	mu   sync.Mutex
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Load never fails: a missing or corrupt save starts a fresh game.
func (s *Service) Load(ctx context.Context) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load(ctx)
	if err != nil {
		utils.Print.Error("load saved game", "err", err)
		return nil
	}
	return recs
}

// load treats a missing or corrupt save as empty. Any other error is
// returned so callers never overwrite a save they could not read.
func (s *Service) load(ctx context.Context) ([]Record, error) {
	recs, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		return recs, nil
	case errors.Is(err, ErrNoSavedGame):
		utils.Print.Debug("no saved game")
		return nil, nil
	case errors.Is(err, ErrCorrupt):
		utils.Print.Warn("saved game discarded", "err", err)
		return nil, nil
	}
	return nil, err
}

// Save overwrites the saved game with recs.
func (s *Service) Save(ctx context.Context, recs []Record) error {
	if len(recs) > MaxRecords {
		return ErrRosterFull
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Save(ctx, recs)
}

// Create adds starter players with StartingBank next to the saved ones.
func (s *Service) Create(ctx context.Context, names []string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || strings.Contains(n, ",") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, n)
		}
		if indexOf(recs, n) >= 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, n)
		}
		if len(recs) == MaxRecords {
			return nil, ErrRosterFull
		}
		recs = append(recs, Record{Name: n, Bank: StartingBank, Skill: table.Starter})
	}
	if err := s.repo.Save(ctx, recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Update stores bank and skill for rec.Name, appending it when new.
func (s *Service) Update(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	if err != nil {
		return err
	}
	if i := indexOf(recs, rec.Name); i >= 0 {
		recs[i] = rec
	} else {
		if len(recs) == MaxRecords {
			return ErrRosterFull
		}
		recs = append(recs, rec)
	}
	return s.repo.Save(ctx, recs)
}

// Remove drops an eliminated player from the saved game.
func (s *Service) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(recs, name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}
	recs = append(recs[:i], recs[i+1:]...)
	return s.repo.Save(ctx, recs)
}

func indexOf(recs []Record, name string) int {
	for i, r := range recs {
		if strings.EqualFold(r.Name, name) {
			return i
		}
	}
	return -1
}
