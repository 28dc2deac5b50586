package roster

import (
	"context"
	"sync"
)

type memRepo struct {
	mu   sync.Mutex
	recs []Record
}

func NewMemoryRepo() Repo {
	return &memRepo{}
}

func (m *memRepo) Load(ctx context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.recs) == 0 {
		return nil, ErrNoSavedGame
	}
	return append([]Record(nil), m.recs...), nil
}

func (m *memRepo) Save(ctx context.Context, recs []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append([]Record(nil), recs...)
	return nil
}
