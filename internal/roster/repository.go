package roster

import "context"

// Repo 定义存档的抽象操作
type Repo interface {
	// Load returns the saved players, ErrNoSavedGame when there are none and
	// ErrCorrupt when the save cannot be trusted.
	Load(ctx context.Context) ([]Record, error)
	// Save replaces the whole saved game. An empty slice clears it.
	Save(ctx context.Context, recs []Record) error
}
