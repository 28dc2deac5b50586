package roster

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
)

type fileRepo struct {
	path string
}

// NewFileRepo keeps the saved game as "name, bank, skill" lines in path.
func NewFileRepo(path string) Repo {
	return &fileRepo{path: path}
}

func (f *fileRepo) Load(ctx context.Context) ([]Record, error) {
	fh, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSavedGame
	}
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Decode(fh)
}

func (f *fileRepo) Save(ctx context.Context, recs []Record) error {
	if len(recs) == 0 {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}

	var buf bytes.Buffer
	if err := Encode(&buf, recs); err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	// 先写临时文件再 rename，避免写一半的存档
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
