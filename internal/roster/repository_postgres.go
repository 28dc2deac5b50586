package roster

import (
	"context"
	"database/sql"
	"fmt"

	"CasinoBlackjack/internal/game/table"
)

const schema = `
CREATE TABLE IF NOT EXISTS roster (
    seat  SMALLINT PRIMARY KEY,
    name  TEXT     NOT NULL UNIQUE,
    bank  BIGINT   NOT NULL CHECK (bank >= 0),
    skill TEXT     NOT NULL
)`

type postgresRepo struct {
	db *sql.DB
}

// NewPostgresRepo needs a database/sql handle opened with the postgres driver.
func NewPostgresRepo(db *sql.DB) Repo {
	return &postgresRepo{db: db}
}

// Migrate creates the roster table when missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (p *postgresRepo) Load(ctx context.Context) ([]Record, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT name, bank, skill FROM roster ORDER BY seat LIMIT $1`, MaxRecords)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0, MaxRecords)
	for rows.Next() {
		var (
			rec   Record
			skill string
		)
		if err := rows.Scan(&rec.Name, &rec.Bank, &skill); err != nil {
			return nil, err
		}
		sk, err := table.ParseSkill(skill)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		rec.Skill = sk
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoSavedGame
	}
	return out, nil
}

func (p *postgresRepo) Save(ctx context.Context, recs []Record) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roster`); err != nil {
		return err
	}
	for i, rec := range recs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO roster (seat, name, bank, skill) VALUES ($1, $2, $3, $4)`,
			i, rec.Name, rec.Bank, string(rec.Skill),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
