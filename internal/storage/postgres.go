package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// InitPostgres opens DB with the lib/pq driver and pings it.
func InitPostgres(ctx context.Context, dsn string) error {
	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	DB.SetMaxOpenConns(4)
	DB.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return DB.PingContext(ctx)
}

// Close releases whichever clients were opened.
func Close() {
	if Rdb != nil {
		_ = Rdb.Close()
	}
	if DB != nil {
		_ = DB.Close()
	}
}
