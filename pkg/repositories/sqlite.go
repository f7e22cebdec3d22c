package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and applies the embedded migrations.
// Use ":memory:" for a throwaway database.
func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	migrations, err := readMigrations("sqlite")
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	q := `
	SELECT value FROM kv WHERE key = ?;
	`
	var value string
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", &ErrNotFound{Key: key}
		}
		return "", fmt.Errorf("failed to scan value: %v", err)
	}

	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value string) error {
	q := `
	INSERT OR REPLACE INTO kv (key, value, updated_at)
	VALUES (?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert value: %v", err)
	}

	return nil
}
