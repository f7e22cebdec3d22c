package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/snake/pkg/log"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database and applies the embedded migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (*PostgresRepository, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to query database: %v", err)
	}
	log.Info("Connected to %s as %s", database, username)

	migrations, err := readMigrations("postgres")
	if err != nil {
		conn.Close(ctx)
		return nil, err
	}
	for i, migration := range migrations {
		if _, err := conn.Exec(ctx, migration); err != nil {
			conn.Close(ctx)
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) Get(ctx context.Context, key string) (string, error) {
	q := `
	SELECT value FROM kv WHERE key = $1;
	`
	var value string
	if err := r.conn.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &ErrNotFound{Key: key}
		}
		return "", fmt.Errorf("failed to scan value: %v", err)
	}

	return value, nil
}

func (r *PostgresRepository) Set(ctx context.Context, key string, value string) error {
	q := `
	INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now();
	`
	if _, err := r.conn.Exec(ctx, q, key, value); err != nil {
		return fmt.Errorf("failed to upsert value: %v", err)
	}

	return nil
}
