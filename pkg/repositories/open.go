package repositories

import (
	"context"
	"fmt"
	"net/url"
)

// Open creates a Store from a connection string.
// Supported schemes are sqlite://<path>, postgresql://... and memory://.
func Open(ctx context.Context, connStr string) (Store, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		// sqlite://snake.db keeps the file name in the host, sqlite:///var/lib/snake.db in the path
		repository, err := NewSQLiteRepository(ctx, u.Host+u.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite repository: %v", err)
		}
		return repository, nil
	case "postgres", "postgresql":
		repository, err := NewPostgresRepository(ctx, u.String())
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres repository: %v", err)
		}
		return repository, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}
