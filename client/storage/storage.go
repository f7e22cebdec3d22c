//go:build !js

package storage

import (
	"context"
	"fmt"

	"github.com/cbodonnell/snake/pkg/repositories"
)

// Open opens the best score store named by connStr, a SQLite file by default.
func Open(ctx context.Context, connStr string) (repositories.Store, error) {
	store, err := repositories.Open(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %v", err)
	}
	return store, nil
}
