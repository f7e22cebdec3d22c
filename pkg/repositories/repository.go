package repositories

import (
	"context"
)

// Store is a string keyed, string valued persistent store.
// Get returns an *ErrNotFound when the key has never been set.
type Store interface {
	Close(ctx context.Context) error
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}
