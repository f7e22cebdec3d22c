package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every Store implementation shares.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "expected not found, got %v", err)

	require.NoError(t, store.Set(ctx, "snakeBestScore", "3"))
	value, err := store.Get(ctx, "snakeBestScore")
	require.NoError(t, err)
	assert.Equal(t, "3", value)

	require.NoError(t, store.Set(ctx, "snakeBestScore", "12"))
	value, err = store.Get(ctx, "snakeBestScore")
	require.NoError(t, err)
	assert.Equal(t, "12", value)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	repository, err := NewSQLiteRepository(ctx, ":memory:")
	require.NoError(t, err)
	defer repository.Close(ctx)

	exerciseStore(t, repository)
}

func TestPostgresRepository(t *testing.T) {
	connStr := os.Getenv("SNAKE_TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("SNAKE_TEST_DATABASE_URL is not set")
	}
	ctx := context.Background()
	repository, err := NewPostgresRepository(ctx, connStr)
	require.NoError(t, err)
	defer repository.Close(ctx)

	exerciseStore(t, repository)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, "memory://")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = Open(ctx, "sqlite://"+t.TempDir()+"/snake.db")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepository{}, store)
	require.NoError(t, store.Close(ctx))

	_, err = Open(ctx, "redis://localhost")
	assert.Error(t, err)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&ErrNotFound{}))
	assert.False(t, IsNotFound(assert.AnError))
	assert.Equal(t, `key "a" not found`, (&ErrNotFound{Key: "a"}).Error())
}
