package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueue(t *testing.T) {
	var q Queue[int] = NewInMemoryQueue[int](2)

	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	assert.ErrorIs(t, q.Enqueue(3), ErrQueueFull)
	assert.Equal(t, 2, q.Size())

	item, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, item)

	require.NoError(t, q.Enqueue(4))
	for _, want := range []int{2, 4} {
		item, err = q.Dequeue(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, item)
	}
	assert.Equal(t, 0, q.Size())
}

func TestInMemoryQueue_Dequeue_canceled(t *testing.T) {
	q := NewInMemoryQueue[string](1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInMemoryQueue_Dequeue_waits(t *testing.T) {
	q := NewInMemoryQueue[string](0)
	go func() {
		time.Sleep(5 * time.Millisecond)
		_ = q.Enqueue("hello")
	}()

	item, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", item)
}

func TestInMemoryQueue_ClearQueue(t *testing.T) {
	q := NewInMemoryQueue[int](4)
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Enqueue(i))
	}
	q.ClearQueue()
	assert.Equal(t, 0, q.Size())
}
