package queue

import (
	"context"
	"errors"
)

// ErrQueueFull is returned by Enqueue when the queue is at capacity.
var ErrQueueFull = errors.New("queue full")

// Queue represents a basic bounded queue.
type Queue[T any] interface {
	Enqueue(item T) error
	Dequeue(ctx context.Context) (T, error)
	Size() int
	ClearQueue()
}
