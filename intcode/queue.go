package intcode

import (
	"context"
	"errors"
	"sync"
)

var (
	errQueueClosed   = errors.New("queue closed")
	errQueueDetached = errors.New("queue detached")
)

// queue is a single-producer single-consumer FIFO.
// capacity 0 means unbounded; otherwise push waits for room.
type queue[T any] struct {
	mu       sync.Mutex
	items    []T
	capacity int
	closed   bool // producer will not push again
	detached bool // consumer will not pop again
	changed  chan struct{}
}

func newQueue[T any](capacity int) *queue[T] {
	return &queue[T]{
		capacity: capacity,
		changed:  make(chan struct{}),
	}
}

// notify wakes every waiter. mu must be held.
func (q *queue[T]) notify() {
	close(q.changed)
	q.changed = make(chan struct{})
}

func (q *queue[T]) push(ctx context.Context, value T) error {
	for {
		q.mu.Lock()
		if q.detached {
			q.mu.Unlock()
			return errQueueDetached
		}
		if q.closed {
			q.mu.Unlock()
			return errQueueClosed
		}
		if q.capacity <= 0 || len(q.items) < q.capacity {
			q.items = append(q.items, value)
			q.notify()
			q.mu.Unlock()
			return nil
		}
		wait := q.changed
		q.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (q *queue[T]) pop(ctx context.Context) (ret T, err error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			ret = q.items[0]
			var zero T
			q.items[0] = zero
			q.items = q.items[1:]
			q.notify()
			q.mu.Unlock()
			return ret, nil
		}
		// a detached queue never receives again
		if q.closed || q.detached {
			q.mu.Unlock()
			return ret, errQueueClosed
		}
		wait := q.changed
		q.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return ret, ctx.Err()
		}
	}
}

func (q *queue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.notify()
}

func (q *queue[T]) detach() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.detached {
		return
	}
	q.detached = true
	q.items = nil
	q.notify()
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
