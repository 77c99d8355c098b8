package syncs

import "context"

type Semaphore chan bool

func NewSemaphore(n int) Semaphore {
	if n < 1 {
		n = 1
	}
	return make(chan bool, n)
}

func (s Semaphore) Acquire() {
	s <- true
}

// AcquireContext is Acquire that gives up when ctx is done.
func (s Semaphore) AcquireContext(ctx context.Context) error {
	select {
	case s <- true:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s Semaphore) Release() {
	<-s
}
