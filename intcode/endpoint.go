package intcode

import (
	"context"
	"errors"
	"iter"
)

// signal is one item of the output stream. halt marks the end of output.
type signal struct {
	value int64
	halt  bool
}

// Sink is the input endpoint of a VM. The driver sends, Input instructions receive.
type Sink struct {
	q *queue[int64]
}

// Send enqueues values in order. It never blocks.
func (s *Sink) Send(values ...int64) error {
	for _, value := range values {
		if err := s.q.push(context.Background(), value); err != nil {
			return ErrEndpointClosed
		}
	}
	return nil
}

// Close tells the VM no more input will come.
// A pending or later Input instruction fails with ErrInputExhausted once the queue drains.
func (s *Sink) Close() {
	s.q.close()
}

// Pending reports the number of values not yet consumed.
func (s *Sink) Pending() int {
	return s.q.len()
}

// Source is the output endpoint of a VM.
type Source struct {
	q      *queue[signal]
	halted bool
}

// Recv returns the next output value. ok is false when the VM has halted.
// If the VM stopped without halting, err is ErrAborted.
func (s *Source) Recv(ctx context.Context) (value int64, ok bool, err error) {
	if s.halted {
		return 0, false, nil
	}
	sig, err := s.q.pop(ctx)
	if errors.Is(err, errQueueClosed) {
		return 0, false, ErrAborted
	} else if err != nil {
		return 0, false, err
	}
	if sig.halt {
		s.halted = true
		return 0, false, nil
	}
	return sig.value, true, nil
}

// All iterates output values until the halt sentinel.
func (s *Source) All(ctx context.Context) iter.Seq2[int64, error] {
	return func(yield func(int64, error) bool) {
		for {
			value, ok, err := s.Recv(ctx)
			if err != nil {
				yield(0, err)
				return
			}
			if !ok {
				return
			}
			if !yield(value, nil) {
				return
			}
		}
	}
}

// Collect drains every output value up to the halt sentinel.
func (s *Source) Collect(ctx context.Context) (ret []int64, err error) {
	for value, err := range s.All(ctx) {
		if err != nil {
			return ret, err
		}
		ret = append(ret, value)
	}
	return ret, nil
}

// Close detaches the consumer. Later Output instructions are dropped silently.
func (s *Source) Close() {
	s.q.detach()
}

// Halted reports whether the halt sentinel has been received.
func (s *Source) Halted() bool {
	return s.halted
}
