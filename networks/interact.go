package networks

import (
	"context"
	"fmt"

	"github.com/reusee/intcode/intcode"
)

// Interact runs r as a peer of respond.
// first is sent before starting. Every width outputs form a frame, and the values respond returns for it are sent back.
// Replies to a halted machine are dropped.
func Interact(
	ctx context.Context,
	r *intcode.Runner,
	width int,
	first []int64,
	respond func(frame []int64) []int64,
) (err error) {
	if width < 1 {
		return fmt.Errorf("bad frame width: %d", width)
	}
	if err := r.In.Send(first...); err != nil {
		return err
	}
	done := r.Start(ctx)

	frame := make([]int64, 0, width)
	for value, e := range r.Out.All(ctx) {
		if e != nil {
			err = e
			break
		}
		frame = append(frame, value)
		if len(frame) < width {
			continue
		}
		reply := respond(frame)
		frame = make([]int64, 0, width)
		_ = r.In.Send(reply...)
	}
	if err == nil && len(frame) > 0 {
		err = fmt.Errorf("%w: %v", ErrPartialFrame, frame)
	}

	// unblock the machine if we stopped early
	r.In.Close()
	r.Out.Close()
	if runErr := <-done; runErr != nil {
		return runErr
	}
	return err
}
