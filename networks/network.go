package networks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reusee/intcode/intcode"
	"github.com/reusee/intcode/logs"
	"github.com/reusee/intcode/syncs"
	"golang.org/x/sync/errgroup"
)

// Network runs several instances of one program wired output to input.
type Network struct {
	NewRunner intcode.NewRunner
	NewSpan   logs.NewSpan
	Logger    *slog.Logger
	// Parallel bounds the number of networks Best evaluates at once
	Parallel int
}

// Chain runs one instance per phase in a line and returns the last output of the last instance.
func (n Network) Chain(ctx context.Context, program []int64, phases []int64, signal int64) (int64, error) {
	return n.run(ctx, program, phases, signal, false)
}

// Feedback is Chain with the outputs of the last instance fed back to the first.
// It returns once the last instance halts.
func (n Network) Feedback(ctx context.Context, program []int64, phases []int64, signal int64) (int64, error) {
	return n.run(ctx, program, phases, signal, true)
}

func (n Network) run(ctx context.Context, program []int64, phases []int64, signal int64, feedback bool) (int64, error) {
	if len(phases) == 0 {
		return 0, ErrEmptyNetwork
	}

	runners := make([]*intcode.Runner, 0, len(phases))
	for _, phase := range phases {
		r := n.NewRunner(program)
		if err := r.In.Send(phase); err != nil {
			return 0, err
		}
		runners = append(runners, r)
	}
	first := runners[0]
	last := runners[len(runners)-1]
	if err := first.In.Send(signal); err != nil {
		return 0, err
	}
	if !feedback {
		first.In.Close()
	}

	var group errgroup.Group
	runErrs := make([]error, len(runners))
	for i, r := range runners {
		spanCtx := ctx
		if n.NewSpan != nil {
			spanCtx, _ = n.NewSpan(ctx, "", fmt.Sprintf("amp-%d", i))
		}
		group.Go(func() error {
			runErrs[i] = logs.WrapSpan(spanCtx, r.Run(spanCtx))
			return runErrs[i]
		})
		if i+1 < len(runners) {
			next := runners[i+1]
			group.Go(func() error {
				return Pipe(ctx, r.Out, next.In)
			})
		}
	}

	var result int64
	var got bool
	group.Go(func() error {
		if feedback {
			defer first.In.Close()
		}
		for value, err := range last.Out.All(ctx) {
			if err != nil {
				return err
			}
			result = value
			got = true
			if feedback {
				// the first instance may have halted already
				_ = first.In.Send(value)
			}
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		// faults explain the aborted pipes
		if runErr := errors.Join(runErrs...); runErr != nil {
			err = runErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = errors.Join(ctxErr, err)
		}
		return 0, err
	}
	if !got {
		return 0, ErrNoSignal
	}
	return result, nil
}

// Best tries every ordering of phases with an initial signal of zero.
// It returns the highest signal and the first setting, in lexicographic order, producing it.
func (n Network) Best(ctx context.Context, program []int64, phases []int64, feedback bool) (best int64, setting []int64, err error) {
	if len(phases) == 0 {
		return 0, nil, ErrEmptyNetwork
	}
	eval := n.Chain
	if feedback {
		eval = n.Feedback
	}

	var settings [][]int64
	for p := range Permutations(phases) {
		settings = append(settings, p)
	}
	results := make([]int64, len(settings))

	sem := syncs.NewSemaphore(n.Parallel)
	group, groupCtx := errgroup.WithContext(ctx)
	for i, s := range settings {
		if err := sem.AcquireContext(groupCtx); err != nil {
			break
		}
		group.Go(func() error {
			defer sem.Release()
			v, err := eval(groupCtx, program, s, 0)
			if err != nil {
				return fmt.Errorf("phases %v: %w", s, err)
			}
			results[i] = v
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return 0, nil, err
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	for i, v := range results {
		if setting == nil || v > best {
			best = v
			setting = settings[i]
		}
	}
	if n.Logger != nil {
		n.Logger.DebugContext(ctx, "best setting",
			"signal", best,
			"phases", setting,
			"feedback", feedback,
			"tried", len(settings),
		)
	}
	return best, setting, nil
}
