package intcode

import (
	"context"
	"log/slog"
)

type Options struct {
	Logger       *slog.Logger // if nil, logs are discarded
	Trace        bool         // log every executed instruction at debug level
	MaxSteps     int64        // 0 for unlimited
	MaxMemory    int64        // cells, 0 for unlimited
	OutputBuffer int          // 0 for unbounded
}

type Runner struct {
	VM  *VM
	In  *Sink
	Out *Source
}

type NewRunner func(program []int64) *Runner

var _ NewRunner = New

func New(program []int64) *Runner {
	return Options{}.New(program)
}

func (o Options) New(program []int64) *Runner {
	vm := NewVM(program, o)
	return &Runner{
		VM:  vm,
		In:  vm.Input(),
		Out: vm.Output(),
	}
}

// Run executes the program on the calling goroutine.
func (r *Runner) Run(ctx context.Context) error {
	return r.VM.Run(ctx)
}

// Start executes the program on a new goroutine.
// The returned channel yields the result of Run and is then closed.
func (r *Runner) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- r.VM.Run(ctx)
		close(done)
	}()
	return done
}

// RunWith sends all inputs, closes the input, runs to completion and returns every output.
func (r *Runner) RunWith(ctx context.Context, inputs []int64) ([]int64, error) {
	if err := r.In.Send(inputs...); err != nil {
		return nil, err
	}
	r.In.Close()
	done := r.Start(ctx)
	outputs, err := r.Out.Collect(ctx)
	if runErr := <-done; runErr != nil {
		return outputs, runErr
	}
	if err != nil {
		return outputs, err
	}
	return outputs, nil
}
