package intcode

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

type VM struct {
	Memory       Memory
	IP           int64
	RelativeBase int64
	Steps        int64
	Halted       bool

	options Options
	input   *queue[int64]
	output  *queue[signal]
}

func NewVM(program []int64, options Options) *VM {
	return &VM{
		Memory:  Memory(slices.Clone(program)),
		options: options,
		input:   newQueue[int64](0),
		output:  newQueue[signal](options.OutputBuffer),
	}
}

// Input returns the endpoint feeding Input instructions.
func (v *VM) Input() *Sink {
	return &Sink{
		q: v.input,
	}
}

// Output returns the endpoint receiving values of Output instructions.
func (v *VM) Output() *Source {
	return &Source{
		q: v.output,
	}
}

func (v *VM) logger() *slog.Logger {
	if v.options.Logger != nil {
		return v.options.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (v *VM) read(addr int64) (int64, error) {
	if err := v.Memory.grow(addr, v.options.MaxMemory); err != nil {
		return 0, err
	}
	return v.Memory[addr], nil
}

func (v *VM) write(addr int64, value int64) error {
	if err := v.Memory.grow(addr, v.options.MaxMemory); err != nil {
		return err
	}
	v.Memory[addr] = value
	return nil
}

// address resolves the target cell of parameter i.
func (v *VM) address(inst Instruction, i int) (int64, error) {
	loc := v.IP + 1 + int64(i)
	switch inst.Modes[i] {
	case ModePosition:
		return v.read(loc)
	case ModeImmediate:
		return loc, nil
	case ModeRelative:
		offset, err := v.read(loc)
		if err != nil {
			return 0, err
		}
		return v.RelativeBase + offset, nil
	}
	return 0, ErrInvalidMode
}

func (v *VM) load(inst Instruction, i int) (int64, error) {
	addr, err := v.address(inst, i)
	if err != nil {
		return 0, err
	}
	return v.read(addr)
}

func (v *VM) store(inst Instruction, i int, value int64) error {
	if inst.Modes[i] == ModeImmediate {
		return fmt.Errorf("%w: immediate write target", ErrInvalidMode)
	}
	addr, err := v.address(inst, i)
	if err != nil {
		return err
	}
	return v.write(addr, value)
}

// Run executes until the halt instruction or a fault.
// On fault the output endpoint is closed without the halt sentinel.
func (v *VM) Run(ctx context.Context) (err error) {
	if v.Halted {
		return nil
	}
	logger := v.logger()
	logger.DebugContext(ctx, "vm start",
		"ip", v.IP,
		"memory", len(v.Memory),
	)

	var word int64
	defer func() {
		if err == nil {
			return
		}
		err = v.fault(err, word)
		v.input.detach()
		v.output.close()
		logger.ErrorContext(ctx, "vm fault",
			"error", err,
			"ip", v.IP,
			"steps", v.Steps,
		)
	}()

	for {
		if v.options.MaxSteps > 0 && v.Steps >= v.options.MaxSteps {
			return ErrStepLimit
		}

		word, err = v.read(v.IP)
		if err != nil {
			return err
		}
		inst, err := Decode(word)
		if err != nil {
			return err
		}
		if v.options.Trace {
			logger.DebugContext(ctx, "step",
				"ip", v.IP,
				"op", inst.Op,
				"word", word,
				"rb", v.RelativeBase,
			)
		}
		v.Steps++
		next := v.IP + inst.Width()

		switch inst.Op {

		case OpAdd, OpMultiply, OpLessThan, OpEquals:
			x, err := v.load(inst, 0)
			if err != nil {
				return err
			}
			y, err := v.load(inst, 1)
			if err != nil {
				return err
			}
			var z int64
			switch inst.Op {
			case OpAdd:
				z = x + y
			case OpMultiply:
				z = x * y
			case OpLessThan:
				if x < y {
					z = 1
				}
			case OpEquals:
				if x == y {
					z = 1
				}
			}
			if err := v.store(inst, 2, z); err != nil {
				return err
			}

		case OpInput:
			value, err := v.input.pop(ctx)
			if errors.Is(err, errQueueClosed) {
				return ErrInputExhausted
			} else if err != nil {
				return err
			}
			if err := v.store(inst, 0, value); err != nil {
				return err
			}

		case OpOutput:
			x, err := v.load(inst, 0)
			if err != nil {
				return err
			}
			// a detached consumer is not an error
			if err := v.output.push(ctx, signal{value: x}); err != nil &&
				!errors.Is(err, errQueueDetached) {
				return err
			}

		case OpJumpIfTrue, OpJumpIfFalse:
			cond, err := v.load(inst, 0)
			if err != nil {
				return err
			}
			if (cond != 0) == (inst.Op == OpJumpIfTrue) {
				next, err = v.load(inst, 1)
				if err != nil {
					return err
				}
			}

		case OpAdjustRelativeBase:
			x, err := v.load(inst, 0)
			if err != nil {
				return err
			}
			v.RelativeBase += x

		case OpHalt:
			v.Halted = true
			// a consumer that sees the sentinel must also see a closed input
			v.input.detach()
			if err := v.output.push(ctx, signal{halt: true}); err != nil &&
				!errors.Is(err, errQueueDetached) {
				logger.WarnContext(ctx, "halt sentinel not delivered", "error", err)
			}
			v.output.close()
			logger.DebugContext(ctx, "vm halt",
				"steps", v.Steps,
				"memory", len(v.Memory),
			)
			return nil

		}

		v.IP = next
	}
}

// Snapshot writes the machine state. Endpoints are not included.
func (v *VM) Snapshot(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return nil
}

// Restore replaces the machine state with a snapshot. Endpoints are kept.
func (v *VM) Restore(r io.Reader) error {
	// gob skips zero values, so decode into a fresh state
	var state VM
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&state); err != nil {
		return err
	}
	v.Memory = state.Memory
	v.IP = state.IP
	v.RelativeBase = state.RelativeBase
	v.Steps = state.Steps
	v.Halted = state.Halted
	return nil
}
