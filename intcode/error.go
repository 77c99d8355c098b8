package intcode

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOpcode  = errors.New("invalid opcode")
	ErrInvalidMode    = errors.New("invalid addressing mode")
	ErrInvalidAddress = errors.New("invalid address")
	ErrInputExhausted = errors.New("input exhausted")
	ErrStepLimit      = errors.New("step limit exceeded")
	ErrEndpointClosed = errors.New("endpoint closed")
	ErrAborted        = errors.New("aborted without halt")
)

// Fault is an engine failure at a specific instruction.
type Fault struct {
	Err  error
	IP   int64
	Word int64
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s at ip %d (word %d)", f.Err.Error(), f.IP, f.Word)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func (v *VM) fault(err error, word int64) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Fault); ok {
		return err
	}
	return &Fault{
		Err:  err,
		IP:   v.IP,
		Word: word,
	}
}
