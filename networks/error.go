package networks

import "errors"

var (
	ErrEmptyNetwork = errors.New("empty network")
	ErrNoSignal     = errors.New("no output signal")
	ErrPartialFrame = errors.New("partial output frame")
)
