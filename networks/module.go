package networks

import (
	"runtime"

	"github.com/reusee/dscope"
	"github.com/reusee/intcode/intcode"
	"github.com/reusee/intcode/logs"
)

type Module struct {
	dscope.Module
	Intcode intcode.Module
	Logs    logs.Module
}

func (Module) Network(
	newRunner intcode.NewRunner,
	newSpan logs.NewSpan,
	logger logs.Logger,
) Network {
	return Network{
		NewRunner: newRunner,
		NewSpan:   newSpan,
		Logger:    logger,
		Parallel:  runtime.NumCPU(),
	}
}
