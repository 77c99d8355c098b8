package intcode

import (
	"github.com/reusee/dscope"
	"github.com/reusee/intcode/logs"
	"github.com/reusee/intcode/vmconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs vmconfigs.Module
}

func (Module) Options(
	logger logs.Logger,
	trace vmconfigs.Trace,
	maxSteps vmconfigs.MaxSteps,
	maxMemory vmconfigs.MaxMemory,
	outputBuffer vmconfigs.OutputBuffer,
) Options {
	return Options{
		Logger:       logger,
		Trace:        bool(trace),
		MaxSteps:     int64(maxSteps),
		MaxMemory:    int64(maxMemory),
		OutputBuffer: int(outputBuffer),
	}
}

func (Module) NewRunner(
	options Options,
) NewRunner {
	return options.New
}
