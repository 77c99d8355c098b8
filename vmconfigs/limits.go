package vmconfigs

import (
	"slices"

	"github.com/reusee/intcode/cmds"
	"github.com/reusee/intcode/configs"
	"github.com/reusee/intcode/modes"
	"github.com/reusee/intcode/vars"
)

// lowestLimit returns the strictest non-zero bound among the flag and every config file.
func lowestLimit(loader configs.Loader, path string, flag int64) int64 {
	return vars.MinNonZero(append(
		[]int64{flag},
		slices.Collect(configs.All[int64](loader, path))...,
	)...)
}

type MaxSteps int64

// DevelopmentMaxSteps bounds runaway programs in tests when nothing else is configured.
const DevelopmentMaxSteps MaxSteps = 1 << 26

var maxStepsFlag = cmds.Var[int64]("-max-steps")

func (Module) MaxSteps(
	loader configs.Loader,
	mode modes.Mode,
) MaxSteps {
	n := lowestLimit(loader, "max_steps", *maxStepsFlag)
	if n == 0 && mode == modes.ModeDevelopment {
		return DevelopmentMaxSteps
	}
	return MaxSteps(n)
}

type MaxMemory int64

var maxMemoryFlag = cmds.Var[int64]("-max-memory")

func (Module) MaxMemory(
	loader configs.Loader,
) MaxMemory {
	return MaxMemory(lowestLimit(loader, "max_memory", *maxMemoryFlag))
}

type OutputBuffer int

var outputBufferFlag = cmds.Var[int]("-output-buffer")

func (Module) OutputBuffer(
	loader configs.Loader,
) OutputBuffer {
	return OutputBuffer(vars.FirstNonZero(
		*outputBufferFlag,
		configs.First[int](loader, "output_buffer"),
	))
}

type Trace bool

var traceFlag = cmds.Switch("-trace")

func (Module) Trace(
	loader configs.Loader,
) Trace {
	if *traceFlag {
		return true
	}
	return Trace(configs.First[bool](loader, "trace"))
}
