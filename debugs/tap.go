package debugs

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/reusee/intcode/intcode"
	"github.com/reusee/intcode/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens an interactive Starlark session with globals predeclared.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := make(starlark.StringDict)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, mappings)
	}
}

// VMGlobals exposes the state of vm for a tap session.
func VMGlobals(vm *intcode.VM, err error) map[string]any {
	return map[string]any{
		"ip":            vm.IP,
		"relative_base": vm.RelativeBase,
		"steps":         vm.Steps,
		"halted":        vm.Halted,
		"memory":        []int64(vm.Memory),
		"error":         err,
		"decode": func(addr int64) string {
			if addr < 0 || addr >= int64(len(vm.Memory)) {
				return "out of range"
			}
			return describe(vm.Memory[addr:])
		},
	}
}

// describe renders the instruction at the start of cells.
func describe(cells []int64) string {
	inst, err := intcode.Decode(cells[0])
	if err != nil {
		return err.Error()
	}
	s := inst.Op.String()
	for i := range inst.Op.Params() {
		if 1+i >= len(cells) {
			break
		}
		param := cells[1+i]
		switch inst.Modes[i] {
		case intcode.ModePosition:
			s += fmt.Sprintf(" [%d]", param)
		case intcode.ModeImmediate:
			s += fmt.Sprintf(" %d", param)
		case intcode.ModeRelative:
			s += fmt.Sprintf(" [rb%+d]", param)
		}
	}
	return s
}
