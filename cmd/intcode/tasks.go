package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/reusee/dscope"
	"github.com/reusee/intcode/debugs"
	"github.com/reusee/intcode/intcode"
	"github.com/reusee/intcode/logs"
	"github.com/reusee/intcode/networks"
	"github.com/reusee/intcode/scripts"
)

var stdout io.Writer = os.Stdout

func readPrograms(path string) ([][]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	programs, err := intcode.ReadPrograms(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(programs) == 0 {
		return nil, fmt.Errorf("%s: no program", path)
	}
	return programs, nil
}

func formatValues(values []int64) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}

func runPrograms(path string) task {
	return func(ctx context.Context, scope dscope.Scope) (err error) {
		programs, err := readPrograms(path)
		if err != nil {
			return err
		}
		scope.Call(func(
			newRunner intcode.NewRunner,
			newSpan logs.NewSpan,
			tap debugs.Tap,
		) {
			for i, program := range programs {
				ctx, _ := newSpan(ctx, "", fmt.Sprintf("%s:%d", path, i+1))
				r := newRunner(program)
				outputs, runErr := r.RunWith(ctx, *inputs)
				fmt.Fprintln(stdout, formatValues(outputs))
				if runErr != nil {
					if *debugFlag {
						tap(ctx, "vm fault", debugs.VMGlobals(r.VM, runErr))
					}
					err = logs.WrapSpan(ctx, runErr)
					return
				}
			}
		})
		return
	}
}

func bestSetting(path string, phases []int64, feedback bool) task {
	return func(ctx context.Context, scope dscope.Scope) (err error) {
		programs, err := readPrograms(path)
		if err != nil {
			return err
		}
		scope.Call(func(
			network networks.Network,
		) {
			for _, program := range programs {
				signal, setting, e := network.Best(ctx, program, phases, feedback)
				if e != nil {
					err = e
					return
				}
				fmt.Fprintf(stdout, "%d\t%s\n", signal, formatValues(setting))
			}
		})
		return
	}
}

func driveProgram(path string, script string) task {
	return func(ctx context.Context, scope dscope.Scope) (err error) {
		programs, err := readPrograms(path)
		if err != nil {
			return err
		}
		scope.Call(func(
			newRunner intcode.NewRunner,
			drive scripts.Drive,
			tap debugs.Tap,
		) {
			r := newRunner(programs[0])
			if err = r.In.Send(*inputs...); err != nil {
				return
			}
			_, err = drive(ctx, r, script, nil)
			if err != nil && *debugFlag {
				tap(ctx, "drive", debugs.VMGlobals(r.VM, err))
			}
		})
		return
	}
}
