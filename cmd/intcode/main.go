package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/reusee/dscope"
	"github.com/reusee/intcode/cmds"
	"github.com/reusee/intcode/modes"
)

type task func(ctx context.Context, scope dscope.Scope) error

var tasks []task

var (
	inputs    = cmds.Collect[int64]("input")
	debugFlag = cmds.Switch("-debug")
)

func init() {
	cmds.Define("run", cmds.Func(func(file string) {
		tasks = append(tasks, runPrograms(file))
	}).Desc("run every program in FILE with the inputs, one line each"))

	cmds.Define("amplify", cmds.Func(func(file string) {
		tasks = append(tasks, bestSetting(file, []int64{0, 1, 2, 3, 4}, false))
	}).Desc("find the best amplifier chain phase setting"))

	cmds.Define("feedback", cmds.Func(func(file string) {
		tasks = append(tasks, bestSetting(file, []int64{5, 6, 7, 8, 9}, true))
	}).Desc("find the best feedback loop phase setting"))

	cmds.Define("drive", cmds.Func(func(file string, script string) {
		tasks = append(tasks, driveProgram(file, script))
	}).Desc("run the first program in FILE under a starlark SCRIPT"))
}

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(tasks) == 0 {
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	for _, task := range tasks {
		if err := task(ctx, scope); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
