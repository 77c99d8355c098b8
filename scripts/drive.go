package scripts

import (
	"context"
	"errors"
	"fmt"

	"github.com/reusee/intcode/intcode"
	"github.com/reusee/intcode/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Drive runs r while a Starlark script talks to it.
// src is passed to starlark.ExecFileOptions, nil reads filename.
// The script sees send(*values), recv(), collect() and close().
// recv returns None once the machine halts.
// When the script ends the input is closed and Drive waits for the machine.
type Drive func(
	ctx context.Context,
	r *intcode.Runner,
	filename string,
	src any,
) (starlark.StringDict, error)

func (Module) Drive(
	logger logs.Logger,
) Drive {
	return func(ctx context.Context, r *intcode.Runner, filename string, src any) (globals starlark.StringDict, err error) {
		done := r.Start(ctx)
		defer func() {
			r.In.Close()
			r.Out.Close()
			if runErr := <-done; runErr != nil {
				err = errors.Join(err, runErr)
			}
		}()

		thread := &starlark.Thread{
			Name: filename,
			Print: func(_ *starlark.Thread, msg string) {
				logger.InfoContext(ctx, msg, "script", filename)
			},
		}
		stop := context.AfterFunc(ctx, func() {
			thread.Cancel(context.Cause(ctx).Error())
		})
		defer stop()

		globals, err = starlark.ExecFileOptions(
			&syntax.FileOptions{
				Set:             true,
				While:           true,
				TopLevelControl: true,
			},
			thread,
			filename,
			src,
			builtins(ctx, r),
		)
		return
	}
}

func builtins(ctx context.Context, r *intcode.Runner) starlark.StringDict {
	return starlark.StringDict{

		"send": starlark.NewBuiltin("send", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(kwargs) > 0 {
				return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
			}
			values := make([]int64, 0, len(args))
			for i, arg := range args {
				n, ok := arg.(starlark.Int)
				if !ok {
					return nil, fmt.Errorf("%s: argument %d: want int, got %s", b.Name(), i, arg.Type())
				}
				v, ok := n.Int64()
				if !ok {
					return nil, fmt.Errorf("%s: argument %d: %s overflows int64", b.Name(), i, n)
				}
				values = append(values, v)
			}
			if err := r.In.Send(values...); err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return starlark.None, nil
		}),

		"recv": starlark.NewBuiltin("recv", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			v, ok, err := r.Out.Recv(ctx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			if !ok {
				return starlark.None, nil
			}
			return starlark.MakeInt64(v), nil
		}),

		"collect": starlark.NewBuiltin("collect", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			values, err := r.Out.Collect(ctx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			elems := make([]starlark.Value, len(values))
			for i, v := range values {
				elems[i] = starlark.MakeInt64(v)
			}
			return starlark.NewList(elems), nil
		}),

		"close": starlark.NewBuiltin("close", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			r.In.Close()
			return starlark.None, nil
		}),
	}
}
