package debugs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/intcode/intcode"
	"go.starlark.net/starlark"
)

func TestTap(t *testing.T) {
	dscope.New(
		new(Module),
	).Call(func(
		tap Tap,
	) {
		tap(t.Context(), "test", map[string]any{
			"foo": 42,
		})
	})
}

func TestVMGlobals(t *testing.T) {
	r := intcode.New([]int64{1101, 1, 2, 7, 109, -1, 42})
	err := r.Run(t.Context())
	if err == nil {
		t.Fatal()
	}
	globals := VMGlobals(r.VM, err)
	if globals["ip"] != int64(6) {
		t.Fatalf("got %v", globals["ip"])
	}
	if globals["steps"] != int64(2) {
		t.Fatalf("got %v", globals["steps"])
	}
	if globals["error"] != err {
		t.Fatalf("got %v", globals["error"])
	}

	decode := globals["decode"].(func(int64) string)
	for addr, want := range map[int64]string{
		0:  "add 1 2 [7]",
		4:  "arb -1",
		6:  "invalid opcode: 42",
		-1: "out of range",
	} {
		if got := decode(addr); got != want {
			t.Fatalf("%d: got %q", addr, got)
		}
	}

	for name, value := range globals {
		v := toStarlarkValue(value)
		if name == "decode" {
			if _, ok := v.(starlark.Callable); !ok {
				t.Fatalf("got %T", v)
			}
		}
		if name == "memory" {
			if n := v.(*starlark.List).Len(); n != 8 {
				t.Fatalf("got %v", n)
			}
		}
	}
}

func TestDescribe(t *testing.T) {
	for _, c := range []struct {
		cells []int64
		want  string
	}{
		{[]int64{204, -3}, "out [rb-3]"},
		{[]int64{21008, 5, 1, 2}, "eq [5] 1 [rb+2]"},
		{[]int64{99}, "halt"},
		{[]int64{1105, 1}, "jnz 1"},
	} {
		if got := describe(c.cells); got != c.want {
			t.Fatalf("got %q", got)
		}
	}
}
