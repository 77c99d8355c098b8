package intcode

import (
	"bytes"
	"context"
	"errors"
	"math"
	"slices"
	"testing"
)

func runWith(t *testing.T, program []int64, inputs ...int64) []int64 {
	t.Helper()
	outputs, err := New(program).RunWith(t.Context(), inputs)
	if err != nil {
		t.Fatal(err)
	}
	return outputs
}

func TestEcho(t *testing.T) {
	for _, v := range []int64{
		0, 1, -1, 42, 1 << 50,
		math.MaxInt64, math.MinInt64,
	} {
		outputs := runWith(t, []int64{3, 0, 4, 0, 99}, v)
		if !slices.Equal(outputs, []int64{v}) {
			t.Fatalf("%d: got %v", v, outputs)
		}
	}
}

func TestQuine(t *testing.T) {
	program := []int64{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	outputs := runWith(t, program)
	if !slices.Equal(outputs, program) {
		t.Fatalf("got %v", outputs)
	}
}

func TestLargeValues(t *testing.T) {
	outputs := runWith(t, []int64{1102, 34915192, 34915192, 7, 4, 7, 99, 0})
	if !slices.Equal(outputs, []int64{1219070632396864}) {
		t.Fatalf("got %v", outputs)
	}
	outputs = runWith(t, []int64{104, 1125899906842624, 99})
	if !slices.Equal(outputs, []int64{1125899906842624}) {
		t.Fatalf("got %v", outputs)
	}
}

func TestComparisons(t *testing.T) {
	cases := []struct {
		program []int64
		expect  func(int64) int64
	}{
		// position mode, equal to 8
		{[]int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, func(i int64) int64 { return b2i(i == 8) }},
		// position mode, less than 8
		{[]int64{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, func(i int64) int64 { return b2i(i < 8) }},
		// immediate mode, equal to 8
		{[]int64{3, 3, 1108, -1, 8, 3, 4, 3, 99}, func(i int64) int64 { return b2i(i == 8) }},
		// immediate mode, less than 8
		{[]int64{3, 3, 1107, -1, 8, 3, 4, 3, 99}, func(i int64) int64 { return b2i(i < 8) }},
	}
	for _, c := range cases {
		for _, input := range []int64{7, 8, 9} {
			outputs := runWith(t, c.program, input)
			if !slices.Equal(outputs, []int64{c.expect(input)}) {
				t.Fatalf("%v with %d: got %v", c.program, input, outputs)
			}
		}
	}
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func TestJumps(t *testing.T) {
	for _, program := range [][]int64{
		{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9},
		{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1},
	} {
		if outputs := runWith(t, program, 0); !slices.Equal(outputs, []int64{0}) {
			t.Fatalf("got %v", outputs)
		}
		if outputs := runWith(t, program, 5); !slices.Equal(outputs, []int64{1}) {
			t.Fatalf("got %v", outputs)
		}
	}
}

func TestCompareToEight(t *testing.T) {
	program := []int64{
		3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31,
		1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104,
		999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99,
	}
	for input, expected := range map[int64]int64{
		-5: 999,
		7:  999,
		8:  1000,
		9:  1001,
		80: 1001,
	} {
		if outputs := runWith(t, program, input); !slices.Equal(outputs, []int64{expected}) {
			t.Fatalf("%d: got %v", input, outputs)
		}
	}
}

func TestArithmeticMemory(t *testing.T) {
	cases := []struct {
		program []int64
		memory  []int64
	}{
		{[]int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, []int64{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}},
		{[]int64{1, 0, 0, 0, 99}, []int64{2, 0, 0, 0, 99}},
		{[]int64{2, 3, 0, 3, 99}, []int64{2, 3, 0, 6, 99}},
		{[]int64{2, 4, 4, 5, 99, 0}, []int64{2, 4, 4, 5, 99, 9801}},
		{[]int64{1, 1, 1, 4, 99, 5, 6, 0, 99}, []int64{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{[]int64{1101, 100, -1, 4, 0}, []int64{1101, 100, -1, 4, 99}},
	}
	for _, c := range cases {
		r := New(c.program)
		if err := r.Run(t.Context()); err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(r.VM.Memory, c.memory) {
			t.Fatalf("got %v", r.VM.Memory)
		}
	}
}

func TestProgramNotShared(t *testing.T) {
	program := []int64{1, 0, 0, 0, 99}
	r := New(program)
	if err := r.Run(t.Context()); err != nil {
		t.Fatal(err)
	}
	if program[0] != 1 {
		t.Fatalf("got %v", program)
	}
}

func TestRelativeBase(t *testing.T) {
	r := New([]int64{109, 2000, 109, 19, 204, -34, 99})
	if err := r.VM.Memory.Write(1985, 42); err != nil {
		t.Fatal(err)
	}
	outputs, err := r.RunWith(t.Context(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(outputs, []int64{42}) {
		t.Fatalf("got %v", outputs)
	}
	if r.VM.RelativeBase != 2019 {
		t.Fatalf("got %v", r.VM.RelativeBase)
	}
}

func TestRelativeWrite(t *testing.T) {
	outputs := runWith(t, []int64{109, 10, 203, 0, 204, 0, 99}, 7)
	if !slices.Equal(outputs, []int64{7}) {
		t.Fatalf("got %v", outputs)
	}
}

func TestFaults(t *testing.T) {
	cases := []struct {
		name    string
		program []int64
		options Options
		inputs  []int64
		err     error
		ip      int64
	}{
		{"opcode", []int64{42}, Options{}, nil, ErrInvalidOpcode, 0},
		{"mode", []int64{1101, 1, 1, 5, 301, 0, 0, 0, 99}, Options{}, nil, ErrInvalidMode, 4},
		{"immediate write", []int64{11101, 1, 1, 0, 99}, Options{}, nil, ErrInvalidMode, 0},
		{"negative relative", []int64{109, -5, 204, 0, 99}, Options{}, nil, ErrInvalidAddress, 2},
		{"negative position", []int64{4, -1, 99}, Options{}, nil, ErrInvalidAddress, 0},
		{"negative jump", []int64{1105, 1, -3}, Options{}, nil, ErrInvalidAddress, -3},
		{"input", []int64{3, 0, 3, 0, 99}, Options{}, []int64{1}, ErrInputExhausted, 2},
		{"steps", []int64{1105, 1, 0}, Options{MaxSteps: 100}, nil, ErrStepLimit, 0},
		{"memory", []int64{1101, 1, 1, 1000, 99}, Options{MaxMemory: 100}, nil, ErrInvalidAddress, 0},
		{"huge write", []int64{1101, 1, 1, 1 << 62, 99}, Options{}, nil, ErrInvalidAddress, 0},
		{"huge read", []int64{4, MaxAddress + 1, 99}, Options{}, nil, ErrInvalidAddress, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := c.options.New(c.program)
			outputs, err := r.RunWith(t.Context(), c.inputs)
			if !errors.Is(err, c.err) {
				t.Fatalf("got %v", err)
			}
			var fault *Fault
			if !errors.As(err, &fault) {
				t.Fatalf("got %T", err)
			}
			if fault.IP != c.ip {
				t.Fatalf("got %v", fault.IP)
			}
			if len(outputs) != 0 {
				t.Fatalf("got %v", outputs)
			}
			if r.VM.Halted {
				t.Fatal()
			}
		})
	}
}

func TestFaultClosesEndpoints(t *testing.T) {
	r := New([]int64{104, 1, 42})
	err := r.Run(t.Context())
	if !errors.Is(err, ErrInvalidOpcode) {
		t.Fatalf("got %v", err)
	}
	value, ok, err := r.Out.Recv(t.Context())
	if err != nil || !ok || value != 1 {
		t.Fatalf("got %v %v %v", value, ok, err)
	}
	_, _, err = r.Out.Recv(t.Context())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("got %v", err)
	}
	if err := r.In.Send(1); !errors.Is(err, ErrEndpointClosed) {
		t.Fatalf("got %v", err)
	}
}

func TestHalted(t *testing.T) {
	r := New([]int64{104, 7, 99})
	if err := r.Run(t.Context()); err != nil {
		t.Fatal(err)
	}
	if !r.VM.Halted {
		t.Fatal()
	}
	steps := r.VM.Steps
	if err := r.Run(t.Context()); err != nil {
		t.Fatal(err)
	}
	if r.VM.Steps != steps {
		t.Fatalf("got %v", r.VM.Steps)
	}
	if err := r.In.Send(1); !errors.Is(err, ErrEndpointClosed) {
		t.Fatalf("got %v", err)
	}
	outputs, err := r.Out.Collect(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(outputs, []int64{7}) {
		t.Fatalf("got %v", outputs)
	}
}

func TestDetachedOutput(t *testing.T) {
	r := New([]int64{104, 1, 104, 2, 99})
	r.Out.Close()
	if err := r.Run(t.Context()); err != nil {
		t.Fatal(err)
	}
	if !r.VM.Halted {
		t.Fatal()
	}
}

func TestBoundedOutput(t *testing.T) {
	r := Options{OutputBuffer: 1}.New([]int64{104, 1, 104, 2, 104, 3, 104, 4, 104, 5, 99})
	outputs, err := r.RunWith(t.Context(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(outputs, []int64{1, 2, 3, 4, 5}) {
		t.Fatalf("got %v", outputs)
	}
}

func TestBoundedOutputDetached(t *testing.T) {
	r := Options{OutputBuffer: 1}.New([]int64{104, 1, 104, 2, 104, 3, 99})
	done := r.Start(t.Context())
	value, ok, err := r.Out.Recv(t.Context())
	if err != nil || !ok || value != 1 {
		t.Fatalf("got %v %v %v", value, ok, err)
	}
	// the blocked Output instruction resumes once the consumer is gone
	r.Out.Close()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestCancelWhileWaitingInput(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	r := New([]int64{3, 0, 99})
	done := r.Start(ctx)
	cancel()
	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	if _, _, err := r.Out.Recv(t.Context()); !errors.Is(err, ErrAborted) {
		t.Fatalf("got %v", err)
	}
}

func TestRerunAfterFault(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	r := New([]int64{3, 0, 99})
	done := r.Start(ctx)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}

	if err := r.In.Send(1); !errors.Is(err, ErrEndpointClosed) {
		t.Fatalf("got %v", err)
	}
	// the detached input can never deliver, so Input fails instead of waiting
	err := r.Run(context.Background())
	if !errors.Is(err, ErrInputExhausted) {
		t.Fatalf("got %v", err)
	}
	var fault *Fault
	if !errors.As(err, &fault) {
		t.Fatalf("got %T", err)
	}
	if fault.IP != 0 {
		t.Fatalf("got %v", fault.IP)
	}
}

func TestStreaming(t *testing.T) {
	r := New([]int64{3, 0, 4, 0, 3, 0, 4, 0, 99})
	done := r.Start(t.Context())

	for _, v := range []int64{1, 2} {
		if err := r.In.Send(v); err != nil {
			t.Fatal(err)
		}
		got, ok, err := r.Out.Recv(t.Context())
		if err != nil {
			t.Fatal(err)
		}
		if !ok || got != v {
			t.Fatalf("got %v %v", got, ok)
		}
	}

	_, ok, err := r.Out.Recv(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expecting halt")
	}
	if !r.Out.Halted() {
		t.Fatal()
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestSnapshot(t *testing.T) {
	r := New([]int64{3, 0, 4, 0, 99})
	if err := r.In.Send(5); err != nil {
		t.Fatal(err)
	}
	if err := r.Run(t.Context()); err != nil {
		t.Fatal(err)
	}

	buf := new(bytes.Buffer)
	if err := r.VM.Snapshot(buf); err != nil {
		t.Fatal(err)
	}

	restored := New(nil)
	restored.VM.IP = 3
	restored.VM.RelativeBase = 9
	if err := restored.VM.Restore(buf); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(restored.VM.Memory, []int64{5, 0, 4, 0, 99}) {
		t.Fatalf("got %v", restored.VM.Memory)
	}
	if restored.VM.IP != 4 {
		t.Fatalf("got %v", restored.VM.IP)
	}
	if restored.VM.RelativeBase != 0 {
		t.Fatalf("got %v", restored.VM.RelativeBase)
	}
	if !restored.VM.Halted {
		t.Fatal()
	}
	if restored.VM.Steps != 3 {
		t.Fatalf("got %v", restored.VM.Steps)
	}
}

func TestSnapshotResume(t *testing.T) {
	program := []int64{3, 0, 4, 0, 3, 0, 4, 0, 99}

	r := Options{MaxSteps: 2}.New(program)
	if err := r.In.Send(1); err != nil {
		t.Fatal(err)
	}
	if err := r.Run(t.Context()); !errors.Is(err, ErrStepLimit) {
		t.Fatalf("got %v", err)
	}
	buf := new(bytes.Buffer)
	if err := r.VM.Snapshot(buf); err != nil {
		t.Fatal(err)
	}

	resumed := New(nil)
	if err := resumed.VM.Restore(buf); err != nil {
		t.Fatal(err)
	}
	outputs, err := resumed.RunWith(t.Context(), []int64{2})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(outputs, []int64{2}) {
		t.Fatalf("got %v", outputs)
	}
}
