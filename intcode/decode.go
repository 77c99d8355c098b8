package intcode

import "fmt"

type OpCode int64

const (
	OpAdd                OpCode = 1
	OpMultiply           OpCode = 2
	OpInput              OpCode = 3
	OpOutput             OpCode = 4
	OpJumpIfTrue         OpCode = 5
	OpJumpIfFalse        OpCode = 6
	OpLessThan           OpCode = 7
	OpEquals             OpCode = 8
	OpAdjustRelativeBase OpCode = 9
	OpHalt               OpCode = 99
)

func (o OpCode) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpMultiply:
		return "mul"
	case OpInput:
		return "in"
	case OpOutput:
		return "out"
	case OpJumpIfTrue:
		return "jnz"
	case OpJumpIfFalse:
		return "jz"
	case OpLessThan:
		return "lt"
	case OpEquals:
		return "eq"
	case OpAdjustRelativeBase:
		return "arb"
	case OpHalt:
		return "halt"
	}
	return fmt.Sprintf("op(%d)", int64(o))
}

// Params returns the number of parameters following the opcode word.
func (o OpCode) Params() int {
	switch o {
	case OpAdd, OpMultiply, OpLessThan, OpEquals:
		return 3
	case OpJumpIfTrue, OpJumpIfFalse:
		return 2
	case OpInput, OpOutput, OpAdjustRelativeBase:
		return 1
	}
	return 0
}

type Mode uint8

const (
	ModePosition  Mode = 0
	ModeImmediate Mode = 1
	ModeRelative  Mode = 2
)

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

const maxParams = 3

type Instruction struct {
	Op    OpCode
	Modes [maxParams]Mode
}

// Width is the number of cells the instruction occupies.
func (i Instruction) Width() int64 {
	return int64(i.Op.Params()) + 1
}

func Decode(word int64) (inst Instruction, err error) {
	op := OpCode(word % 100)
	switch op {
	case OpAdd, OpMultiply, OpInput, OpOutput,
		OpJumpIfTrue, OpJumpIfFalse, OpLessThan, OpEquals,
		OpAdjustRelativeBase, OpHalt:
	default:
		return inst, fmt.Errorf("%w: %d", ErrInvalidOpcode, word)
	}
	inst.Op = op

	// only the digits of parameters the opcode actually takes are checked
	digits := word / 100
	for i := range op.Params() {
		mode := Mode(digits % 10)
		if mode > ModeRelative {
			return inst, fmt.Errorf("%w: digit %d of parameter %d in %d", ErrInvalidMode, digits%10, i, word)
		}
		inst.Modes[i] = mode
		digits /= 10
	}

	return inst, nil
}
