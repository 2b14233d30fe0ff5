package instruction

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// ArithmeticOp is the operation of an Arithmetic instruction.
type ArithmeticOp uint8

const (
	// Add adds with 8 bit wraparound.
	Add ArithmeticOp = iota
	// Sub subtracts with 8 bit wraparound.
	Sub
	// Shl shifts left by one.
	Shl
	// Shr shifts right by one.
	Shr
)

// OperandKind is the operand shape of an Arithmetic instruction.
type OperandKind uint8

const (
	// SingleRegister operates on A only.
	SingleRegister OperandKind = iota
	// RegisterValue operates on register A and an immediate value.
	RegisterValue
	// RegisterRegister operates on registers A and B.
	RegisterRegister
)

// Operands are the inputs of an Arithmetic instruction. A is always the destination.
type Operands struct {
	Kind  OperandKind
	A     Register
	B     Register
	Value uint8
}

// Arithmetic covers ADD, SUB, SUBN, SHL and SHR.
type Arithmetic struct {
	Op       ArithmeticOp
	Operands Operands

	// CarryFlag writes VF on carry or not-borrow.
	CarryFlag bool
	// Inverted swaps the operand order of a subtraction (8XY7).
	Inverted bool
}

func (Arithmetic) instruction() {}

// Name returns the assembler mnemonic of the instruction.
func (a Arithmetic) Name() string {
	switch a.Op {
	case Sub:
		if a.Inverted {
			return chip8.SubnName
		}
		return chip8.SubName
	case Shl:
		return chip8.ShlName
	case Shr:
		return chip8.ShrName
	default:
		return chip8.AddName
	}
}

// LogicalOp is the operation of a Logical instruction.
type LogicalOp uint8

const (
	// And is 8XY2.
	And LogicalOp = iota
	// Or is 8XY1.
	Or
	// Xor is 8XY3.
	Xor
)

// Logical covers AND, OR and XOR between two registers, storing into RegisterA.
type Logical struct {
	Op        LogicalOp
	RegisterA Register
	RegisterB Register
}

func (Logical) instruction() {}

// Name returns the assembler mnemonic of the instruction.
func (l Logical) Name() string {
	switch l.Op {
	case Or:
		return chip8.OrName
	case Xor:
		return chip8.XorName
	default:
		return chip8.AndName
	}
}
