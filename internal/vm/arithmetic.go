package vm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/instruction"
)

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// executeArithmetic handles ADD, SUB, SUBN, SHL and SHR. VF is written after the
// result for additions and subtractions and before the result for shifts, so an
// operation on VF itself keeps the flag or the result accordingly.
func (v *VM) executeArithmetic(ins instruction.Arithmetic) error {
	ops := ins.Operands

	if ins.Op == instruction.Shl || ins.Op == instruction.Shr {
		return v.executeShift(ins.Op, ops)
	}

	a := v.Registers[ops.A]
	var b uint8
	switch ops.Kind {
	case instruction.RegisterValue:
		b = ops.Value
	case instruction.RegisterRegister:
		b = v.Registers[ops.B]
	default:
		return fmt.Errorf("%w: %s with a single register", ErrInvalidOperands, ins.Name())
	}

	var result uint8
	var flag bool
	switch ins.Op {
	case instruction.Add:
		result = a + b
		flag = result < a // carry
	case instruction.Sub:
		if ins.Inverted {
			a, b = b, a
		}
		result = a - b
		flag = a >= b // not borrow
	}

	v.Registers[ops.A] = result
	if ins.CarryFlag {
		v.Registers[instruction.FlagRegister] = boolToFlag(flag)
	}
	return nil
}

// executeShift shifts VX in place or VY into VX, the shifted out bit goes to VF.
func (v *VM) executeShift(op instruction.ArithmeticOp, ops instruction.Operands) error {
	var source uint8
	switch ops.Kind {
	case instruction.SingleRegister:
		source = v.Registers[ops.A]
	case instruction.RegisterRegister:
		source = v.Registers[ops.B]
	default:
		return fmt.Errorf("%w: shift with an immediate value", ErrInvalidOperands)
	}

	if op == instruction.Shl {
		v.Registers[instruction.FlagRegister] = source >> 7
		v.Registers[ops.A] = source << 1
	} else {
		v.Registers[instruction.FlagRegister] = source & 1
		v.Registers[ops.A] = source >> 1
	}
	return nil
}

// executeLogical handles AND, OR and XOR, VF is not touched.
func (v *VM) executeLogical(ins instruction.Logical) {
	b := v.Registers[ins.RegisterB]
	switch ins.Op {
	case instruction.And:
		v.Registers[ins.RegisterA] &= b
	case instruction.Or:
		v.Registers[ins.RegisterA] |= b
	case instruction.Xor:
		v.Registers[ins.RegisterA] ^= b
	}
}

// executeRandom stores one entropy byte masked with the immediate.
func (v *VM) executeRandom(ins instruction.Random) error {
	var buf [1]byte
	if _, err := io.ReadFull(v.entropy, buf[:]); err != nil {
		return fmt.Errorf("reading entropy: %w", err)
	}
	v.Registers[ins.Register] = buf[0] & ins.Mask
	return nil
}
