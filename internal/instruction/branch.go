package instruction

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Condition is the test a branch evaluates before taking its target.
type Condition uint8

const (
	// Unconditional always takes the target (1NNN, BNNN).
	Unconditional Condition = iota
	// Call pushes the current address and takes the target (2NNN).
	Call
	// Equal compares a register with an immediate value (3XNN, 4XNN).
	Equal
	// EqualRegister compares two registers (5XY0, 9XY0).
	EqualRegister
	// KeyPressed tests whether the key named by a register is down (EX9E, EXA1).
	KeyPressed
)

// TargetKind is where a branch continues when its condition holds.
type TargetKind uint8

const (
	// Skip skips the next instruction.
	Skip TargetKind = iota
	// Address continues at an absolute address.
	Address
)

// Target is the destination of a taken branch.
type Target struct {
	Kind    TargetKind
	Address uint16

	// Offset adds the value of OffsetRegister to Address (BNNN).
	Offset         bool
	OffsetRegister Register
}

// SkipTarget returns a target that skips the next instruction.
func SkipTarget() Target {
	return Target{Kind: Skip}
}

// AddressTarget returns a target that jumps to the given address.
func AddressTarget(address uint16) Target {
	return Target{Kind: Address, Address: address}
}

// OffsetTarget returns a target that jumps to address plus the value of the register.
func OffsetTarget(address uint16, register Register) Target {
	return Target{Kind: Address, Address: address, Offset: true, OffsetRegister: register}
}

// Branch is any instruction that jumps or skips depending on a condition.
// The "not equal" and "key not pressed" forms reuse their positive condition
// with Inverted set.
type Branch struct {
	Condition Condition
	Target    Target
	Inverted  bool

	RegisterA Register // compared register, or the key register
	RegisterB Register // second register of EqualRegister
	Value     uint8    // immediate of Equal
}

func (Branch) instruction() {}

// Name returns the assembler mnemonic of the instruction.
func (b Branch) Name() string {
	switch b.Condition {
	case Unconditional:
		return chip8.JpName
	case Call:
		return chip8.CallName
	case KeyPressed:
		if b.Inverted {
			return chip8.SknpName
		}
		return chip8.SkpName
	default:
		if b.Inverted {
			return chip8.SneName
		}
		return chip8.SeName
	}
}
