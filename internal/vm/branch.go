package vm

import (
	"github.com/retroenv/retrochip8/internal/instruction"
)

// executeBranch evaluates the branch condition, XORed with the inverted flag.
func (v *VM) executeBranch(ins instruction.Branch) transition {
	var taken bool

	switch ins.Condition {
	case instruction.Unconditional:
		taken = true
	case instruction.Call:
		v.Stack = append(v.Stack, v.PC)
		taken = true
	case instruction.Equal:
		taken = v.Registers[ins.RegisterA] == ins.Value
	case instruction.EqualRegister:
		taken = v.Registers[ins.RegisterA] == v.Registers[ins.RegisterB]
	case instruction.KeyPressed:
		taken = v.keypad.Down(v.Registers[ins.RegisterA])
	}

	if taken == ins.Inverted {
		return toNext
	}
	return v.branchTarget(ins.Target)
}

func (v *VM) branchTarget(target instruction.Target) transition {
	if target.Kind == instruction.Skip {
		return toSkip
	}
	address := target.Address
	if target.Offset {
		address += uint16(v.Registers[target.OffsetRegister])
	}
	return jumpTo(address)
}

// executeReturn pops the call site and continues after it.
func (v *VM) executeReturn() (transition, error) {
	if len(v.Stack) == 0 {
		return transition{}, ErrStackUnderflow
	}
	last := len(v.Stack) - 1
	address := v.Stack[last]
	v.Stack = v.Stack[:last]
	return jumpTo(address + 2), nil
}

// executeLoadKey stores a newly pressed key or stalls the program counter.
func (v *VM) executeLoadKey(ins instruction.LoadKey) transition {
	key, ok := v.keys.PressedKey()
	if !ok {
		return toPause
	}
	v.Registers[ins.Register] = key & 0x0F
	return toNext
}
