// Package instruction contains the typed model of decoded CHIP-8 instructions.
//
// Every decoded opcode is represented by exactly one of the value types in this
// package. The set is closed: only types declared here implement Instruction.
// All types are comparable, so two decodes of the same opcode compare equal.
package instruction

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Register is the index of one of the 16 general purpose registers V0-VF.
type Register = uint8

// FlagRegister is the register that receives carry, borrow, shift and collision flags.
const FlagRegister Register = 0xF

// Instruction is a decoded CHIP-8 instruction.
type Instruction interface {
	// Name returns the assembler mnemonic of the instruction.
	Name() string

	instruction()
}

// Sys is the 0NNN machine code call of the original hardware. It is not supported.
type Sys struct {
	Address uint16
}

// Clear is 00E0, clearing the display.
type Clear struct{}

// Return is 00EE, returning from a subroutine.
type Return struct{}

// SetHighResolution is 00FE (disable) and 00FF (enable).
type SetHighResolution struct {
	Enabled bool
}

// Random is CXNN, storing a random byte masked with NN into VX.
type Random struct {
	Register Register
	Mask     uint8
}

// Draw is DXYN, drawing an N row sprite from I at VX, VY.
type Draw struct {
	RegisterX Register
	RegisterY Register
	Rows      uint8
}

// LoadKey is FX0A, waiting for a key press and storing the key into VX.
type LoadKey struct {
	Register Register
}

// AddI is FX1E, adding VX to I.
type AddI struct {
	Register Register
}

func (Sys) instruction()               {}
func (Clear) instruction()             {}
func (Return) instruction()            {}
func (SetHighResolution) instruction() {}
func (Random) instruction()            {}
func (Draw) instruction()              {}
func (LoadKey) instruction()           {}
func (AddI) instruction()              {}

// Name returns the assembler mnemonic of the instruction.
func (Sys) Name() string { return "sys" }

// Name returns the assembler mnemonic of the instruction.
func (Clear) Name() string { return chip8.ClsName }

// Name returns the assembler mnemonic of the instruction.
func (Return) Name() string { return chip8.RetName }

// Name returns the assembler mnemonic of the instruction.
func (i SetHighResolution) Name() string {
	if i.Enabled {
		return "high"
	}
	return "low"
}

// Name returns the assembler mnemonic of the instruction.
func (Random) Name() string { return chip8.RndName }

// Name returns the assembler mnemonic of the instruction.
func (Draw) Name() string { return chip8.DrwName }

// Name returns the assembler mnemonic of the instruction.
func (LoadKey) Name() string { return chip8.LdName }

// Name returns the assembler mnemonic of the instruction.
func (AddI) Name() string { return chip8.AddName }
