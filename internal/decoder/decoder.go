// Package decoder maps 16 bit CHIP-8 opcodes to typed instructions.
package decoder

import (
	"github.com/retroenv/retrochip8/internal/dialect"
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// OpcodeSize is the size of a CHIP-8 opcode in bytes.
const OpcodeSize = 2

// maxRPLRegister is the last register that fits into the 8 RPL user flags.
const maxRPLRegister = 7

// Decode returns the instruction for the opcode in the given dialect.
// It returns false if the bit pattern is not an instruction of the dialect.
// Decode does not depend on any machine state.
func Decode(opcode uint16, d dialect.Dialect) (instruction.Instruction, bool) {
	op, ok := lookup(opcode)
	if !ok {
		return decodeExtension(opcode, d)
	}

	x, y := registerX(opcode), registerY(opcode)

	switch op.Instruction {
	case chip8.ClsInst:
		return instruction.Clear{}, true

	case chip8.RetInst:
		return instruction.Return{}, true

	case chip8.JpInst:
		if op.Info == chip8.OpcodeB000 {
			return decodeOffsetJump(opcode, d), true
		}
		return instruction.Branch{
			Condition: instruction.Unconditional,
			Target:    instruction.AddressTarget(address(opcode)),
		}, true

	case chip8.CallInst:
		return instruction.Branch{
			Condition: instruction.Call,
			Target:    instruction.AddressTarget(address(opcode)),
		}, true

	case chip8.SeInst, chip8.SneInst:
		return decodeSkip(op, opcode), true

	case chip8.SkpInst, chip8.SknpInst:
		return instruction.Branch{
			Condition: instruction.KeyPressed,
			Target:    instruction.SkipTarget(),
			Inverted:  op.Instruction == chip8.SknpInst,
			RegisterA: x,
		}, true

	case chip8.LdInst:
		return decodeLoad(op.Info, opcode, d)

	case chip8.AddInst:
		switch op.Info {
		case chip8.Opcode7000:
			return instruction.Arithmetic{
				Op: instruction.Add,
				Operands: instruction.Operands{
					Kind:  instruction.RegisterValue,
					A:     x,
					Value: immediate(opcode),
				},
			}, true
		case chip8.OpcodeF01E:
			return instruction.AddI{Register: x}, true
		}
		return instruction.Arithmetic{Op: instruction.Add, Operands: pair(x, y), CarryFlag: true}, true

	case chip8.SubInst:
		return instruction.Arithmetic{Op: instruction.Sub, Operands: pair(x, y), CarryFlag: true}, true

	case chip8.SubnInst:
		return instruction.Arithmetic{Op: instruction.Sub, Operands: pair(x, y), CarryFlag: true, Inverted: true}, true

	case chip8.ShrInst:
		return shift(instruction.Shr, x, y, d), true

	case chip8.ShlInst:
		return shift(instruction.Shl, x, y, d), true

	case chip8.OrInst:
		return instruction.Logical{Op: instruction.Or, RegisterA: x, RegisterB: y}, true

	case chip8.AndInst:
		return instruction.Logical{Op: instruction.And, RegisterA: x, RegisterB: y}, true

	case chip8.XorInst:
		return instruction.Logical{Op: instruction.Xor, RegisterA: x, RegisterB: y}, true

	case chip8.RndInst:
		return instruction.Random{Register: x, Mask: immediate(opcode)}, true

	case chip8.DrwInst:
		return instruction.Draw{
			RegisterX: x,
			RegisterY: y,
			Rows:      uint8(opcode & 0x000F),
		}, true
	}
	return nil, false
}

// lookup returns the base instruction set opcode that matches the bit pattern.
func lookup(opcode uint16) (chip8.Opcode, bool) {
	for _, op := range chip8.Opcodes[opcode>>12] {
		if op.Info.Mask&opcode == op.Info.Value {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

// decodeExtension decodes the opcodes that are not part of the base instruction
// set table: the 0NNN system call and the SUPER-CHIP additions.
func decodeExtension(opcode uint16, d dialect.Dialect) (instruction.Instruction, bool) {
	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00FE, 0x00FF: // LOW / HIGH
			if !d.HighResolution() {
				return nil, false
			}
			return instruction.SetHighResolution{Enabled: opcode == 0x00FF}, true
		}
		// 0NNN - SYS addr
		return instruction.Sys{Address: address(opcode)}, true

	case 0xF000:
		x := registerX(opcode)
		if !d.RPLFlags() || x > maxRPLRegister {
			return nil, false
		}
		switch opcode & 0x00FF {
		case 0x75: // FX75 - LD R, Vx
			return instruction.Load{From: instruction.RegisterBlock(x), Into: instruction.RPL()}, true
		case 0x85: // FX85 - LD Vx, R
			return instruction.Load{From: instruction.RPL(), Into: instruction.RegisterBlock(x)}, true
		}
	}
	return nil, false
}

// decodeSkip decodes the conditional skips that compare a register with an
// immediate or with a second register.
func decodeSkip(op chip8.Opcode, opcode uint16) instruction.Branch {
	branch := instruction.Branch{
		Condition: instruction.Equal,
		Target:    instruction.SkipTarget(),
		Inverted:  op.Instruction == chip8.SneInst,
		RegisterA: registerX(opcode),
	}
	if op.Info == chip8.Opcode5000 || op.Info == chip8.Opcode9000 {
		branch.Condition = instruction.EqualRegister
		branch.RegisterB = registerY(opcode)
		return branch
	}
	branch.Value = immediate(opcode)
	return branch
}

// decodeLoad decodes all forms of the load instruction.
func decodeLoad(info chip8.OpcodeInfo, opcode uint16, d dialect.Dialect) (instruction.Instruction, bool) {
	x := registerX(opcode)
	var from, into instruction.Location

	switch info {
	case chip8.Opcode6000: // LD Vx, byte
		from, into = instruction.ImmediateOf(immediate(opcode)), instruction.RegisterAt(x)
	case chip8.Opcode8000: // LD Vx, Vy
		from, into = instruction.RegisterAt(registerY(opcode)), instruction.RegisterAt(x)
	case chip8.OpcodeA000: // LD I, addr
		from, into = instruction.AddressOf(address(opcode)), instruction.Index()
	case chip8.OpcodeF007: // LD Vx, DT
		from, into = instruction.DelayTimer(), instruction.RegisterAt(x)
	case chip8.OpcodeF00A: // LD Vx, K
		return instruction.LoadKey{Register: x}, true
	case chip8.OpcodeF015: // LD DT, Vx
		from, into = instruction.RegisterAt(x), instruction.DelayTimer()
	case chip8.OpcodeF018: // LD ST, Vx
		from, into = instruction.RegisterAt(x), instruction.SoundTimer()
	case chip8.OpcodeF029: // LD F, Vx
		from, into = instruction.FontOf(x), instruction.Index()
	case chip8.OpcodeF033: // LD B, Vx
		from, into = instruction.RegisterAt(x), instruction.BCD()
	case chip8.OpcodeF055: // LD [I], Vx
		from, into = instruction.RegisterBlock(x), instruction.Memory(d.IncrementsIndex())
	case chip8.OpcodeF065: // LD Vx, [I]
		from, into = instruction.Memory(d.IncrementsIndex()), instruction.RegisterBlock(x)
	default:
		return nil, false
	}
	return instruction.Load{From: from, Into: into}, true
}

func pair(x, y instruction.Register) instruction.Operands {
	return instruction.Operands{Kind: instruction.RegisterRegister, A: x, B: y}
}

// shift returns the dialect specific shift form. The original interpreter shifts VY
// into VX, later ones shift VX in place.
func shift(op instruction.ArithmeticOp, x, y instruction.Register, d dialect.Dialect) instruction.Arithmetic {
	if d.ShiftsInPlace() {
		return instruction.Arithmetic{
			Op:       op,
			Operands: instruction.Operands{Kind: instruction.SingleRegister, A: x},
		}
	}
	return instruction.Arithmetic{
		Op:       op,
		Operands: pair(x, y),
	}
}

// decodeOffsetJump decodes BNNN. The CHIP-48 family adds VX, with X being the
// high nibble of NNN.
func decodeOffsetJump(opcode uint16, d dialect.Dialect) instruction.Branch {
	target := instruction.AddressTarget(address(opcode))
	if d.JumpsWithOffset() {
		target = instruction.OffsetTarget(address(opcode), registerX(opcode))
	}
	return instruction.Branch{
		Condition: instruction.Unconditional,
		Target:    target,
	}
}

// address extracts the NNN field.
func address(opcode uint16) uint16 {
	return opcode & 0x0FFF
}

// immediate extracts the NN field.
func immediate(opcode uint16) uint8 {
	return uint8(opcode & 0x00FF)
}

// registerX extracts the X nibble.
func registerX(opcode uint16) instruction.Register {
	return instruction.Register((opcode & 0x0F00) >> 8)
}

// registerY extracts the Y nibble.
func registerY(opcode uint16) instruction.Register {
	return instruction.Register((opcode & 0x00F0) >> 4)
}
