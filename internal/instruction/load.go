package instruction

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// LocationKind names a source or destination of a Load.
type LocationKind uint8

const (
	// RegisterLocation is a single register VX.
	RegisterLocation LocationKind = iota
	// AddressLocation is a literal 12 bit address.
	AddressLocation
	// ImmediateLocation is a literal byte.
	ImmediateLocation
	// IndexLocation is the index register I.
	IndexLocation
	// FontLocation is the address of the font glyph named by a register.
	FontLocation
	// DelayTimerLocation is the delay timer.
	DelayTimerLocation
	// SoundTimerLocation is the sound timer.
	SoundTimerLocation
	// BCDLocation is the three decimal digits of a value written to I, I+1, I+2.
	BCDLocation
	// RegisterBlockLocation is the register range V0 through VX.
	RegisterBlockLocation
	// MemoryLocation is the memory block starting at I.
	MemoryLocation
	// RPLLocation is the persistent RPL user flag storage.
	RPLLocation
)

// Location is one side of a Load. Only the fields relevant for the kind are set.
type Location struct {
	Kind     LocationKind
	Register Register // register, font glyph register or last register of a block
	Address  uint16
	Value    uint8

	// Increment advances I after a memory block transfer.
	Increment bool
}

// RegisterAt returns the location of register VX.
func RegisterAt(register Register) Location {
	return Location{Kind: RegisterLocation, Register: register}
}

// AddressOf returns the location of a literal address.
func AddressOf(address uint16) Location {
	return Location{Kind: AddressLocation, Address: address}
}

// ImmediateOf returns the location of a literal byte.
func ImmediateOf(value uint8) Location {
	return Location{Kind: ImmediateLocation, Value: value}
}

// Index returns the location of the index register.
func Index() Location {
	return Location{Kind: IndexLocation}
}

// FontOf returns the location of the font glyph for the digit stored in the register.
func FontOf(register Register) Location {
	return Location{Kind: FontLocation, Register: register}
}

// DelayTimer returns the location of the delay timer.
func DelayTimer() Location {
	return Location{Kind: DelayTimerLocation}
}

// SoundTimer returns the location of the sound timer.
func SoundTimer() Location {
	return Location{Kind: SoundTimerLocation}
}

// BCD returns the location of the BCD expansion at I.
func BCD() Location {
	return Location{Kind: BCDLocation}
}

// RegisterBlock returns the location of registers V0 through last.
func RegisterBlock(last Register) Location {
	return Location{Kind: RegisterBlockLocation, Register: last}
}

// Memory returns the location of the memory block at I.
func Memory(increment bool) Location {
	return Location{Kind: MemoryLocation, Increment: increment}
}

// RPL returns the location of the RPL user flags.
func RPL() Location {
	return Location{Kind: RPLLocation}
}

// Load copies a value between two locations.
type Load struct {
	From Location
	Into Location
}

func (Load) instruction() {}

// Name returns the assembler mnemonic of the instruction.
func (Load) Name() string { return chip8.LdName }
