package vm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/instruction"
)

// bcdDigits is the number of memory bytes written by the BCD load.
const bcdDigits = 3

// executeLoad copies a value between two locations. Block transfers and BCD are
// handled separately, everything else moves a single value. Pairings that no
// opcode decodes to return ErrInvalidLoad and leave the state untouched.
func (v *VM) executeLoad(ins instruction.Load) error {
	from, into := ins.From, ins.Into

	switch {
	case from.Kind == instruction.RegisterBlockLocation && into.Kind == instruction.MemoryLocation:
		v.storeRegisters(from.Register, into.Increment)
		return nil

	case from.Kind == instruction.MemoryLocation && into.Kind == instruction.RegisterBlockLocation:
		v.loadRegisters(into.Register, from.Increment)
		return nil

	case from.Kind == instruction.RegisterBlockLocation && into.Kind == instruction.RPLLocation:
		count := int(from.Register) + 1
		if count > RPLSize {
			return fmt.Errorf("%w: %d registers do not fit into the RPL flags", ErrInvalidLoad, count)
		}
		copy(v.RPL[:count], v.Registers[:count])
		return nil

	case from.Kind == instruction.RPLLocation && into.Kind == instruction.RegisterBlockLocation:
		count := int(into.Register) + 1
		if count > RPLSize {
			return fmt.Errorf("%w: %d registers do not fit into the RPL flags", ErrInvalidLoad, count)
		}
		copy(v.Registers[:count], v.RPL[:count])
		return nil

	case into.Kind == instruction.BCDLocation:
		if from.Kind != instruction.RegisterLocation {
			return fmt.Errorf("%w: BCD of %s", ErrInvalidLoad, locationName(from.Kind))
		}
		v.storeBCD(v.Registers[from.Register])
		return nil
	}

	value, err := v.readLocation(from)
	if err != nil {
		return err
	}
	return v.writeLocation(into, value)
}

// readLocation returns the value of a single value location.
func (v *VM) readLocation(loc instruction.Location) (uint16, error) {
	switch loc.Kind {
	case instruction.RegisterLocation:
		return uint16(v.Registers[loc.Register]), nil
	case instruction.AddressLocation:
		return loc.Address, nil
	case instruction.ImmediateLocation:
		return uint16(loc.Value), nil
	case instruction.IndexLocation:
		return v.Index, nil
	case instruction.FontLocation:
		return glyphAddress(v.Registers[loc.Register]), nil
	case instruction.DelayTimerLocation:
		return uint16(v.DelayTimer), nil
	case instruction.SoundTimerLocation:
		return uint16(v.SoundTimer), nil
	default:
		return 0, fmt.Errorf("%w: cannot load from %s", ErrInvalidLoad, locationName(loc.Kind))
	}
}

// writeLocation stores the value into a single value location.
func (v *VM) writeLocation(loc instruction.Location, value uint16) error {
	switch loc.Kind {
	case instruction.RegisterLocation:
		v.Registers[loc.Register] = uint8(value)
	case instruction.IndexLocation:
		v.Index = value
	case instruction.DelayTimerLocation:
		v.DelayTimer = uint8(value)
	case instruction.SoundTimerLocation:
		v.SoundTimer = uint8(value)
	default:
		return fmt.Errorf("%w: cannot load into %s", ErrInvalidLoad, locationName(loc.Kind))
	}
	return nil
}

// storeRegisters writes V0 through VX to memory at I.
func (v *VM) storeRegisters(last instruction.Register, increment bool) {
	count := int(last) + 1
	v.WriteMemory(v.Index, v.Registers[:count])
	if increment {
		v.Index += uint16(count)
	}
}

// loadRegisters reads V0 through VX from memory at I.
func (v *VM) loadRegisters(last instruction.Register, increment bool) {
	count := int(last) + 1
	copy(v.Registers[:count], v.ReadMemory(v.Index, count))
	if increment {
		v.Index += uint16(count)
	}
}

// storeBCD writes the hundreds, tens and ones digit of the value to I, I+1 and I+2.
func (v *VM) storeBCD(value uint8) {
	digits := [bcdDigits]byte{value / 100, value / 10 % 10, value % 10}
	v.WriteMemory(v.Index, digits[:])
}

var locationNames = map[instruction.LocationKind]string{
	instruction.RegisterLocation:      "register",
	instruction.AddressLocation:       "address",
	instruction.ImmediateLocation:     "immediate",
	instruction.IndexLocation:         "index register",
	instruction.FontLocation:          "font glyph",
	instruction.DelayTimerLocation:    "delay timer",
	instruction.SoundTimerLocation:    "sound timer",
	instruction.BCDLocation:           "BCD",
	instruction.RegisterBlockLocation: "register block",
	instruction.MemoryLocation:        "memory",
	instruction.RPLLocation:           "RPL flags",
}

func locationName(kind instruction.LocationKind) string {
	if name, ok := locationNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("location(%d)", kind)
}
