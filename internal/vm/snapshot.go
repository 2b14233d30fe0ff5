package vm

import (
	"hash/crc32"
	"slices"
)

// Snapshot is a copy of the observable machine state after a step.
type Snapshot struct {
	Cycle      uint64   `cbor:"1,keyasint"`
	PC         uint16   `cbor:"2,keyasint"`
	Index      uint16   `cbor:"3,keyasint"`
	Registers  []uint8  `cbor:"4,keyasint"`
	Stack      []uint16 `cbor:"5,keyasint"`
	DelayTimer uint8    `cbor:"6,keyasint"`
	SoundTimer uint8    `cbor:"7,keyasint"`
	RPL        []uint8  `cbor:"8,keyasint"`

	MemoryChecksum uint32 `cbor:"9,keyasint"`

	DisplayWidth  int    `cbor:"10,keyasint"`
	DisplayHeight int    `cbor:"11,keyasint"`
	Display       []byte `cbor:"12,keyasint"` // one bit per pixel, rows MSB first
}

// Snapshot returns a copy of the current machine state.
func (v *VM) Snapshot() Snapshot {
	return Snapshot{
		Cycle:      v.cycles,
		PC:         v.PC,
		Index:      v.Index,
		Registers:  slices.Clone(v.Registers[:]),
		Stack:      slices.Clone(v.Stack),
		DelayTimer: v.DelayTimer,
		SoundTimer: v.SoundTimer,
		RPL:        slices.Clone(v.RPL[:]),

		MemoryChecksum: crc32.ChecksumIEEE(v.memory[:]),

		DisplayWidth:  v.display.Width(),
		DisplayHeight: v.display.Height(),
		Display:       packPixels(v.display.Pixels()),
	}
}

// Equal returns whether both snapshots describe the same machine state.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Cycle == other.Cycle &&
		s.PC == other.PC &&
		s.Index == other.Index &&
		slices.Equal(s.Registers, other.Registers) &&
		slices.Equal(s.Stack, other.Stack) &&
		s.DelayTimer == other.DelayTimer &&
		s.SoundTimer == other.SoundTimer &&
		slices.Equal(s.RPL, other.RPL) &&
		s.MemoryChecksum == other.MemoryChecksum &&
		s.DisplayWidth == other.DisplayWidth &&
		s.DisplayHeight == other.DisplayHeight &&
		slices.Equal(s.Display, other.Display)
}

func packPixels(pixels []bool) []byte {
	packed := make([]byte, (len(pixels)+7)/8)
	for i, lit := range pixels {
		if lit {
			packed[i/8] |= 0x80 >> (i % 8)
		}
	}
	return packed
}
