// Package dialect defines the CHIP-8 instruction set personalities and their quirks.
package dialect

import (
	"fmt"
	"strings"
)

// Dialect selects one of the three compatible CHIP-8 instruction set variants.
type Dialect uint8

const (
	// Chip8 is the original COSMAC VIP interpreter behaviour.
	Chip8 Dialect = iota
	// Chip48 is the HP-48 interpreter behaviour.
	Chip48
	// SuperChip extends CHIP-48 with high resolution graphics and RPL user flags.
	SuperChip
)

var names = map[Dialect]string{
	Chip8:     "chip8",
	Chip48:    "chip48",
	SuperChip: "superchip",
}

var aliases = map[string]Dialect{
	"chip8":      Chip8,
	"chip-8":     Chip8,
	"chip48":     Chip48,
	"chip-48":    Chip48,
	"superchip":  SuperChip,
	"super-chip": SuperChip,
	"schip":      SuperChip,
}

// FromString returns the dialect for the given name. Names are matched case insensitive
// and accept the common spellings like "CHIP-48" or "schip".
func FromString(name string) (Dialect, error) {
	d, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Chip8, fmt.Errorf("unsupported dialect '%s'", name)
	}
	return d, nil
}

// Names returns the canonical names of all dialects in order.
func Names() []string {
	return []string{names[Chip8], names[Chip48], names[SuperChip]}
}

func (d Dialect) String() string {
	if name, ok := names[d]; ok {
		return name
	}
	return fmt.Sprintf("dialect(%d)", uint8(d))
}

// ShiftsInPlace returns whether 8XY6/8XYE shift VX itself instead of shifting VY into VX.
func (d Dialect) ShiftsInPlace() bool {
	return d != Chip8
}

// JumpsWithOffset returns whether BNNN adds the register named by the high nibble of NNN
// to the jump target.
func (d Dialect) JumpsWithOffset() bool {
	return d != Chip8
}

// IncrementsIndex returns whether FX55/FX65 advance I by the number of transferred registers.
func (d Dialect) IncrementsIndex() bool {
	return d != Chip8
}

// HighResolution returns whether the dialect supports the 128x64 display mode.
func (d Dialect) HighResolution() bool {
	return d == SuperChip
}

// RPLFlags returns whether the dialect supports saving registers to the RPL user flags.
func (d Dialect) RPLFlags() bool {
	return d == SuperChip
}
