package vm

import (
	"github.com/retroenv/retrochip8/internal/instruction"
)

// executeDraw blits the sprite at I and sets VF to the collision result.
func (v *VM) executeDraw(ins instruction.Draw) {
	sprite := v.ReadMemory(v.Index, int(ins.Rows))
	x := v.Registers[ins.RegisterX]
	y := v.Registers[ins.RegisterY]
	collision := v.display.Draw(sprite, x, y)
	v.Registers[instruction.FlagRegister] = boolToFlag(collision)
}
