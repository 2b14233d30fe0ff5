package disasm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/instruction"
)

// labelFunc returns the label name for an address or an empty string.
type labelFunc func(address uint16) string

// Format returns the assembly text of the instruction.
func Format(ins instruction.Instruction) string {
	return format(ins, nil)
}

func format(ins instruction.Instruction, labels labelFunc) string {
	name := ins.Name()
	if params := formatParams(ins, labels); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the parameters of the instruction.
func formatParams(ins instruction.Instruction, labels labelFunc) string {
	switch ins := ins.(type) {
	case instruction.Sys:
		return fmt.Sprintf("$%03X", ins.Address)
	case instruction.Clear, instruction.Return, instruction.SetHighResolution:
		return "" // no parameters
	case instruction.Branch:
		return formatBranch(ins, labels)
	case instruction.Load:
		return formatLoad(ins)
	case instruction.Logical:
		return fmt.Sprintf("V%X, V%X", ins.RegisterA, ins.RegisterB)
	case instruction.Arithmetic:
		return formatOperands(ins.Operands)
	case instruction.Random:
		return fmt.Sprintf("V%X, $%02X", ins.Register, ins.Mask)
	case instruction.Draw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.RegisterX, ins.RegisterY, ins.Rows)
	case instruction.LoadKey:
		return fmt.Sprintf("V%X, K", ins.Register)
	case instruction.AddI:
		return fmt.Sprintf("I, V%X", ins.Register)
	}
	return ""
}

// formatBranch formats jumps, calls and skips (JP addr, JP Vx, addr, SE Vx, byte).
func formatBranch(ins instruction.Branch, labels labelFunc) string {
	switch ins.Condition {
	case instruction.Equal:
		return fmt.Sprintf("V%X, $%02X", ins.RegisterA, ins.Value)
	case instruction.EqualRegister:
		return fmt.Sprintf("V%X, V%X", ins.RegisterA, ins.RegisterB)
	case instruction.KeyPressed:
		return fmt.Sprintf("V%X", ins.RegisterA)
	}

	target := ins.Target
	if target.Offset {
		return fmt.Sprintf("V%X, $%03X", target.OffsetRegister, target.Address)
	}
	if labels != nil {
		if label := labels(target.Address); label != "" {
			return label
		}
	}
	return fmt.Sprintf("$%03X", target.Address)
}

// formatLoad formats the load forms as destination, source.
func formatLoad(ins instruction.Load) string {
	if ins.From.Kind == instruction.FontLocation {
		return fmt.Sprintf("F, V%X", ins.From.Register)
	}
	return fmt.Sprintf("%s, %s", locationOperand(ins.Into), locationOperand(ins.From))
}

func locationOperand(loc instruction.Location) string {
	switch loc.Kind {
	case instruction.RegisterLocation, instruction.RegisterBlockLocation:
		return fmt.Sprintf("V%X", loc.Register)
	case instruction.AddressLocation:
		return fmt.Sprintf("$%03X", loc.Address)
	case instruction.ImmediateLocation:
		return fmt.Sprintf("$%02X", loc.Value)
	case instruction.IndexLocation:
		return "I"
	case instruction.FontLocation:
		return "F"
	case instruction.DelayTimerLocation:
		return "DT"
	case instruction.SoundTimerLocation:
		return "ST"
	case instruction.BCDLocation:
		return "B"
	case instruction.MemoryLocation:
		return "[I]"
	case instruction.RPLLocation:
		return "R"
	}
	return "?"
}

// formatOperands formats arithmetic operands (ADD Vx, byte, SUB Vx, Vy, SHR Vx).
func formatOperands(ops instruction.Operands) string {
	switch ops.Kind {
	case instruction.RegisterValue:
		return fmt.Sprintf("V%X, $%02X", ops.A, ops.Value)
	case instruction.RegisterRegister:
		return fmt.Sprintf("V%X, V%X", ops.A, ops.B)
	default:
		return fmt.Sprintf("V%X", ops.A)
	}
}
