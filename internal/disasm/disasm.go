// Package disasm produces assembly listings of the instructions a machine has decoded.
//
// Only addresses that are present in the instruction cache are disassembled,
// all other addresses are listed as unknown. This reflects what the machine
// actually executed instead of guessing the code paths of a program.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/vm"
)

const (
	startLabel  = "Start"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"

	// Unknown is the code of addresses that have no decoded instruction.
	Unknown = "???"
)

// Source provides the decoded instructions and the memory of a machine.
type Source interface {
	Instruction(address uint16) (instruction.Instruction, bool)
	ReadMemory(address uint16, length int) []byte
}

// Line is a single listing line.
type Line struct {
	Address     uint16
	Opcode      uint16
	Instruction instruction.Instruction // nil for unknown addresses
	Label       string
	Code        string
}

// Disasm builds listings for an address range of a source.
type Disasm struct {
	source Source
	labels map[uint16]string
}

// New returns a new disassembler for the source.
func New(source Source) *Disasm {
	return &Disasm{
		source: source,
	}
}

// Lines returns the listing of every instruction slot from start up to end.
func (dis *Disasm) Lines(start, end uint16) []Line {
	dis.processJumpDestinations(start, end)

	var lines []Line
	for address := start; address < end; address += decoder.OpcodeSize {
		data := dis.source.ReadMemory(address, decoder.OpcodeSize)
		line := Line{
			Address: address,
			Opcode:  uint16(data[0])<<8 | uint16(data[1]),
			Label:   dis.labels[address],
			Code:    Unknown,
		}

		if ins, ok := dis.source.Instruction(address); ok {
			line.Instruction = ins
			line.Code = format(ins, dis.label)
		}
		lines = append(lines, line)
	}
	return lines
}

// Write writes the listing of the address range to the writer.
func (dis *Disasm) Write(w io.Writer, start, end uint16) error {
	for i, line := range dis.Lines(start, end) {
		if line.Label != "" {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return fmt.Errorf("writing line: %w", err)
				}
			}
			if _, err := fmt.Fprintf(w, "%s:\n", line.Label); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		comment := fmt.Sprintf("$%04X %04X", line.Address, line.Opcode)
		if _, err := fmt.Fprintf(w, "  %-30s ; %s\n", line.Code, comment); err != nil {
			return fmt.Errorf("writing code line: %w", err)
		}
	}
	return nil
}

func (dis *Disasm) label(address uint16) string {
	return dis.labels[address]
}

// processJumpDestinations names all jump and call destinations inside the address range.
func (dis *Disasm) processJumpDestinations(start, end uint16) {
	dis.labels = map[uint16]string{}
	calls := map[uint16]bool{}

	for address := start; address < end; address += decoder.OpcodeSize {
		ins, ok := dis.source.Instruction(address)
		if ok {
			if branch, ok := ins.(instruction.Branch); ok && isAbsoluteJump(branch) {
				target := branch.Target.Address
				if target >= start && target < end {
					calls[target] = calls[target] || branch.Condition == instruction.Call
				}
			}
		}
	}

	for address, call := range calls {
		if call {
			dis.labels[address] = fmt.Sprintf(funcNaming, address)
		} else {
			dis.labels[address] = fmt.Sprintf(labelNaming, address)
		}
	}

	if start == vm.ProgramStart {
		dis.labels[start] = startLabel
	}
}

// isAbsoluteJump returns whether the branch continues at a fixed address.
func isAbsoluteJump(branch instruction.Branch) bool {
	if branch.Target.Kind != instruction.Address || branch.Target.Offset {
		return false
	}
	return branch.Condition == instruction.Unconditional || branch.Condition == instruction.Call
}
