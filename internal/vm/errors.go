package vm

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/dialect"
)

// Fatal machine errors. A VM that returns one of them from Step halts until it is
// resumed or a new program is loaded.
var (
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrStackUnderflow  = errors.New("return with empty call stack")
	ErrProgramCounter  = errors.New("program counter out of range")
	ErrSystemCall      = errors.New("machine code routine call not supported")
	ErrInvalidLoad     = errors.New("invalid load location pairing")
	ErrInvalidOperands = errors.New("invalid arithmetic operands")
	ErrProgramTooLarge = errors.New("program too large")
)

// DecodeError is returned when the opcode at the program counter is not an instruction
// of the active dialect.
type DecodeError struct {
	Opcode  uint16
	Address uint16
	Dialect dialect.Dialect
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %04X at address %03X (%s)", ErrUnknownOpcode, e.Opcode, e.Address, e.Dialect)
}

func (e *DecodeError) Unwrap() error {
	return ErrUnknownOpcode
}
