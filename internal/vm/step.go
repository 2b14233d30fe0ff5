package vm

import (
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrogolib/log"
)

// transitionKind is how the program counter changes after an instruction.
type transitionKind uint8

const (
	// next advances to the following instruction.
	next transitionKind = iota
	// skip jumps over the following instruction.
	skip
	// jump sets the program counter to an absolute address.
	jump
	// pause keeps the program counter, the instruction is retried on the next step.
	pause
)

type transition struct {
	kind    transitionKind
	address uint16
}

var (
	toNext  = transition{kind: next}
	toSkip  = transition{kind: skip}
	toPause = transition{kind: pause}
)

func jumpTo(address uint16) transition {
	return transition{kind: jump, address: address}
}

// Step executes the instruction at the program counter. It does nothing while the
// VM is paused. A returned error is fatal, the VM pauses itself and the machine state
// stays as it was before the failing instruction unless the error says otherwise.
func (v *VM) Step() error {
	if v.paused {
		return nil
	}
	start := time.Now()

	// the opcode occupies PC and PC+1, both have to be addressable
	if v.PC < ProgramStart || int(v.PC)+decoder.OpcodeSize > MemorySize {
		return v.halt(fmt.Errorf("%w: %04X", ErrProgramCounter, v.PC))
	}

	ins, err := v.cache.GetOrDecode(v.PC, v.decode)
	if err != nil {
		return v.halt(err)
	}

	t, err := v.execute(ins)
	if err != nil {
		return v.halt(fmt.Errorf("executing %s at address %03X: %w", ins.Name(), v.PC, err))
	}
	v.apply(t)

	v.cycles++
	v.lastCycle = time.Since(start)
	return nil
}

func (v *VM) halt(err error) error {
	v.paused = true
	return err
}

// apply moves the program counter according to the transition.
func (v *VM) apply(t transition) {
	v.waitingKey = t.kind == pause
	switch t.kind {
	case next:
		v.PC += decoder.OpcodeSize
	case skip:
		v.PC += 2 * decoder.OpcodeSize
	case jump:
		v.PC = t.address
	case pause:
	}
}

// execute dispatches the instruction to its handler.
func (v *VM) execute(ins instruction.Instruction) (transition, error) {
	switch ins := ins.(type) {
	case instruction.Sys:
		return transition{}, fmt.Errorf("%w: %03X", ErrSystemCall, ins.Address)

	case instruction.Clear:
		v.display.Clear()
		return toNext, nil

	case instruction.Return:
		return v.executeReturn()

	case instruction.SetHighResolution:
		v.display.SetHighResolution(ins.Enabled)
		v.logger.Debug("Resolution changed",
			log.Int("width", v.display.Width()),
			log.Int("height", v.display.Height()))
		return toNext, nil

	case instruction.Branch:
		return v.executeBranch(ins), nil

	case instruction.Load:
		if err := v.executeLoad(ins); err != nil {
			return transition{}, err
		}
		return toNext, nil

	case instruction.Logical:
		v.executeLogical(ins)
		return toNext, nil

	case instruction.Arithmetic:
		if err := v.executeArithmetic(ins); err != nil {
			return transition{}, err
		}
		return toNext, nil

	case instruction.Random:
		if err := v.executeRandom(ins); err != nil {
			return transition{}, err
		}
		return toNext, nil

	case instruction.Draw:
		v.executeDraw(ins)
		return toNext, nil

	case instruction.LoadKey:
		return v.executeLoadKey(ins), nil

	case instruction.AddI:
		v.Index += uint16(v.Registers[ins.Register])
		return toNext, nil

	default:
		return transition{}, fmt.Errorf("unsupported instruction type %T", ins)
	}
}
