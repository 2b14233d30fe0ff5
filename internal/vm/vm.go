// Package vm implements the CHIP-8 execution engine.
//
// A VM owns the complete machine state: memory, registers, index register,
// program counter, call stack, timers, keypad, display, RPL user flags and
// the decoded instruction cache. Step executes exactly one instruction and is
// the only operation that advances the machine. The VM is not safe for
// concurrent use; callers that inspect state from another goroutine must
// serialize access with Step.
package vm

import (
	"crypto/rand"
	"fmt"
	"io"
	mathrand "math/rand"
	"time"

	"github.com/retroenv/retrochip8/internal/cache"
	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/dialect"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout constants.
const (
	// MemorySize is the size of the addressable memory.
	MemorySize = 0x1000

	// ProgramStart is the address where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits between ProgramStart and the end of memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RPLSize is the number of RPL user flag bytes.
	RPLSize = 8

	registerCount = 16
	addressMask   = MemorySize - 1
)

// KeySource reports a key that transitioned to pressed. The key wait instruction
// polls it on every attempt.
type KeySource interface {
	PressedKey() (uint8, bool)
}

// Config contains the settings of a VM.
type Config struct {
	Dialect dialect.Dialect

	// Entropy supplies the bytes for the random instruction. Defaults to crypto/rand.
	Entropy io.Reader
	// Keys overrides the key wait source. Defaults to the rising edges of the keypad.
	Keys KeySource
	// DisableCache decodes every instruction on every fetch.
	DisableCache bool
}

// SeededEntropy returns a deterministic entropy source for reproducible runs.
func SeededEntropy(seed int64) io.Reader {
	return mathrand.New(mathrand.NewSource(seed))
}

// VM is a CHIP-8 virtual machine.
type VM struct {
	// Registers V0-VF, VF doubles as carry, borrow and collision flag.
	Registers [registerCount]uint8
	// Index is the I register.
	Index uint16
	// PC is the program counter.
	PC uint16
	// Stack holds the addresses of the active call instructions.
	Stack []uint16

	DelayTimer uint8
	SoundTimer uint8

	// RPL are the user flags, they survive program loads.
	RPL [RPLSize]uint8

	memory  [MemorySize]byte
	cache   *cache.Cache
	display *display.Display
	keypad  *keypad.Keypad
	keys    KeySource
	entropy io.Reader
	dialect dialect.Dialect
	logger  *log.Logger

	paused     bool
	waitingKey bool
	cycles     uint64
	lastCycle  time.Duration
}

// New returns a new VM with the font loaded. The VM is paused until a program is loaded.
func New(logger *log.Logger, cfg Config) *VM {
	v := &VM{
		cache:   cache.New(cfg.DisableCache),
		display: display.New(),
		keypad:  keypad.New(),
		keys:    cfg.Keys,
		entropy: cfg.Entropy,
		dialect: cfg.Dialect,
		logger:  logger,
		paused:  true,
	}
	if v.entropy == nil {
		v.entropy = rand.Reader
	}
	if v.keys == nil {
		v.keys = v.keypad
	}
	v.reset()
	return v
}

// LoadProgram resets the machine, copies the program to ProgramStart and resumes execution.
// The RPL user flags and the dialect are kept.
func (v *VM) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	v.reset()
	copy(v.memory[ProgramStart:], program)
	v.paused = false

	v.logger.Debug("Program loaded",
		log.Int("size", len(program)),
		log.Stringer("dialect", v.dialect))
	return nil
}

// reset initializes all state except the RPL flags and dialect.
func (v *VM) reset() {
	v.Registers = [registerCount]uint8{}
	v.Index = 0
	v.PC = ProgramStart
	v.Stack = v.Stack[:0]
	v.DelayTimer = 0
	v.SoundTimer = 0
	v.cycles = 0
	v.lastCycle = 0
	v.waitingKey = false

	v.memory = [MemorySize]byte{}
	copy(v.memory[FontAddress:], font[:])
	v.cache.Flush()
	v.display.Reset()
	v.keypad.Reset()
}

// Dialect returns the active dialect.
func (v *VM) Dialect() dialect.Dialect {
	return v.dialect
}

// SetDialect changes the active dialect. Decoding depends on the dialect, so all
// cached instructions are evicted when it changes.
func (v *VM) SetDialect(d dialect.Dialect) {
	if d == v.dialect {
		return
	}
	v.dialect = d
	evicted := v.cache.Flush()
	v.logger.Debug("Dialect changed",
		log.Stringer("dialect", d),
		log.Int("evicted", evicted))
}

// SetKeys replaces the keypad snapshot. It should be called before every Step.
func (v *VM) SetKeys(state keypad.State) {
	v.keypad.Update(state)
}

// Keys returns the current keypad snapshot.
func (v *VM) Keys() keypad.State {
	return v.keypad.State()
}

// Display returns the display buffer.
func (v *VM) Display() *display.Display {
	return v.display
}

// TickTimers decrements the delay and sound timer, stopping at zero. It is meant to
// be called at 60 Hz independent of the instruction rate.
func (v *VM) TickTimers() {
	if v.DelayTimer > 0 {
		v.DelayTimer--
	}
	if v.SoundTimer > 0 {
		v.SoundTimer--
	}
}

// Paused returns whether Step is currently a no-op.
func (v *VM) Paused() bool {
	return v.paused
}

// Pause stops execution until Resume is called.
func (v *VM) Pause() {
	v.paused = true
}

// Resume continues execution after Pause or a fatal error.
func (v *VM) Resume() {
	v.paused = false
}

// WaitingForKey returns whether the last step stalled on the key wait instruction.
func (v *VM) WaitingForKey() bool {
	return v.waitingKey
}

// Cycles returns the number of executed instructions since the last program load.
func (v *VM) Cycles() uint64 {
	return v.cycles
}

// LastCycleDuration returns the wall time the last Step took.
func (v *VM) LastCycleDuration() time.Duration {
	return v.lastCycle
}

// Instruction returns the decoded instruction at the address if it is cached.
// It never decodes, so addresses that were not executed yet are reported as unknown.
func (v *VM) Instruction(address uint16) (instruction.Instruction, bool) {
	return v.cache.Lookup(address)
}

// CachedInstructions returns the number of decoded instructions in the cache.
func (v *VM) CachedInstructions() int {
	return v.cache.Len()
}

// ReadMemory returns a copy of length bytes starting at the address, wrapping at the
// end of memory.
func (v *VM) ReadMemory(address uint16, length int) []byte {
	data := make([]byte, length)
	for i := range data {
		data[i] = v.memory[(int(address)+i)&addressMask]
	}
	return data
}

// WriteMemory writes data starting at the address, wrapping at the end of memory,
// and evicts the cached instructions that overlap the written bytes.
func (v *VM) WriteMemory(address uint16, data []byte) {
	for i, b := range data {
		v.memory[(int(address)+i)&addressMask] = b
	}
	v.invalidate(address, len(data))
}

// invalidate evicts cached instructions overlapping length bytes from the address,
// splitting the range when it wraps at the end of memory.
func (v *VM) invalidate(address uint16, length int) {
	start := int(address) & addressMask
	end := start + length
	if end <= MemorySize {
		v.cache.Invalidate(start, end)
		return
	}
	v.cache.Invalidate(start, MemorySize)
	v.cache.Invalidate(0, end-MemorySize)
}

// fetch reads the big endian opcode at the address.
func (v *VM) fetch(address uint16) uint16 {
	return uint16(v.memory[address])<<8 | uint16(v.memory[address+1])
}

// decode is the cache miss handler for the current dialect.
func (v *VM) decode(address uint16) (instruction.Instruction, error) {
	opcode := v.fetch(address)
	ins, ok := decoder.Decode(opcode, v.dialect)
	if !ok {
		return nil, &DecodeError{Opcode: opcode, Address: address, Dialect: v.dialect}
	}
	return ins, nil
}
