package vm

import (
	"bytes"
	"testing"

	"github.com/retroenv/retrochip8/internal/dialect"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestProgramCounterTransitions(t *testing.T) {
	tests := []struct {
		name     string
		opcodes  []uint16
		expected uint16
	}{
		{"next", []uint16{0x6001}, 0x202},
		{"skip taken", []uint16{0x3000}, 0x204},
		{"skip not taken", []uint16{0x3001}, 0x202},
		{"inverted skip taken", []uint16{0x4001}, 0x204},
		{"jump", []uint16{0x1ABC}, 0xABC},
		{"call", []uint16{0x2456}, 0x456},
		{"key wait pauses", []uint16{0xF00A}, 0x200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVM(t, dialect.Chip8, tt.opcodes...)
			steps(t, v, 1)
			assert.Equal(t, tt.expected, v.PC)
		})
	}
}

func TestClearScreenScenario(t *testing.T) {
	v := newTestVM(t, dialect.Chip8, 0x00E0)
	v.Display().Draw([]byte{0xFF}, 0, 0)

	steps(t, v, 1)
	assert.Equal(t, uint16(0x202), v.PC)
	assert.False(t, v.Display().Pixel(0, 0))
	assert.Equal(t, uint64(1), v.Cycles())
}

func TestLoadAddScenario(t *testing.T) {
	v := newTestVM(t, dialect.Chip8, 0x6A05, 0x7A02)
	v.Registers[0xF] = 0x55

	steps(t, v, 2)
	assert.Equal(t, uint8(0x07), v.Registers[0xA])
	assert.Equal(t, uint16(0x204), v.PC)
	// the immediate add does not touch the flag
	assert.Equal(t, uint8(0x55), v.Registers[0xF])
}

func TestAddCarryScenario(t *testing.T) {
	v := newTestVM(t, dialect.Chip8, 0x60FF, 0x6101, 0x8014)

	steps(t, v, 3)
	assert.Equal(t, uint8(0x00), v.Registers[0])
	assert.Equal(t, uint8(0x01), v.Registers[0xF])
}

func TestSelfModifyingCode(t *testing.T) {
	v := newTestVM(t, dialect.Chip8,
		0x220A, // 200: CALL 20A
		0x606A, // 202: V0 = 6A
		0x6107, // 204: V1 = 07
		0xA20A, // 206: I = 20A
		0xF155, // 208: store V0-V1 at I
		0x6A01, // 20A: VA = 01, rewritten to VA = 07
		0x00EE, // 20C: RET
	)

	steps(t, v, 2)
	assert.Equal(t, uint8(0x01), v.Registers[0xA])
	_, cached := v.Instruction(0x20A)
	assert.True(t, cached)

	steps(t, v, 5)
	_, cached = v.Instruction(0x20A)
	assert.False(t, cached)
	assert.Equal(t, uint16(0x20A), v.PC)

	steps(t, v, 1)
	assert.Equal(t, uint8(0x07), v.Registers[0xA])
}

func TestSelfModifyingSecondByte(t *testing.T) {
	v := newTestVM(t, dialect.Chip8,
		0x1206, // 200: JP 206
		0x6A01, // 202: VA = 01, second byte rewritten
		0x1208, // 204: JP 208
		0x6A01, // 206: VA = 01
		0x6009, // 208: V0 = 09
		0xA203, // 20A: I = 203
		0xF055, // 20C: store V0 at I
		0x1202, // 20E: JP 202
	)

	// 200 -> 206 -> 208 -> 20A -> 20C -> 20E -> 202, the store lands before 202 is cached
	steps(t, v, 6)
	assert.Equal(t, uint16(0x202), v.PC)
	assert.Equal(t, uint8(0x01), v.Registers[0xA])
	_, cached := v.Instruction(0x202)
	assert.False(t, cached)

	steps(t, v, 1)
	assert.Equal(t, uint8(0x09), v.Registers[0xA])
	_, cached = v.Instruction(0x202)
	assert.True(t, cached)

	// the store hits 203, the entry at 202 covers it and has to be evicted
	steps(t, v, 4)
	_, cached = v.Instruction(0x202)
	assert.False(t, cached)

	steps(t, v, 1)
	assert.Equal(t, uint16(0x202), v.PC)
}

func TestCacheDisabledEquivalence(t *testing.T) {
	rom := program(
		0x6005, // 200: V0 = 05, immediate rewritten every loop
		0x610A, // 202: V1 = 0A
		0xA300, // 204: I = 300
		0xF133, // 206: BCD V1
		0xF165, // 208: load V0-V1
		0xC10F, // 20A: V1 = random & 0F
		0x8014, // 20C: V0 += V1
		0xF029, // 20E: I = font V0
		0xD015, // 210: draw
		0x7201, // 212: V2 += 1
		0xA201, // 214: I = 201
		0xF055, // 216: store V0 at I
		0x3205, // 218: skip when V2 == 5
		0x1200, // 21A: JP 200
		0x1200, // 21C: JP 200
	)

	newVM := func(disabled bool) *VM {
		v := New(log.NewTestLogger(t), Config{
			Dialect:      dialect.Chip48,
			Entropy:      SeededEntropy(42),
			DisableCache: disabled,
		})
		assert.NoError(t, v.LoadProgram(rom))
		return v
	}

	cached := newVM(false)
	uncached := newVM(true)

	for i := range 200 {
		errCached := cached.Step()
		errUncached := uncached.Step()
		assert.Equal(t, errCached == nil, errUncached == nil)

		if !cached.Snapshot().Equal(uncached.Snapshot()) {
			t.Fatalf("state diverged after step %d", i)
		}
		if errCached != nil {
			break
		}
	}
	assert.Equal(t, 0, uncached.CachedInstructions())
	assert.True(t, cached.CachedInstructions() > 0)
}

func TestRandomEntropy(t *testing.T) {
	v := New(log.NewTestLogger(t), Config{Entropy: bytes.NewReader([]byte{0xAB, 0xFF})})
	assert.NoError(t, v.LoadProgram(program(0xC30F, 0xC4F0, 0xC500)))

	steps(t, v, 2)
	assert.Equal(t, uint8(0x0B), v.Registers[3])
	assert.Equal(t, uint8(0xF0), v.Registers[4])

	// exhausted entropy is fatal
	assert.Error(t, v.Step())
	assert.True(t, v.Paused())
	assert.Equal(t, uint16(0x204), v.PC)
}

func TestSnapshot(t *testing.T) {
	v := newTestVM(t, dialect.Chip8, 0x6A05, 0x2206)
	steps(t, v, 2)

	snap := v.Snapshot()
	assert.Equal(t, uint64(2), snap.Cycle)
	assert.Equal(t, uint16(0x206), snap.PC)
	assert.Equal(t, uint8(0x05), snap.Registers[0xA])
	assert.Equal(t, []uint16{0x202}, snap.Stack)
	assert.Equal(t, 64, snap.DisplayWidth)
	assert.Equal(t, 32, snap.DisplayHeight)
	assert.Len(t, snap.Display, 64*32/8)

	// snapshots are copies
	v.Registers[0xA] = 0
	assert.Equal(t, uint8(0x05), snap.Registers[0xA])
	assert.False(t, snap.Equal(v.Snapshot()))

	v.Registers[0xA] = 5
	assert.True(t, snap.Equal(v.Snapshot()))

	v.WriteMemory(0x300, []byte{1})
	assert.False(t, snap.Equal(v.Snapshot()))
}
