package vm

import (
	"bytes"
	"testing"

	"github.com/retroenv/retrochip8/internal/dialect"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// program encodes the opcodes as big endian program bytes.
func program(opcodes ...uint16) []byte {
	data := make([]byte, 0, len(opcodes)*2)
	for _, opcode := range opcodes {
		data = append(data, byte(opcode>>8), byte(opcode))
	}
	return data
}

// newTestVM returns a VM of the dialect with the opcodes loaded at ProgramStart.
func newTestVM(t *testing.T, d dialect.Dialect, opcodes ...uint16) *VM {
	t.Helper()

	v := New(log.NewTestLogger(t), Config{
		Dialect: d,
		Entropy: bytes.NewReader(bytes.Repeat([]byte{0xA5}, 64)),
	})
	assert.NoError(t, v.LoadProgram(program(opcodes...)))
	return v
}

// steps executes n instructions and fails the test on any error.
func steps(t *testing.T, v *VM, n int) {
	t.Helper()

	for i := range n {
		if err := v.Step(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}
}

// fixedKeys is a key source that reports the queued keys one by one.
type fixedKeys struct {
	keys []uint8
}

func (f *fixedKeys) PressedKey() (uint8, bool) {
	if len(f.keys) == 0 {
		return 0, false
	}
	key := f.keys[0]
	f.keys = f.keys[1:]
	return key, true
}
