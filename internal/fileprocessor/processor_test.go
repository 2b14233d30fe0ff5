package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// testROM draws the glyph of digit 0 at the top left corner and spins.
var testROM = []byte{
	0x60, 0x00, // ld V0, $00
	0xF0, 0x29, // ld F, V0
	0xD0, 0x05, // drw V0, V0, $5
	0x12, 0x06, // jp $206
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func testOptions(input string) options.Program {
	opts := options.New()
	opts.Input = input
	opts.Speed = 0
	opts.Steps = 10
	opts.Quiet = true
	return opts
}

func TestProcessFileDump(t *testing.T) {
	opts := testOptions(writeFile(t, "game.ch8", testROM))
	opts.Dump = true

	var buf bytes.Buffer
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf))

	rows := strings.Split(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(rows[0], "####."))
	assert.True(t, strings.HasPrefix(rows[1], "#..#."))
	assert.True(t, strings.HasPrefix(rows[5], "....."))
}

func TestProcessFileDisasm(t *testing.T) {
	opts := testOptions(writeFile(t, "game.ch8", testROM))
	opts.Disasm = true

	var buf bytes.Buffer
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf))

	listing := buf.String()
	assert.True(t, strings.HasPrefix(listing, "Start:\n"))
	assert.True(t, strings.Contains(listing, "_label_0206:"))
	assert.False(t, strings.Contains(listing, disasm.Unknown))
}

func TestProcessFileTrace(t *testing.T) {
	opts := testOptions(writeFile(t, "game.sc8", testROM))
	opts.Trace = filepath.Join(t.TempDir(), "run.cbor")
	opts.Seeded = true

	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{}))

	data, err := os.ReadFile(opts.Trace)
	assert.NoError(t, err)
	tr, err := trace.Unmarshal(data)
	assert.NoError(t, err)
	assert.Equal(t, "superchip", tr.Dialect)
	assert.Len(t, tr.Steps, 10)
}

func TestProcessFileTraceLimit(t *testing.T) {
	opts := testOptions(writeFile(t, "game.ch8", testROM))
	opts.Trace = filepath.Join(t.TempDir(), "run.cbor")
	opts.TraceLimit = 4

	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{}))

	data, err := os.ReadFile(opts.Trace)
	assert.NoError(t, err)
	tr, err := trace.Unmarshal(data)
	assert.NoError(t, err)
	assert.Len(t, tr.Steps, 4)
	assert.Equal(t, uint64(6), tr.Dropped)
}

func TestProcessFileConfig(t *testing.T) {
	configPath := writeFile(t, "machine.toml", []byte("[machine]\ndialect = \"chip48\"\n\n[run]\nsteps = 3\n"))
	opts := testOptions(writeFile(t, "game.ch8", testROM))
	opts.Steps = 0
	opts.Config = configPath
	opts.Trace = filepath.Join(t.TempDir(), "run.cbor")

	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{}))

	data, err := os.ReadFile(opts.Trace)
	assert.NoError(t, err)
	tr, err := trace.Unmarshal(data)
	assert.NoError(t, err)
	assert.Equal(t, "chip48", tr.Dialect)
	assert.Len(t, tr.Steps, 3)
}

func TestProcessFileHalted(t *testing.T) {
	opts := testOptions(writeFile(t, "game.ch8", []byte{0x60, 0x01, 0x00, 0xEE}))
	opts.Dump = true

	var buf bytes.Buffer
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &buf)
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.ErrorContains(t, err, "program halted at address 0202 after 1 instructions")
	// outputs are written for halted programs
	assert.NotEmpty(t, buf.String())
}

func TestProcessFileErrors(t *testing.T) {
	opts := testOptions(filepath.Join(t.TempDir(), "missing.ch8"))
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading ROM")

	opts = testOptions(writeFile(t, "game.ch8", testROM))
	opts.Dialect = "unknown"
	err = ProcessFile(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unsupported dialect")

	opts = testOptions(writeFile(t, "game.ch8", testROM))
	opts.Config = filepath.Join(t.TempDir(), "missing.toml")
	err = ProcessFile(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading configuration")
}
