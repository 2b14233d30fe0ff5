// Package options contains the program options.
package options

import (
	"github.com/retroenv/retrogolib/set"
)

const (
	// DefaultSpeed is the default number of instructions per second.
	DefaultSpeed = 700
	// DefaultTraceLimit is the default number of steps kept in a trace.
	DefaultTraceLimit = 100000
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `arg:"positional" usage:"ROM file to run"`
	Config string `flag:"c" usage:"TOML machine configuration file"`
	Trace  string `flag:"trace" usage:"write a CBOR trace of every step to the file"`
	// TraceLimit is the number of recorded steps, later steps are only counted.
	TraceLimit int `flag:"tracelimit" usage:"number of steps to record, 0 records all" default:"100000"`
}

// Machine contains the options of the emulated machine.
type Machine struct {
	Dialect string `flag:"d" usage:"dialect: chip8, chip48, superchip (default: auto-detect)"`
	Speed   int    `flag:"speed" usage:"instructions per second, 0 is unthrottled" default:"700"`
	Steps   uint64 `flag:"steps" usage:"stop after the number of instructions, 0 runs until halted"`
	Seed    int64  `flag:"seed" usage:"seed of the random number generator"`
	NoCache bool   `flag:"nocache" usage:"decode every instruction on every fetch"`

	// Seeded is set when a seed was configured, otherwise entropy comes from crypto/rand.
	Seeded bool
}

// Flags contains behavior options.
type Flags struct {
	Disasm bool `flag:"disasm" usage:"print a disassembly of the executed code after the run"`
	Dump   bool `flag:"dump" usage:"print the display after the run"`
	Debug  bool `flag:"debug" usage:"enable debug logging"`
	Quiet  bool `flag:"q" usage:"quiet mode"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Machine
	Flags

	// Explicit contains the names of the flags that were passed on the command line.
	Explicit set.Set[string]
}

// New returns program options with the defaults set.
func New() Program {
	return Program{
		Parameters: Parameters{
			TraceLimit: DefaultTraceLimit,
		},
		Machine: Machine{
			Speed: DefaultSpeed,
		},
		Explicit: set.New[string](),
	}
}
