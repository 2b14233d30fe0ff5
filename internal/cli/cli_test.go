package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     options.Machine
		explicit []string
	}{
		{
			name: "default flags",
			args: []string{"prog", "game.ch8"},
			want: options.Machine{Speed: options.DefaultSpeed},
		},
		{
			name:     "dialect flag",
			args:     []string{"prog", "-d", "superchip", "game.ch8"},
			want:     options.Machine{Dialect: "superchip", Speed: options.DefaultSpeed},
			explicit: []string{"d"},
		},
		{
			name:     "machine flags",
			args:     []string{"prog", "-speed", "0", "-steps", "100", "-nocache", "game.ch8"},
			want:     options.Machine{Steps: 100, NoCache: true},
			explicit: []string{"speed", "steps", "nocache"},
		},
		{
			name:     "seed flag",
			args:     []string{"prog", "-seed", "7", "game.ch8"},
			want:     options.Machine{Speed: options.DefaultSpeed, Seed: 7, Seeded: true},
			explicit: []string{"seed"},
		},
		{
			name:     "zero seed is still a seed",
			args:     []string{"prog", "-seed", "0", "game.ch8"},
			want:     options.Machine{Speed: options.DefaultSpeed, Seeded: true},
			explicit: []string{"seed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, "game.ch8", got.Input)
			assert.Equal(t, tt.want, got.Machine)
			assert.Equal(t, len(tt.explicit), len(got.Explicit))
			for _, name := range tt.explicit {
				assert.True(t, got.Explicit.Contains(name))
			}
		})
	}
}

func TestParseFlagsOutputs(t *testing.T) {
	got, err := parseArgs("prog", []string{"-c", "m.toml", "-trace", "out.cbor", "-disasm", "-dump", "-debug", "game.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, "m.toml", got.Config)
	assert.Equal(t, "out.cbor", got.Trace)
	assert.Equal(t, options.DefaultTraceLimit, got.TraceLimit)
	assert.True(t, got.Disasm)
	assert.True(t, got.Dump)
	assert.True(t, got.Debug)
	assert.False(t, got.Quiet)
}

func TestParseFlagsTraceLimit(t *testing.T) {
	got, err := parseArgs("prog", []string{"-trace", "out.cbor", "-tracelimit", "0", "game.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, 0, got.TraceLimit)
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"no file", []string{}, true},
		{"unknown flag", []string{"-unknown", "game.ch8"}, true},
		{"flag after file", []string{"game.ch8", "-dump"}, true},
		{"negative speed", []string{"-speed", "-5", "game.ch8"}, false},
		{"negative trace limit", []string{"-tracelimit", "-1", "game.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs("prog", tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}
