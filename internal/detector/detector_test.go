package detector

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/dialect"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name        string
		dialectOpt  string
		inputFile   string
		wantDialect dialect.Dialect
	}{
		{
			name:        "explicit superchip option",
			dialectOpt:  "superchip",
			inputFile:   "game.ch8",
			wantDialect: dialect.SuperChip,
		},
		{
			name:        "explicit option alias",
			dialectOpt:  "CHIP-48",
			inputFile:   "game.sc8",
			wantDialect: dialect.Chip48,
		},
		{
			name:        "detect from .ch8 extension",
			inputFile:   "game.ch8",
			wantDialect: dialect.Chip8,
		},
		{
			name:        "detect from .c48 extension",
			inputFile:   "game.c48",
			wantDialect: dialect.Chip48,
		},
		{
			name:        "detect from .ch48 extension",
			inputFile:   "game.CH48",
			wantDialect: dialect.Chip48,
		},
		{
			name:        "detect from .sc8 extension",
			inputFile:   "/roms/game.sc8",
			wantDialect: dialect.SuperChip,
		},
		{
			name:        "detect from .schip extension",
			inputFile:   "game.schip",
			wantDialect: dialect.SuperChip,
		},
		{
			name:        "unknown extension defaults to chip8",
			inputFile:   "game.bin",
			wantDialect: dialect.Chip8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.New()
			opts.Dialect = tt.dialectOpt
			opts.Input = tt.inputFile

			got, err := d.Detect(opts)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantDialect, got)
		})
	}
}

func TestDetectUnsupportedDialect(t *testing.T) {
	d := New(log.NewTestLogger(t))

	opts := options.New()
	opts.Dialect = "xochip"
	_, err := d.Detect(opts)
	assert.ErrorContains(t, err, "unsupported dialect")
}
