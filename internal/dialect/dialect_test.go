package dialect

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Dialect
		wantErr bool
	}{
		{"canonical chip8", "chip8", Chip8, false},
		{"upper case with dash", "CHIP-48", Chip48, false},
		{"short superchip", "schip", SuperChip, false},
		{"padded", "  superchip ", SuperChip, false},
		{"unknown", "xochip", Chip8, true},
		{"empty", "", Chip8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	for _, name := range Names() {
		d, err := FromString(name)
		assert.NoError(t, err)
		assert.Equal(t, name, d.String())
	}
	assert.Equal(t, "dialect(9)", Dialect(9).String())
}

func TestQuirks(t *testing.T) {
	tests := []struct {
		dialect         Dialect
		shiftsInPlace   bool
		jumpsWithOffset bool
		incrementsIndex bool
		highResolution  bool
		rplFlags        bool
	}{
		{Chip8, false, false, false, false, false},
		{Chip48, true, true, true, false, false},
		{SuperChip, true, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String(), func(t *testing.T) {
			assert.Equal(t, tt.shiftsInPlace, tt.dialect.ShiftsInPlace())
			assert.Equal(t, tt.jumpsWithOffset, tt.dialect.JumpsWithOffset())
			assert.Equal(t, tt.incrementsIndex, tt.dialect.IncrementsIndex())
			assert.Equal(t, tt.highResolution, tt.dialect.HighResolution())
			assert.Equal(t, tt.rplFlags, tt.dialect.RPLFlags())
		})
	}
}
