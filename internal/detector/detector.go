// Package detector handles dialect detection.
package detector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/dialect"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles dialect detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new dialect detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the dialect from options or file auto-detection.
// It first checks if a dialect is explicitly specified in options, otherwise
// attempts to detect the dialect from the input filename extension.
func (d *Detector) Detect(opts options.Program) (dialect.Dialect, error) {
	if opts.Dialect != "" {
		dia, err := dialect.FromString(opts.Dialect)
		if err != nil {
			return 0, fmt.Errorf("selecting dialect: %w", err)
		}
		return dia, nil
	}

	dia := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected dialect",
		log.Stringer("dialect", dia),
		log.String("file", opts.Input))
	return dia, nil
}

// detectFromFile determines the dialect based on file extension.
func (d *Detector) detectFromFile(filename string) dialect.Dialect {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".c48", ".ch48":
		return dialect.Chip48
	case ".sc8", ".schip":
		return dialect.SuperChip
	default:
		// .ch8 and unknown extensions run as original CHIP-8
		return dialect.Chip8
	}
}
