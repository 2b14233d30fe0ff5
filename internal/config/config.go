// Package config handles application configuration and setup
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// File represents a TOML machine configuration file.
type File struct {
	Machine Machine `toml:"machine"`
	Run     Run     `toml:"run"`
}

// Machine configures the emulated machine. Unset values keep the program defaults.
type Machine struct {
	Dialect string `toml:"dialect"`
	Speed   *int   `toml:"speed"`
	Seed    *int64 `toml:"seed"`
	Cache   *bool  `toml:"cache"`
}

// Run configures the run of the program.
type Run struct {
	Steps *uint64 `toml:"steps"`
}

// Load parses a machine configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if f.Machine.Speed != nil && *f.Machine.Speed < 0 {
		return nil, fmt.Errorf("invalid speed %d in %s", *f.Machine.Speed, path)
	}
	return &f, nil
}

// Apply sets all option values of the file that were not passed explicitly on
// the command line.
func (f *File) Apply(opts *options.Program) {
	explicit := func(name string) bool {
		return opts.Explicit != nil && opts.Explicit.Contains(name)
	}

	if f.Machine.Dialect != "" && !explicit("d") {
		opts.Dialect = f.Machine.Dialect
	}
	if f.Machine.Speed != nil && !explicit("speed") {
		opts.Speed = *f.Machine.Speed
	}
	if f.Machine.Seed != nil && !explicit("seed") {
		opts.Seed = *f.Machine.Seed
		opts.Seeded = true
	}
	if f.Machine.Cache != nil && !explicit("nocache") {
		opts.NoCache = !*f.Machine.Cache
	}
	if f.Run.Steps != nil && !explicit("steps") {
		opts.Steps = *f.Run.Steps
	}
}
