// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/dialect"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/trace"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete run workflow: configuration, loading, running
// and writing of the requested outputs. Outputs are also written when the program
// halted with an error, the error is returned afterwards.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, output io.Writer) error {
	if opts.Config != "" {
		file, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		file.Apply(&opts)
	}

	dia, err := detector.New(logger).Detect(opts)
	if err != nil {
		return err
	}

	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	machine, err := setupMachine(logger, opts, dia, rom)
	if err != nil {
		return err
	}
	printInfo(logger, opts, dia, rom)

	runOpts := runner.Options{
		Speed: opts.Speed,
		Steps: opts.Steps,
	}
	var recorder *trace.Recorder
	if opts.Trace != "" {
		recorder = trace.NewRecorder(dia, rom, opts.TraceLimit)
		runOpts.Recorder = recorder
	}

	runErr := runner.Run(ctx, logger, machine, runOpts)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		runErr = fmt.Errorf("program halted at address %04X after %d instructions: %w",
			machine.PC, machine.Cycles(), runErr)
	}

	if err := writeOutputs(logger, opts, machine, rom, recorder, output); err != nil {
		return err
	}
	return runErr
}

func setupMachine(logger *log.Logger, opts options.Program, dia dialect.Dialect, rom []byte) (*vm.VM, error) {
	cfg := vm.Config{
		Dialect:      dia,
		DisableCache: opts.NoCache,
	}
	if opts.Seeded {
		cfg.Entropy = vm.SeededEntropy(opts.Seed)
	}

	machine := vm.New(logger, cfg)
	if err := machine.LoadProgram(rom); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return machine, nil
}

func writeOutputs(logger *log.Logger, opts options.Program, machine *vm.VM, rom []byte,
	recorder *trace.Recorder, output io.Writer) error {
	if opts.Dump {
		if _, err := fmt.Fprint(output, machine.Display().String()); err != nil {
			return fmt.Errorf("writing display: %w", err)
		}
	}

	if opts.Disasm {
		end := vm.ProgramStart + uint16(len(rom))
		if err := disasm.New(machine).Write(output, vm.ProgramStart, end); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
	}

	if recorder != nil {
		tr := recorder.Trace()
		if tr.Dropped > 0 {
			logger.Warn("Trace limit reached, later steps were not recorded",
				log.Int("recorded", len(tr.Steps)),
				log.Int("dropped", int(tr.Dropped)))
		}
		data, err := trace.Marshal(tr)
		if err != nil {
			return fmt.Errorf("encoding trace: %w", err)
		}
		if err := os.WriteFile(opts.Trace, data, 0o644); err != nil {
			return fmt.Errorf("writing trace file %s: %w", opts.Trace, err)
		}
	}
	return nil
}

// printInfo prints the information about the ROM that is run.
func printInfo(logger *log.Logger, opts options.Program, dia dialect.Dialect, rom []byte) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Stringer("dialect", dia),
		log.Int("size", len(rom)),
	)
	if opts.Steps == 0 {
		logger.Info("No step limit set, press Ctrl+C to stop")
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Debug("Build", log.String("date", date))
	}
}
