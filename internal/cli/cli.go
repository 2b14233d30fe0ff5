// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses the command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	opts := options.New()
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if opts.Speed < 0 {
		return opts, fmt.Errorf("invalid speed %d, must not be negative", opts.Speed)
	}
	if opts.TraceLimit < 0 {
		return opts, fmt.Errorf("invalid trace limit %d, must not be negative", opts.TraceLimit)
	}

	flags.Visit(func(f *flag.Flag) {
		opts.Explicit.Add(f.Name)
	})
	opts.Seeded = opts.Explicit.Contains("seed")
	opts.Input = args[0]

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Config, "c", "", "name of the TOML machine configuration file")
	flags.StringVar(&opts.Trace, "trace", "", "name of the file to write a CBOR trace of every executed instruction to")
	flags.IntVar(&opts.TraceLimit, "tracelimit", options.DefaultTraceLimit, "number of steps to record in the trace, 0 records all steps")
	flags.StringVar(&opts.Dialect, "d", "", "dialect to run (chip8, chip48, superchip) - if not auto-detected from file extension")
	flags.IntVar(&opts.Speed, "speed", options.DefaultSpeed, "instructions per second, 0 runs unthrottled")
	flags.Uint64Var(&opts.Steps, "steps", 0, "stop after the given number of instructions, 0 runs until the program halts")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed for the random number instruction, makes runs reproducible")
	flags.BoolVar(&opts.NoCache, "nocache", false, "disable the decoded instruction cache")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the executed code after the run")
	flags.BoolVar(&opts.Dump, "dump", false, "print the display as text after the run")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
