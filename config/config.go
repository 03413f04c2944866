// Package config handles command line options.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"chip8/logger"
	"chip8/system"
)

// user interfaces
const (
	UITerminal = "terminal"
	UISDL      = "sdl"
	UIHeadless = "headless"
)

var validUIs = []string{UITerminal, UISDL, UIHeadless}

// size of one display pixel in the sdl window
const defaultScale = 16

// Options holds all command line options.
type Options struct {
	ROM string

	UI    string
	Scale int

	BatchSize    int
	Pause        time.Duration
	TimerDivider int
	MaxSteps     uint64
	Seed         int64

	Wav  string
	Mute bool

	Disasm    bool
	Trace     bool
	StatsView bool

	LogFile string
	Debug   bool
	Quiet   bool
}

// System returns the timing options of the run.
func (o Options) System() system.Options {
	return system.Options{
		BatchSize:    o.BatchSize,
		Pause:        o.Pause,
		TimerDivider: o.TimerDivider,
		MaxSteps:     o.MaxSteps,
		Trace:        o.Trace,
	}
}

// Logger returns the logger configuration. Only the terminal UI logs to a
// file, it owns the screen.
func (o Options) Logger() logger.Config {
	cfg := logger.Config{
		Debug: o.Debug || o.Trace,
		Quiet: o.Quiet,
	}
	if o.UI == UITerminal && !o.Disasm {
		cfg.Path = o.LogFile
	}
	return cfg
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and all flag defaults.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: chip8 [options] <rom file>\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseFlags parses the process arguments.
func ParseFlags() (Options, error) {
	return Parse(os.Args[1:])
}

// Parse parses args, which must not include the program name.
func Parse(args []string) (Options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	switch {
	case len(rest) == 0:
		return opts, &UsageError{flags: flags, msg: "no rom file given"}
	case len(rest) > 1:
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("argument %s found after rom file, please pass the rom file as last argument", rest[1]),
		}
	}
	opts.ROM = rest[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *Options) error {
	opts.UI = strings.ToLower(opts.UI)

	valid := false
	for _, ui := range validUIs {
		if opts.UI == ui {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("unsupported ui: %s. Valid options: %s", opts.UI, strings.Join(validUIs, ", "))
	}

	switch {
	case opts.Scale < 1:
		return fmt.Errorf("scale must be positive, got %d", opts.Scale)
	case opts.BatchSize < 1:
		return fmt.Errorf("speed must be positive, got %d", opts.BatchSize)
	case opts.TimerDivider < 1:
		return fmt.Errorf("timer divider must be positive, got %d", opts.TimerDivider)
	case opts.Pause < 0:
		return fmt.Errorf("pause must not be negative, got %s", opts.Pause)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	defaults := system.DefaultOptions()

	flags.StringVar(&opts.UI, "ui", UITerminal, "user interface (terminal/sdl/headless)")
	flags.IntVar(&opts.Scale, "scale", defaultScale, "sdl window scale factor")
	flags.IntVar(&opts.BatchSize, "speed", defaults.BatchSize, "instructions executed between pauses")
	flags.DurationVar(&opts.Pause, "pause", defaults.Pause, "pause after each batch of instructions")
	flags.IntVar(&opts.TimerDivider, "timer", defaults.TimerDivider, "instructions per timer decrement")
	flags.Uint64Var(&opts.MaxSteps, "steps", 0, "stop after this many instructions, 0 runs until the program ends")
	flags.Int64Var(&opts.Seed, "seed", 0, "random seed, 0 seeds from the clock")
	flags.StringVar(&opts.Wav, "wav", "", "record the tone to this wav file")
	flags.BoolVar(&opts.Mute, "mute", false, "do not open an audio device")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print the disassembly of the rom and exit")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.StatsView, "statsview", false, "serve runtime statistics on localhost:12600")
	flags.StringVar(&opts.LogFile, "log", "chip8.log", "log file used by the terminal ui")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
