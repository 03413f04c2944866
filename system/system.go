// Package system drives the instruction engine against wall clock time: it
// ticks the timers, couples the sound timer to the tone output, presents the
// display plane and paces execution.
package system

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chip8/audio"
	"chip8/console"
	"chip8/cpu"
	"chip8/display"
	"chip8/fault"
	"chip8/keypad"

	"github.com/retroenv/retrogolib/log"
)

// Options controls timing of a run.
type Options struct {
	// BatchSize is the number of instructions executed between pauses.
	BatchSize int

	// Pause is the real time sleep after each batch.
	Pause time.Duration

	// TimerDivider is the number of steps per timer decrement.
	TimerDivider int

	// MaxSteps stops the run after that many instructions, 0 runs until the
	// program ends or the display is closed.
	MaxSteps uint64

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// DefaultOptions returns 10 instructions per 20ms and a timer decrement
// every 8th instruction.
func DefaultOptions() Options {
	return Options{
		BatchSize:    10,
		Pause:        20 * time.Millisecond,
		TimerDivider: 8,
	}
}

// System definition.
type System struct {
	CPU   *cpu.CPU
	Plane display.Plane

	display display.Display
	keypad  keypad.Keypad
	beeper  audio.Beeper
	console console.Console
	logger  *log.Logger
	opts    Options

	timers   timers
	sounding bool

	// status line for viewers running in other goroutines, refreshed after
	// every batch
	mu     sync.Mutex
	status string

	now   func() time.Time
	sleep func(time.Duration)
}

// New returns a system running c against the given collaborators. con may be
// nil when no status output is wanted.
func New(c *cpu.CPU, disp display.Display, keys keypad.Keypad, beeper audio.Beeper,
	con console.Console, logger *log.Logger, opts Options) *System {

	defaults := DefaultOptions()
	if opts.BatchSize < 1 {
		opts.BatchSize = defaults.BatchSize
	}
	if opts.TimerDivider < 1 {
		opts.TimerDivider = defaults.TimerDivider
	}
	if beeper == nil {
		beeper = audio.Silent{}
	}

	sys := &System{
		CPU:     c,
		display: disp,
		keypad:  keys,
		beeper:  beeper,
		console: con,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
		sleep:   time.Sleep,
	}
	sys.timers.divider = opts.TimerDivider
	sys.updateStatus()
	return sys
}

// Status returns the register dump taken after the last executed batch. It
// is safe to call from any goroutine.
func (sys *System) Status() string {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return sys.status
}

// Run executes instructions until the program ends, the display is closed,
// the context is cancelled or the step limit is reached. Ending the program
// with an unknown opcode is a clean termination and returns no error, stack
// faults return the fault.
func (sys *System) Run(ctx context.Context) (res Result, err error) {
	start := sys.now()

	defer func() {
		res.Elapsed = sys.now().Sub(start)
		if sys.sounding {
			sys.beeper.StopTone()
			sys.sounding = false
		}
		sys.updateStatus()
		sys.logger.Info("Run finished",
			log.Stringer("reason", res.Reason),
			log.Int("instructions", int(res.Instructions)),
			log.String("elapsed", res.Elapsed.String()),
			log.Int("instructions_per_second", int(res.InstructionsPerSecond())))
		sys.writeConsole(fmt.Sprintf("%s after %d instructions, %.0f instructions/s\n",
			res.Reason, res.Instructions, res.InstructionsPerSecond()))
	}()

	for {
		select {
		case <-ctx.Done():
			res.Reason = ReasonCancelled
			return res, nil
		default:
		}

		if !sys.display.IsOpen() {
			res.Reason = ReasonClosed
			return res, nil
		}
		if sys.opts.MaxSteps > 0 && res.Instructions >= sys.opts.MaxSteps {
			res.Reason = ReasonStepLimit
			return res, nil
		}

		if err := sys.step(); err != nil {
			if fault.IsHalt(err) {
				res.Reason = ReasonHalted
				return res, nil
			}
			res.Reason = ReasonFault
			return res, err
		}
		res.Instructions++

		if res.Instructions%uint64(sys.opts.BatchSize) == 0 {
			sys.updateStatus()
			if sys.opts.Pause > 0 {
				slept := sys.now()
				sys.sleep(sys.opts.Pause)
				sys.logger.Debug("Slept", log.Duration("elapsed", sys.now().Sub(slept)))
			}
		}
	}
}

// single cpu step:
func (sys *System) step() error {
	sys.display.PollEvents()
	keys := sys.keypad.Snapshot()

	sys.CPU.DT, sys.CPU.ST = sys.timers.tick(sys.CPU.DT, sys.CPU.ST)
	sys.coupleSound()

	res, err := sys.CPU.Step(&sys.Plane, keys)
	if err != nil {
		if !fault.IsHalt(err) {
			sys.dumpFault(err)
		} else {
			sys.logger.Debug("Program ended",
				log.Hex("address", res.Address),
				log.Hex("opcode", res.Opcode))
		}
		return err
	}

	if sys.opts.Trace {
		sys.logger.Debug("Executed",
			log.Hex("address", res.Address),
			log.Hex("opcode", res.Opcode),
			log.String("instruction", cpu.Disasm(res.Opcode)))
	}

	if res.Redraw {
		if err := sys.display.Present(&sys.Plane); err != nil {
			return fmt.Errorf("presenting display: %w", err)
		}
	}
	return nil
}

// coupleSound starts the tone when the sound timer became non-zero and stops
// it when it reached zero.
func (sys *System) coupleSound() {
	switch {
	case sys.CPU.ST > 0 && !sys.sounding:
		sys.sounding = true
		sys.logger.Debug("Sound on", log.Int("timer", int(sys.CPU.ST)))
		sys.beeper.StartTone()

	case sys.CPU.ST == 0 && sys.sounding:
		sys.sounding = false
		sys.logger.Debug("Sound off")
		sys.beeper.StopTone()
	}
}

// dumpFault logs the machine state and the most recent instructions.
func (sys *System) dumpFault(err error) {
	sys.logger.Error("Fault", log.Err(err))
	sys.logger.Error("State", log.String("registers", sys.CPU.PrintState()))
	for _, entry := range sys.CPU.Trace() {
		sys.logger.Error("Trace", log.String("instruction", entry.String()))
	}
	sys.writeConsole(err.Error() + "\n" + sys.CPU.PrintState() + "\n" + sys.CPU.TraceDump())
}

func (sys *System) updateStatus() {
	status := sys.CPU.DumpRegisters()
	sys.mu.Lock()
	sys.status = status
	sys.mu.Unlock()
}

func (sys *System) writeConsole(msg string) {
	if sys.console != nil {
		_ = sys.console.WriteConsole(msg)
	}
}
