package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"chip8/audio"
	"chip8/config"
	"chip8/console"
	"chip8/cpu"
	"chip8/display"
	"chip8/keypad"
	"chip8/logger"
	"chip8/rom"
	"chip8/sdlaudio"
	"chip8/sdlwindow"
	"chip8/statsview"
	"chip8/system"
	"chip8/wavwriter"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

// number of instructions kept for fault diagnostics
const traceLength = 16

func init() {
	// sdl needs all calls on the main OS thread
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
		}
		return 1
	}

	l, logCloser, err := logger.New(opts.Logger())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = logCloser.Close() }()

	img, err := rom.Load(opts.ROM)
	if err != nil {
		l.Error("Loading rom failed", log.Err(err))
		return 1
	}

	if opts.Disasm {
		for _, line := range cpu.DisassembleProgram(img.Data, cpu.ProgramStart) {
			fmt.Println(line)
		}
		return 0
	}

	ctx := app.Context()

	switch opts.UI {
	case config.UISDL:
		err = runSDL(ctx, l, opts, img)
	case config.UIHeadless:
		err = runHeadless(ctx, l, opts, img)
	default:
		err = runTerminal(ctx, l, opts, img)
	}
	if err != nil {
		l.Error("Emulation failed", log.Err(err))
		return 1
	}
	return 0
}

// newCPU creates the cpu with the random seed from the options.
func newCPU(opts config.Options) *cpu.CPU {
	cpuOpts := []cpu.Option{cpu.WithTrace(traceLength)}
	if opts.Seed != 0 {
		cpuOpts = append(cpuOpts, cpu.WithSeed(opts.Seed))
	}
	return cpu.New(cpuOpts...)
}

// newBeeper combines the device beeper with the wav recorder when one was
// requested. The returned closers must be closed after the run.
func newBeeper(l *log.Logger, opts config.Options, device audio.Beeper) (audio.Beeper, []io.Closer, error) {
	var beepers audio.Multi
	var closers []io.Closer

	if !opts.Mute && device != nil {
		beepers = append(beepers, device)
	}
	if opts.Wav != "" {
		w, err := wavwriter.Create(opts.Wav)
		if err != nil {
			return nil, nil, err
		}
		l.Info("Recording tone", log.String("file", opts.Wav))
		beepers = append(beepers, w)
		closers = append(closers, w)
	}

	if len(beepers) == 0 {
		return audio.Silent{}, closers, nil
	}
	return beepers, closers, nil
}

func closeAll(l *log.Logger, closers []io.Closer) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			l.Error("Closing failed", log.Err(err))
		}
	}
}

// runHeadless runs without any window and prints the final display plane.
func runHeadless(ctx context.Context, l *log.Logger, opts config.Options, img *rom.Image) error {
	con := console.NewSimple(os.Stdout)
	defer func() { _ = con.Close() }()

	if opts.StatsView {
		if err := statsview.Launch(con); err != nil {
			return err
		}
	}

	beeper, closers, err := newBeeper(l, opts, audio.NewBell(os.Stdout))
	if err != nil {
		return err
	}
	defer closeAll(l, closers)

	disp := display.NewHeadless()
	sys := system.New(newCPU(opts), disp, &keypad.Static{}, beeper, con, l, opts.System())

	_, err = sys.Boot(ctx, img.Name(), img.Data)
	plane := disp.Last()
	_ = con.WriteConsole(plane.String())
	return err
}

// runSDL runs in an SDL window on the main thread. The window stays open
// after the program ended until the operator closes it.
func runSDL(ctx context.Context, l *log.Logger, opts config.Options, img *rom.Image) error {
	con := console.NewSimple(os.Stdout)
	defer func() { _ = con.Close() }()

	win, err := sdlwindow.New("CHIP-8 - "+img.Name(), opts.Scale, keypad.DefaultLayout)
	if err != nil {
		return err
	}
	defer func() { _ = win.Close() }()

	var device audio.Beeper
	if !opts.Mute {
		snd, err := sdlaudio.New()
		if err != nil {
			return err
		}
		defer func() { _ = snd.Close() }()
		device = snd
	}

	beeper, closers, err := newBeeper(l, opts, device)
	if err != nil {
		return err
	}
	defer closeAll(l, closers)

	if opts.StatsView {
		if err := statsview.Launch(con); err != nil {
			return err
		}
	}

	sys := system.New(newCPU(opts), win, win, beeper, con, l, opts.System())
	res, err := sys.Boot(ctx, img.Name(), img.Data)
	if err != nil || res.Reason != system.ReasonHalted {
		return err
	}

	for win.IsOpen() && ctx.Err() == nil {
		win.PollEvents()
		time.Sleep(16 * time.Millisecond)
	}
	return nil
}
