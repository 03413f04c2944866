package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"chip8/audio"
	"chip8/config"
	"chip8/console"
	"chip8/display"
	"chip8/keypad"
	"chip8/rom"
	"chip8/statsview"
	"chip8/system"

	"github.com/jroimartin/gocui"
	"github.com/retroenv/retrogolib/log"
)

// view names
const (
	registersView = "registers"
	statusView    = console.StatusView
)

// how often the register view is refreshed
const registerRefresh = 200 * time.Millisecond

// runTerminal runs inside a gocui terminal ui. gocui owns the main
// goroutine, the system runs in its own goroutine and keeps the ui
// responsive after the program ended until Ctrl+C.
func runTerminal(ctx context.Context, l *log.Logger, opts config.Options, img *rom.Image) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return fmt.Errorf("creating terminal ui: %w", err)
	}
	defer g.Close()

	g.SetManagerFunc(layout)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	disp := display.NewTerminal(g, display.ScreenView)
	quit := func(g *gocui.Gui, v *gocui.View) error {
		disp.Close()
		cancel()
		return gocui.ErrQuit
	}
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return err
	}

	keys := keypad.NewTerminal(keypad.DefaultLayout, keypad.DefaultHold)
	if err := keys.Bind(g); err != nil {
		return err
	}

	con := console.NewGui(g, statusView)
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

	sys := system.New(newCPU(opts), disp, keys, beeper, con, l, opts.System())

	// start emulation
	done := make(chan error, 1)
	go func() {
		_, err := sys.Boot(ctx, img.Name(), img.Data)
		if err != nil {
			_ = con.WriteConsole(err.Error())
		}
		done <- err
	}()
	updateRegisters(ctx, sys, g)

	if err := g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		cancel()
		<-done
		return err
	}

	cancel()
	return <-done
}

// update registers display
// has to be run in go routine -> gocui allows updating the view only through Update function
func updateRegisters(ctx context.Context, sys *system.System, g *gocui.Gui) {
	ticker := time.NewTicker(registerRefresh)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			status := sys.Status()
			g.Update(func(g *gocui.Gui) error {
				v, err := g.View(registersView)
				if err != nil {
					return err
				}
				v.Clear()
				fmt.Fprint(v, status)
				return nil
			})
		}
	}()
}

// gocui layout
func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	// left -> display, two pixel rows per line
	screenX := display.Width + 1
	screenY := display.Height/2 + 1
	if v, err := g.SetView(display.ScreenView, 0, 0, screenX, screenY); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "CHIP-8"
	}

	// below -> register values
	if v, err := g.SetView(registersView, 0, screenY+1, maxX-1, screenY+5); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Registers"
		v.Wrap = true
	}

	// down -> status
	if v, err := g.SetView(statusView, 0, screenY+6, maxX-1, maxY-1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Status"
		v.Autoscroll = true
	}
	return nil
}
