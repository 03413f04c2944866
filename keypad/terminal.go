package keypad

import (
	"sync"
	"time"

	"github.com/jroimartin/gocui"
)

// DefaultHold is how long a key counts as held after the terminal reported
// it.
const DefaultHold = 150 * time.Millisecond

// Terminal is a keypad fed by gocui key bindings. Terminals report key
// presses (and auto repeat) but no releases, so a key is held for a hold
// window after its most recent press.
type Terminal struct {
	layout Layout
	hold   time.Duration
	now    func() time.Time

	mu      sync.Mutex
	pressed [Keys]time.Time
}

// NewTerminal returns a terminal keypad using the given layout.
func NewTerminal(layout Layout, hold time.Duration) *Terminal {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Terminal{
		layout: layout,
		hold:   hold,
		now:    time.Now,
	}
}

// Bind registers a global key binding for every physical key in the layout,
// upper and lower case.
func (t *Terminal) Bind(g *gocui.Gui) error {
	for key, physical := range t.layout {
		logical := uint8(key)
		handler := func(g *gocui.Gui, v *gocui.View) error {
			t.Press(logical)
			return nil
		}

		runes := []rune{physical}
		if physical >= 'a' && physical <= 'z' {
			runes = append(runes, physical-('a'-'A'))
		}
		for _, r := range runes {
			if err := g.SetKeybinding("", r, gocui.ModNone, handler); err != nil {
				return err
			}
		}
	}
	return nil
}

// Press records a press of the logical key.
func (t *Terminal) Press(key uint8) {
	t.mu.Lock()
	t.pressed[key&0xF] = t.now()
	t.mu.Unlock()
}

// Snapshot implements the Keypad interface.
func (t *Terminal) Snapshot() [Keys]bool {
	var state [Keys]bool
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()
	for key, at := range t.pressed {
		state[key] = !at.IsZero() && now.Sub(at) < t.hold
	}
	return state
}
