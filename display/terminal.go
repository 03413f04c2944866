package display

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jroimartin/gocui"
)

// ScreenView is the name of the gocui view the terminal display draws into.
const ScreenView = "screen"

// Terminal presents the plane inside a gocui view. Two pixel rows share one
// character cell, so the view needs Width columns and Height/2 lines.
//
// gocui only allows modifying views from its main loop, so Present stores the
// frame and asks the loop to redraw. Update callbacks may run out of order;
// they always draw the newest frame.
type Terminal struct {
	g    *gocui.Gui
	view string

	mu    sync.Mutex
	frame Plane

	closed atomic.Bool
}

// NewTerminal returns a display drawing into the named view of g.
func NewTerminal(g *gocui.Gui, view string) *Terminal {
	return &Terminal{g: g, view: view}
}

// Present implements the Display interface.
func (t *Terminal) Present(p *Plane) error {
	t.mu.Lock()
	t.frame = *p
	t.mu.Unlock()

	t.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(t.view)
		if err != nil {
			return err
		}
		t.mu.Lock()
		frame := t.frame
		t.mu.Unlock()

		v.Clear()
		return Render(v, &frame)
	})
	return nil
}

// IsOpen implements the Display interface.
func (t *Terminal) IsOpen() bool {
	return !t.closed.Load()
}

// PollEvents implements the Display interface. Events are serviced by the
// gocui main loop, nothing to do here.
func (t *Terminal) PollEvents() {
}

// Close is called from the quit key binding.
func (t *Terminal) Close() {
	t.closed.Store(true)
}

// half block glyphs indexed by top | bottom<<1
var blocks = [4]rune{' ', '▀', '▄', '█'}

// Render writes the plane using half block characters.
func Render(w io.Writer, p *Plane) error {
	var b strings.Builder
	for y := 0; y < Height; y += 2 {
		for x := 0; x < Width; x++ {
			idx := 0
			if p[y][x] != 0 {
				idx |= 1
			}
			if p[y+1][x] != 0 {
				idx |= 2
			}
			b.WriteRune(blocks[idx])
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
