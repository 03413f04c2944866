package console

import (
	"fmt"
	"strings"

	"github.com/jroimartin/gocui"
)

// Gui console writes status lines into the gocui status view. gocui only
// allows view updates from its main loop, so lines travel through a channel
// to a goroutine that schedules them with Update.
type Gui struct {
	consoleOut chan string // string channel, to which the console data is sent to
	g          *gocui.Gui  // main gocui GUI object
	view       string
}

// NewGui returns a pointer to the new console writing to the named view.
func NewGui(g *gocui.Gui, view string) *Gui {
	c := &Gui{
		consoleOut: make(chan string, 16),
		g:          g,
		view:       view,
	}
	c.initGui()
	return c
}

// initGui starts the goroutine feeding the view
func (c *Gui) initGui() {
	go func() {
		for s := range c.consoleOut {
			s := s
			c.g.Update(func(g *gocui.Gui) error {
				v, err := g.View(c.view)
				if err != nil {
					return err
				}
				fmt.Fprint(v, s)
				return nil
			})
		}
	}()
}

// WriteConsole displays a string on the console
func (c *Gui) WriteConsole(msg string) error {
	for _, line := range strings.Split(msg, "\n") {
		if line != "" {
			c.consoleOut <- line + "\n"
		}
	}
	return nil
}

// Close stops the feeding goroutine.
func (c *Gui) Close() error {
	close(c.consoleOut)
	return nil
}
