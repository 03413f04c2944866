package console

import (
	"io"
	"strings"
	"sync"
)

// Simple console writing status lines to a plain writer, usually stdout.
// Lines are sent through a channel and written by a single goroutine.
type Simple struct {
	consoleOut  chan string // string channel, to which the console data is sent to
	out         io.Writer
	done        chan struct{}
	closeOnce   sync.Once
	currentLine int // number of lines written
}

// NewSimple returns a pointer to the new console and starts its writer.
func NewSimple(out io.Writer) *Simple {
	c := &Simple{
		consoleOut: make(chan string),
		out:        out,
		done:       make(chan struct{}),
	}
	c.initSimple()
	return c
}

// initSimple starts the writer goroutine
func (c *Simple) initSimple() {
	go func() {
		defer close(c.done)
		for s := range c.consoleOut {
			_, _ = io.WriteString(c.out, s)
		}
	}()
}

// WriteConsole displays a string on the console
func (c *Simple) WriteConsole(msg string) error {
	for _, line := range strings.Split(msg, "\n") {
		if line != "" {
			c.consoleOut <- line + "\n"
			c.currentLine++
		}
	}
	return nil
}

// Lines returns the number of lines written so far.
func (c *Simple) Lines() int {
	return c.currentLine
}

// Close waits until all pending lines are written. The console must not be
// used afterwards.
func (c *Simple) Close() error {
	c.closeOnce.Do(func() {
		close(c.consoleOut)
	})
	<-c.done
	return nil
}
