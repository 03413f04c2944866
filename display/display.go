// Package display holds the display plane the instruction engine draws into
// and the collaborators that present it to the operator.
package display

import "strings"

// display geometry
const (
	Width  = 64
	Height = 32
)

// Display is the presentation side of the plane. The engine only writes into
// the plane, the display decides how to show it.
type Display interface {
	// Present shows the current state of the plane.
	Present(p *Plane) error

	// IsOpen returns false once the operator has closed the output.
	IsOpen() bool

	// PollEvents services pending window events. Called once per step.
	PollEvents()
}

// Plane is the 64x32 monochrome pixel buffer. Any non-zero value is "on".
type Plane [Height][Width]uint8

// Clear switches every pixel off.
func (p *Plane) Clear() {
	*p = Plane{}
}

// Pixel reports whether the pixel at x, y is lit. Coordinates wrap.
func (p *Plane) Pixel(x, y int) bool {
	return p[wrap(y, Height)][wrap(x, Width)] != 0
}

// Set switches the pixel at x, y on or off. Coordinates wrap.
func (p *Plane) Set(x, y int, on bool) {
	var v uint8
	if on {
		v = 1
	}
	p[wrap(y, Height)][wrap(x, Width)] = v
}

// Lit returns the number of pixels that are on.
func (p *Plane) Lit() int {
	n := 0
	for y := range p {
		for x := range p[y] {
			if p[y][x] != 0 {
				n++
			}
		}
	}
	return n
}

// String renders the plane as ASCII art, one line per row.
func (p *Plane) String() string {
	var b strings.Builder
	b.Grow((Width + 1) * Height)
	for y := range p {
		for x := range p[y] {
			if p[y][x] != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
