package sdlwindow

import (
	"testing"

	"chip8/display"
	"chip8/keypad"

	"github.com/retroenv/retrogolib/assert"
)

func TestFillPixels(t *testing.T) {
	var p display.Plane
	p.Set(0, 0, true)
	p.Set(63, 31, true)

	pixels := make([]byte, display.Width*display.Height*pixelDepth)
	fillPixels(pixels, &p)

	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, pixels[0:4])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xFF}, pixels[4:8])
	last := len(pixels) - pixelDepth
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, pixels[last:])
}

func TestKeyEvent(t *testing.T) {
	w := &Window{layout: keypad.DefaultLayout, open: true}

	w.keyEvent('w', true)
	w.keyEvent('1', true)
	w.keyEvent('p', true) // not mapped

	keys := w.Snapshot()
	assert.True(t, keys[0x5])
	assert.True(t, keys[0x1])

	w.keyEvent('1', false)
	keys = w.Snapshot()
	assert.False(t, keys[0x1])
	assert.True(t, keys[0x5])
}
