// Package sdlwindow shows the display plane in an SDL window and reads the
// keypad from the SDL keyboard events of that window.
package sdlwindow

import (
	"fmt"
	"sync"

	"chip8/display"
	"chip8/keypad"

	"github.com/veandco/go-sdl2/sdl"
)

// DefaultScale is the size of one plane pixel in window pixels.
const DefaultScale = 16

const pixelDepth = 4

// Window implements display.Display and keypad.Keypad. All methods except
// Snapshot must be called from the main OS thread.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// pixels is copied to the texture on every Present. ABGR8888 byte order.
	pixels []byte

	layout keypad.Layout

	mu   sync.Mutex
	keys [keypad.Keys]bool
	open bool
}

// New initializes SDL and opens the window.
func New(title string, scale int, layout keypad.Layout) (*Window, error) {
	if scale < 1 {
		scale = DefaultScale
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}

	w := &Window{
		layout: layout,
		open:   true,
		pixels: make([]byte, display.Width*display.Height*pixelDepth),
	}

	var err error
	w.window, err = sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(display.Width*scale), int32(display.Height*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w.renderer, err = sdl.CreateRenderer(w.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	// the texture has plane size, the renderer scales it to the window
	w.texture, err = w.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		display.Width, display.Height)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("creating texture: %w", err)
	}

	return w, nil
}

// Present implements display.Display.
func (w *Window) Present(p *display.Plane) error {
	fillPixels(w.pixels, p)

	if err := w.texture.Update(nil, w.pixels, display.Width*pixelDepth); err != nil {
		return err
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return err
	}
	w.renderer.Present()
	return nil
}

// IsOpen implements display.Display.
func (w *Window) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// PollEvents implements display.Display. Key events update the held keys,
// closing the window or pressing escape closes the display.
func (w *Window) PollEvents() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			w.setOpen(false)

		case *sdl.KeyboardEvent:
			if ev.Keysym.Sym == sdl.K_ESCAPE {
				w.setOpen(false)
				continue
			}
			if ev.Repeat != 0 {
				continue
			}
			w.keyEvent(rune(ev.Keysym.Sym), ev.Type == sdl.KEYDOWN)
		}
	}
}

// Snapshot implements keypad.Keypad.
func (w *Window) Snapshot() [keypad.Keys]bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.keys
}

// Close releases all SDL resources.
func (w *Window) Close() error {
	w.setOpen(false)
	if w.texture != nil {
		_ = w.texture.Destroy()
	}
	if w.renderer != nil {
		_ = w.renderer.Destroy()
	}
	if w.window != nil {
		_ = w.window.Destroy()
	}
	sdl.Quit()
	return nil
}

func (w *Window) setOpen(open bool) {
	w.mu.Lock()
	w.open = open
	w.mu.Unlock()
}

// keyEvent records a press or release of the physical key r.
func (w *Window) keyEvent(r rune, pressed bool) {
	key, ok := w.layout.Lookup(r)
	if !ok {
		return
	}
	w.mu.Lock()
	w.keys[key] = pressed
	w.mu.Unlock()
}

// fillPixels converts the plane to ABGR8888 pixel data, lit pixels white
// and dark pixels black.
func fillPixels(pixels []byte, p *display.Plane) {
	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			var c byte
			if p[y][x] != 0 {
				c = 0xFF
			}
			i := (y*display.Width + x) * pixelDepth
			pixels[i] = c
			pixels[i+1] = c
			pixels[i+2] = c
			pixels[i+3] = 0xFF
		}
	}
}
