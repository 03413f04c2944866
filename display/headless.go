package display

import "sync"

// Headless is a display without any output. It keeps a copy of the last
// presented plane, which makes it the display of choice for tests and
// batch runs.
type Headless struct {
	mu       sync.Mutex
	last     Plane
	presents int
	polls    int
	closed   bool
}

// NewHeadless returns an open headless display.
func NewHeadless() *Headless {
	return &Headless{}
}

// Present implements the Display interface.
func (h *Headless) Present(p *Plane) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = *p
	h.presents++
	return nil
}

// IsOpen implements the Display interface.
func (h *Headless) IsOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.closed
}

// PollEvents implements the Display interface.
func (h *Headless) PollEvents() {
	h.mu.Lock()
	h.polls++
	h.mu.Unlock()
}

// Close makes IsOpen return false.
func (h *Headless) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

// Last returns a copy of the most recently presented plane.
func (h *Headless) Last() Plane {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Presents returns how many times Present was called.
func (h *Headless) Presents() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presents
}

// Polls returns how many times PollEvents was called.
func (h *Headless) Polls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.polls
}
