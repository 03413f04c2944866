package audio

import "sync"

// Recorder remembers the tone transitions it receives, true for start and
// false for stop. Used as test double.
type Recorder struct {
	mu     sync.Mutex
	events []bool
}

// StartTone implements Beeper.
func (r *Recorder) StartTone() {
	r.mu.Lock()
	r.events = append(r.events, true)
	r.mu.Unlock()
}

// StopTone implements Beeper.
func (r *Recorder) StopTone() {
	r.mu.Lock()
	r.events = append(r.events, false)
	r.mu.Unlock()
}

// Events returns a copy of the recorded transitions.
func (r *Recorder) Events() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bool, len(r.events))
	copy(out, r.events)
	return out
}

// Playing reports whether the last transition started the tone.
func (r *Recorder) Playing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events) > 0 && r.events[len(r.events)-1]
}
