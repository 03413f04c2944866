// Package audio defines the tone output driven by the sound timer.
package audio

import (
	"io"
	"sync"
)

// tone parameters shared by every device producing samples
const (
	// SampleRate of generated tone samples.
	SampleRate = 22050

	// Frequency of the tone in Hz.
	Frequency = 220

	// Silence is the unsigned 8-bit center value.
	Silence = 0x80

	// quarter of the full scale
	amplitude = 0x20
)

// Beeper plays a single fixed tone. StartTone and StopTone are only called
// on transitions of the sound timer, never twice in a row.
type Beeper interface {
	StartTone()
	StopTone()
}

// ToneSample returns sample n of the square wave tone as unsigned 8-bit
// PCM.
func ToneSample(n int) uint8 {
	if (n*2*Frequency/SampleRate)%2 == 0 {
		return Silence + amplitude
	}
	return Silence - amplitude
}

// Tone fills buf with the tone starting at sample offset and returns the
// offset following the last written sample.
func Tone(buf []uint8, offset int) int {
	for i := range buf {
		buf[i] = ToneSample(offset + i)
	}
	return offset + len(buf)
}

// Silent discards the tone.
type Silent struct{}

// StartTone implements Beeper.
func (Silent) StartTone() {}

// StopTone implements Beeper.
func (Silent) StopTone() {}

// Bell rings the terminal bell once whenever the tone starts.
type Bell struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBell returns a Bell writing to out.
func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

// StartTone implements Beeper.
func (b *Bell) StartTone() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.out, "\a")
}

// StopTone implements Beeper.
func (b *Bell) StopTone() {}

// Multi fans the tone out to several beepers.
type Multi []Beeper

// StartTone implements Beeper.
func (m Multi) StartTone() {
	for _, b := range m {
		b.StartTone()
	}
}

// StopTone implements Beeper.
func (m Multi) StopTone() {
	for _, b := range m {
		b.StopTone()
	}
}
