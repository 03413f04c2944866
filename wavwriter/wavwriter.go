// Package wavwriter records the sound timer tone into a WAV file.
//
// The file covers the wall clock time from Create to Close. Samples are
// generated lazily on every tone transition, silence while the tone is off
// and the square wave while it is on.
package wavwriter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"chip8/audio"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth = 8
	channels = 1

	// WAVE_FORMAT_PCM
	pcmFormat = 1
)

// Writer is an audio.Beeper encoding the tone to a WAV file.
type Writer struct {
	mu sync.Mutex

	out    io.WriteSeeker
	closer io.Closer
	enc    *wav.Encoder

	now     func() time.Time
	start   time.Time
	written int // samples encoded so far
	on      bool
	closed  bool
}

// Create opens path for writing and starts the recording.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating wav file: %w", err)
	}
	return New(f, f, time.Now), nil
}

// New starts a recording into out. closer, when not nil, is closed after the
// encoder is finished. now is the clock samples are derived from.
func New(out io.WriteSeeker, closer io.Closer, now func() time.Time) *Writer {
	return &Writer{
		out:    out,
		closer: closer,
		enc:    wav.NewEncoder(out, audio.SampleRate, bitDepth, channels, pcmFormat),
		now:    now,
		start:  now(),
	}
}

// StartTone implements audio.Beeper.
func (w *Writer) StartTone() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	_ = w.catchUp()
	w.on = true
}

// StopTone implements audio.Beeper.
func (w *Writer) StopTone() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	_ = w.catchUp()
	w.on = false
}

// Samples returns the number of samples encoded so far.
func (w *Writer) Samples() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Close encodes the remaining samples and finishes the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	if err := w.catchUp(); err != nil {
		errs = append(errs, err)
	}
	if err := w.enc.Close(); err != nil {
		errs = append(errs, fmt.Errorf("finishing wav file: %w", err))
	}
	if w.closer != nil {
		if err := w.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing wav file: %w", err))
		}
	}
	return errors.Join(errs...)
}

// catchUp encodes the samples between the last transition and now, in the
// state that was active during that time.
func (w *Writer) catchUp() error {
	elapsed := w.now().Sub(w.start)
	target := int(elapsed * audio.SampleRate / time.Second)
	if target <= w.written {
		return nil
	}

	data := make([]int, target-w.written)
	for i := range data {
		if w.on {
			data[i] = int(audio.ToneSample(w.written + i))
		} else {
			data[i] = audio.Silence
		}
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  audio.SampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := w.enc.Write(buf); err != nil {
		return fmt.Errorf("encoding samples: %w", err)
	}
	w.written = target
	return nil
}
