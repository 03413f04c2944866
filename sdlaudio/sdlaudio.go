// Package sdlaudio plays the sound timer tone on the default SDL audio
// device.
package sdlaudio

import (
	"fmt"
	"sync"
	"time"

	"chip8/audio"

	"github.com/veandco/go-sdl2/sdl"
)

// tone is queued in chunks of half a second, a new chunk is queued as soon
// as less than half a chunk is left.
const (
	chunkLength   = audio.SampleRate / 2
	refillBelow   = chunkLength / 2
	refillPeriod  = 100 * time.Millisecond
	bufferSamples = 512
)

// Beeper implements audio.Beeper with an SDL audio queue.
type Beeper struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	mu     sync.Mutex
	on     bool
	offset int // tone phase of the next chunk
	chunk  []uint8

	done chan struct{}
	wg   sync.WaitGroup
}

// New opens the default audio device.
func New() (*Beeper, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing sdl audio: %w", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     audio.SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  bufferSamples,
	}

	b := &Beeper{
		chunk: make([]uint8, chunkLength),
		done:  make(chan struct{}),
	}

	var err error
	b.id, err = sdl.OpenAudioDevice("", false, spec, &b.spec, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	b.wg.Add(1)
	go b.refill()

	return b, nil
}

// StartTone implements audio.Beeper.
func (b *Beeper) StartTone() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.on = true
	sdl.ClearQueuedAudio(b.id)
	_ = b.queueChunk()
	sdl.PauseAudioDevice(b.id, false)
}

// StopTone implements audio.Beeper.
func (b *Beeper) StopTone() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.on = false
	sdl.PauseAudioDevice(b.id, true)
	sdl.ClearQueuedAudio(b.id)
}

// Close stops the tone and closes the device.
func (b *Beeper) Close() error {
	close(b.done)
	b.wg.Wait()
	b.StopTone()
	sdl.CloseAudioDevice(b.id)
	return nil
}

// queueChunk appends the next half second of the tone to the device queue.
// Must be called with mu held.
func (b *Beeper) queueChunk() error {
	b.offset = audio.Tone(b.chunk, b.offset)
	return sdl.QueueAudio(b.id, b.chunk)
}

// refill keeps the queue filled while the tone is on.
func (b *Beeper) refill() {
	defer b.wg.Done()

	tck := time.NewTicker(refillPeriod)
	defer tck.Stop()

	for {
		select {
		case <-b.done:
			return
		case <-tck.C:
			b.mu.Lock()
			if b.on && sdl.GetQueuedAudioSize(b.id) < refillBelow {
				_ = b.queueChunk()
			}
			b.mu.Unlock()
		}
	}
}
