package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestParse_Defaults(t *testing.T) {
	opts, err := Parse([]string{"pong.ch8"})
	assert.NoError(t, err)

	assert.Equal(t, "pong.ch8", opts.ROM)
	assert.Equal(t, UITerminal, opts.UI)
	assert.Equal(t, 16, opts.Scale)
	assert.Equal(t, 10, opts.BatchSize)
	assert.Equal(t, 20*time.Millisecond, opts.Pause)
	assert.Equal(t, 8, opts.TimerDivider)
	assert.Equal(t, uint64(0), opts.MaxSteps)
	assert.Equal(t, "chip8.log", opts.LogFile)

	sys := opts.System()
	assert.Equal(t, 10, sys.BatchSize)
	assert.Equal(t, 8, sys.TimerDivider)

	assert.Equal(t, "chip8.log", opts.Logger().Path)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, opts Options)
		wantErr string
	}{
		{
			name: "sdl ui",
			args: []string{"-ui", "SDL", "-scale", "8", "game.ch8"},
			check: func(t *testing.T, opts Options) {
				t.Helper()
				assert.Equal(t, UISDL, opts.UI)
				assert.Equal(t, 8, opts.Scale)
				assert.Equal(t, "", opts.Logger().Path)
			},
		},
		{
			name: "headless batch run",
			args: []string{"-ui", "headless", "-steps", "1000", "-seed", "7", "-pause", "0s", "game.ch8"},
			check: func(t *testing.T, opts Options) {
				t.Helper()
				assert.Equal(t, uint64(1000), opts.MaxSteps)
				assert.Equal(t, int64(7), opts.Seed)
				assert.Equal(t, time.Duration(0), opts.Pause)
			},
		},
		{
			name: "trace enables debug log",
			args: []string{"-trace", "game.ch8"},
			check: func(t *testing.T, opts Options) {
				t.Helper()
				assert.True(t, opts.Logger().Debug)
				assert.True(t, opts.System().Trace)
			},
		},
		{
			name: "disasm logs to console",
			args: []string{"-disasm", "game.ch8"},
			check: func(t *testing.T, opts Options) {
				t.Helper()
				assert.Equal(t, "", opts.Logger().Path)
			},
		},
		{name: "missing rom", args: []string{"-mute"}, wantErr: "no rom file given"},
		{name: "flag after rom", args: []string{"game.ch8", "-mute"}, wantErr: "argument -mute found after rom file"},
		{name: "unknown ui", args: []string{"-ui", "gl", "game.ch8"}, wantErr: "unsupported ui: gl"},
		{name: "zero speed", args: []string{"-speed", "0", "game.ch8"}, wantErr: "speed must be positive"},
		{name: "unknown flag", args: []string{"-fast", "game.ch8"}, wantErr: "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Parse(tt.args)
			if tt.wantErr != "" {
				var usageErr *UsageError
				assert.True(t, errors.As(err, &usageErr))
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestUsageError_ShowUsage(t *testing.T) {
	_, err := Parse(nil)
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	var buf bytes.Buffer
	usageErr.ShowUsage(&buf)
	assert.True(t, strings.HasPrefix(buf.String(), "usage: chip8 [options] <rom file>"))
	assert.True(t, strings.Contains(buf.String(), "-scale"))
}
