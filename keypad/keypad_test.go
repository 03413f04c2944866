package keypad

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestLayout_Lookup(t *testing.T) {
	tests := []struct {
		name     string
		physical rune
		want     uint8
		found    bool
	}{
		{"digit", '1', 0x1, true},
		{"zero key is x", 'x', 0x0, true},
		{"upper case", 'V', 0xF, true},
		{"C on 4", '4', 0xC, true},
		{"A on y", 'y', 0xA, true},
		{"unbound", 'p', 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := DefaultLayout.Lookup(tt.physical)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestLayout_Validate(t *testing.T) {
	assert.NoError(t, DefaultLayout.Validate())

	broken := DefaultLayout
	broken[0x3] = '1'
	assert.Error(t, broken.Validate())
}

func TestStatic(t *testing.T) {
	var s Static
	s.Press(0x1A) // masked to 0xA
	state := s.Snapshot()
	assert.True(t, state[0xA])

	s.Release(0xA)
	state = s.Snapshot()
	assert.False(t, state[0xA])
}

func TestTerminal_HoldWindow(t *testing.T) {
	start := time.Unix(1000, 0)
	now := start

	term := NewTerminal(DefaultLayout, 100*time.Millisecond)
	term.now = func() time.Time { return now }

	state := term.Snapshot()
	for key := range state {
		assert.False(t, state[key])
	}

	term.Press(0x5)
	now = start.Add(50 * time.Millisecond)
	state = term.Snapshot()
	assert.True(t, state[0x5])
	assert.False(t, state[0x6])

	now = start.Add(100 * time.Millisecond)
	state = term.Snapshot()
	assert.False(t, state[0x5])
}

func TestNewTerminal_DefaultHold(t *testing.T) {
	term := NewTerminal(DefaultLayout, 0)
	assert.Equal(t, DefaultHold, term.hold)
}
