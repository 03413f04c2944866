// Package keypad maps physical keys onto the 16 logical keys 0x0-0xF.
package keypad

import "fmt"

// Keys is the number of logical keys.
const Keys = 16

// Keypad reports which logical keys are currently held.
type Keypad interface {
	Snapshot() [Keys]bool
}

// Layout maps every logical key to a physical key. It is configuration, not
// behaviour.
type Layout [Keys]rune

// DefaultLayout is the classic 4x4 block on the left of a QWERTZ keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Y X C V
var DefaultLayout = Layout{
	0x0: 'x',
	0x1: '1',
	0x2: '2',
	0x3: '3',
	0x4: 'q',
	0x5: 'w',
	0x6: 'e',
	0x7: 'a',
	0x8: 's',
	0x9: 'd',
	0xA: 'y',
	0xB: 'c',
	0xC: '4',
	0xD: 'r',
	0xE: 'f',
	0xF: 'v',
}

// Lookup returns the logical key bound to the physical key r. Letters match
// regardless of case.
func (l Layout) Lookup(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for key, physical := range l {
		if physical == r {
			return uint8(key), true
		}
	}
	return 0, false
}

// Validate checks that no physical key is bound twice.
func (l Layout) Validate() error {
	seen := make(map[rune]int, Keys)
	for key, physical := range l {
		if prev, ok := seen[physical]; ok {
			return fmt.Errorf("physical key %q bound to %X and %X", physical, prev, key)
		}
		seen[physical] = key
	}
	return nil
}

// Static is a keypad with a fixed snapshot, used by headless runs and tests.
type Static [Keys]bool

// Snapshot implements the Keypad interface.
func (s *Static) Snapshot() [Keys]bool {
	return *s
}

// Press marks the logical key as held.
func (s *Static) Press(key uint8) {
	s[key&0xF] = true
}

// Release marks the logical key as not held.
func (s *Static) Release(key uint8) {
	s[key&0xF] = false
}
