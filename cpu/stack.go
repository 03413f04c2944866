package cpu

import "chip8/fault"

// StackDepth is the number of return addresses the call stack holds.
const StackDepth = 16

// Stack is the call stack. It lives outside of main memory.
type Stack struct {
	entries [StackDepth]uint16
	sp      int
}

// Push stores a return address. Pushing onto a full stack fails.
func (s *Stack) Push(addr uint16) error {
	if s.sp == StackDepth {
		return fault.ErrStackOverflow
	}
	s.entries[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the most recent return address. Popping from an
// empty stack fails.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, fault.ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Depth returns the number of pushed addresses.
func (s *Stack) Depth() int {
	return s.sp
}

// Entries returns the pushed addresses, oldest first.
func (s *Stack) Entries() []uint16 {
	out := make([]uint16, s.sp)
	copy(out, s.entries[:s.sp])
	return out
}

// Reset empties the stack.
func (s *Stack) Reset() {
	*s = Stack{}
}
