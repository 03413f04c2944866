package cpu

import (
	"errors"
	"testing"

	"chip8/display"
	"chip8/fault"

	"github.com/retroenv/retrogolib/assert"
)

func TestCPU_Skip(t *testing.T) {
	tests := []struct {
		name        string
		instruction uint16
		x, y        uint8
		wantPC      uint16
	}{
		{"se imm equal", 0x3142, 0x42, 0, 0x204},
		{"se imm different", 0x3142, 0x41, 0, 0x202},
		{"sne imm equal", 0x4142, 0x42, 0, 0x202},
		{"sne imm different", 0x4142, 0x41, 0, 0x204},
		{"se reg equal", 0x5120, 7, 7, 0x204},
		{"se reg different", 0x5120, 7, 8, 0x202},
		{"sne reg equal", 0x9120, 7, 7, 0x202},
		{"sne reg different", 0x9120, 7, 8, 0x204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := exec(t, tt.instruction, map[int]uint8{1: tt.x, 2: tt.y})
			assert.Equal(t, tt.wantPC, c.PC)
		})
	}
}

func TestCPU_SkipKey(t *testing.T) {
	var held [16]bool
	held[0xA] = true

	tests := []struct {
		name        string
		instruction uint16
		key         uint8
		wantPC      uint16
	}{
		{"skp held", 0xE39E, 0xA, 0x204},
		{"skp not held", 0xE39E, 0xB, 0x202},
		{"sknp held", 0xE3A1, 0xA, 0x202},
		{"sknp not held", 0xE3A1, 0xB, 0x204},
		{"key number uses low nibble", 0xE39E, 0x1A, 0x204},
		{"out of range key aliases low nibble", 0xE3A1, 0x1F, 0x204},
		{"sknp masks high nibble", 0xE3A1, 0xFA, 0x202},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, tt.instruction)
			c.Registers[3] = tt.key
			var plane display.Plane
			_, err := c.Step(&plane, held)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantPC, c.PC)
		})
	}
}

func TestCPU_Jump(t *testing.T) {
	c := exec(t, 0x1ABC, nil)
	assert.Equal(t, uint16(0xABC), c.PC)

	c = exec(t, 0xB300, map[int]uint8{0: 0x24})
	assert.Equal(t, uint16(0x324), c.PC)
}

func TestCPU_JumpToSelfTerminates(t *testing.T) {
	c := newTestCPU(t, 0x00E0, 0x1202)
	var plane display.Plane
	plane.Set(3, 4, true)

	res := step(t, c, &plane)
	assert.True(t, res.Redraw)
	assert.Equal(t, 0, plane.Lit())

	step(t, c, &plane)
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Equal(t, uint16(0), c.Memory.ReadWord(0x202))

	_, err := c.Step(&plane, noKeys)
	assert.True(t, fault.IsHalt(err))
}

func TestCPU_CallReturn(t *testing.T) {
	c := newTestCPU(t, 0x2204, 0x6001, 0x00EE)
	var plane display.Plane

	step(t, c, &plane)
	assert.Equal(t, uint16(0x204), c.PC)
	assert.Equal(t, []uint16{0x202}, c.Stack.Entries())

	step(t, c, &plane)
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Equal(t, 0, c.Stack.Depth())

	step(t, c, &plane)
	assert.Equal(t, uint8(1), c.Registers[0])
}

func TestCPU_StackOverflow(t *testing.T) {
	c := newTestCPU(t, 0x2200)
	var plane display.Plane

	for i := 0; i < StackDepth; i++ {
		step(t, c, &plane)
	}
	assert.Equal(t, StackDepth, c.Stack.Depth())

	res, err := c.Step(&plane, noKeys)
	assert.True(t, errors.Is(err, fault.ErrStackOverflow))
	assert.False(t, fault.IsHalt(err))
	assert.Equal(t, uint16(0x2200), res.Opcode)
	assert.Equal(t, uint16(0x200), c.PC)
	assert.Equal(t, StackDepth, c.Stack.Depth())

	var f fault.Fault
	assert.True(t, errors.As(err, &f))
	assert.Equal(t, uint16(0x200), f.Address)
}

func TestCPU_StackUnderflow(t *testing.T) {
	c := newTestCPU(t, 0x00EE)
	var plane display.Plane

	_, err := c.Step(&plane, noKeys)
	assert.True(t, errors.Is(err, fault.ErrStackUnderflow))
	assert.Equal(t, uint16(0x200), c.PC)
}

func TestStack(t *testing.T) {
	var s Stack
	_, err := s.Pop()
	assert.True(t, errors.Is(err, fault.ErrStackUnderflow))

	for i := 0; i < StackDepth; i++ {
		assert.NoError(t, s.Push(uint16(i)))
	}
	assert.True(t, errors.Is(s.Push(0x100), fault.ErrStackOverflow))

	addr, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(StackDepth-1), addr)

	s.Reset()
	assert.Equal(t, 0, s.Depth())
}
