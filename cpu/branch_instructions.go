package cpu

import "chip8/fault"

// Definitions of the instructions changing the flow of the program: jumps,
// subroutine calls and returns, and the conditional skips.
//
// Jumps, calls and returns set the program counter themselves and disable
// the automatic advance. Skips advance the program counter by one extra
// instruction.

// skip the next instruction
func (c *CPU) skip(condition bool) {
	if condition {
		c.PC += instructionSize
	}
}

// 00EE - return from subroutine
func (c *CPU) retOp(instruction uint16) {
	addr, err := c.Stack.Pop()
	if err != nil {
		c.trap(fault.StackUnderflow, instruction, "return without call")
	}
	c.PC = addr
	c.advance = false
}

// 1nnn - jump. A jump to itself would spin forever, so the instruction
// word is zeroed first: the next fetch decodes as unknown opcode and ends the
// program.
func (c *CPU) jpOp(instruction uint16) {
	target := address(instruction)
	if target == c.PC {
		c.Memory.WriteWord(c.PC, 0)
	}
	c.PC = target
	c.advance = false
}

// 2nnn - call subroutine, the return address is the next instruction
func (c *CPU) callOp(instruction uint16) {
	if err := c.Stack.Push(c.PC + instructionSize); err != nil {
		c.trap(fault.StackOverflow, instruction, "call nesting deeper than 16")
	}
	c.PC = address(instruction)
	c.advance = false
}

// 3xkk - skip if Vx == kk
func (c *CPU) seImmOp(instruction uint16) {
	c.skip(c.Registers[regX(instruction)] == immediate(instruction))
}

// 4xkk - skip if Vx != kk
func (c *CPU) sneImmOp(instruction uint16) {
	c.skip(c.Registers[regX(instruction)] != immediate(instruction))
}

// 5xy0 - skip if Vx == Vy
func (c *CPU) seRegOp(instruction uint16) {
	c.skip(c.Registers[regX(instruction)] == c.Registers[regY(instruction)])
}

// 9xy0 - skip if Vx != Vy
func (c *CPU) sneRegOp(instruction uint16) {
	c.skip(c.Registers[regX(instruction)] != c.Registers[regY(instruction)])
}

// Bnnn - jump to nnn + V0
func (c *CPU) jpV0Op(instruction uint16) {
	c.PC = address(instruction) + uint16(c.Registers[0])
	c.advance = false
}

// Ex9E - skip if the key in Vx is held. Only the low nibble of Vx selects
// the key.
func (c *CPU) skpOp(instruction uint16) {
	c.skip(c.keys[c.Registers[regX(instruction)]&0xF])
}

// ExA1 - skip if the key in Vx is not held
func (c *CPU) sknpOp(instruction uint16) {
	c.skip(!c.keys[c.Registers[regX(instruction)]&0xF])
}
