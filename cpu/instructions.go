package cpu

// Definition of the CHIP-8 instructions that don't change the flow of the
// program. All follow the func (*CPU) (uint16) signature.

// operand helpers
func regX(instruction uint16) uint16 {
	return (instruction >> 8) & 0xF
}

func regY(instruction uint16) uint16 {
	return (instruction >> 4) & 0xF
}

func immediate(instruction uint16) uint8 {
	return uint8(instruction)
}

func address(instruction uint16) uint16 {
	return instruction & 0xFFF
}

// 6xkk - load immediate
func (c *CPU) ldImmOp(instruction uint16) {
	c.Registers[regX(instruction)] = immediate(instruction)
}

// 7xkk - add immediate, wraps without touching VF
func (c *CPU) addImmOp(instruction uint16) {
	c.Registers[regX(instruction)] += immediate(instruction)
}

// 8xy0 - copy Vy to Vx
func (c *CPU) ldRegOp(instruction uint16) {
	c.Registers[regX(instruction)] = c.Registers[regY(instruction)]
}

// 8xy1
func (c *CPU) orOp(instruction uint16) {
	c.Registers[regX(instruction)] |= c.Registers[regY(instruction)]
}

// 8xy2
func (c *CPU) andOp(instruction uint16) {
	c.Registers[regX(instruction)] &= c.Registers[regY(instruction)]
}

// 8xy3
func (c *CPU) xorOp(instruction uint16) {
	c.Registers[regX(instruction)] ^= c.Registers[regY(instruction)]
}

// 8xy4 - add, VF is the carry. VF is written after the sum.
func (c *CPU) addOp(instruction uint16) {
	x := regX(instruction)
	sum := uint16(c.Registers[x]) + uint16(c.Registers[regY(instruction)])
	c.Registers[x] = uint8(sum)
	c.Registers.SetFlag(sum > 0xFF)
}

// 8xy5 - sub, VF is set when Vx > Vy (no borrow). VF is written before the
// difference.
func (c *CPU) subOp(instruction uint16) {
	x := regX(instruction)
	vx, vy := c.Registers[x], c.Registers[regY(instruction)]
	c.Registers.SetFlag(vx > vy)
	c.Registers[x] = vx - vy
}

// 8xy6 - shift right, VF is the bit shifted out
func (c *CPU) shrOp(instruction uint16) {
	x := regX(instruction)
	vx := c.Registers[x]
	c.Registers.SetFlag(vx&1 == 1)
	c.Registers[x] = vx >> 1
}

// 8xy7 - subn, Vx = Vy - Vx, VF is set when Vy > Vx
func (c *CPU) subnOp(instruction uint16) {
	x := regX(instruction)
	vx, vy := c.Registers[x], c.Registers[regY(instruction)]
	c.Registers.SetFlag(vy > vx)
	c.Registers[x] = vy - vx
}

// 8xyE - shift left, VF is the bit shifted out
func (c *CPU) shlOp(instruction uint16) {
	x := regX(instruction)
	vx := c.Registers[x]
	c.Registers.SetFlag(vx&0x80 == 0x80)
	c.Registers[x] = vx << 1
}

// Annn - load index
func (c *CPU) ldIOp(instruction uint16) {
	c.I = address(instruction)
}

// Cxkk - random byte masked with kk
func (c *CPU) rndOp(instruction uint16) {
	c.Registers[regX(instruction)] = uint8(c.rnd.Intn(0x100)) & immediate(instruction)
}

// Fx07 - read delay timer
func (c *CPU) ldVxDTOp(instruction uint16) {
	c.Registers[regX(instruction)] = c.DT
}

// Fx0A - wait for a key. Without a held key the program counter stays where
// it is and the instruction runs again on the next step. The lowest held key
// wins.
func (c *CPU) ldKeyOp(instruction uint16) {
	for key, held := range c.keys {
		if held {
			c.Registers[regX(instruction)] = uint8(key)
			c.AwaitingKey = false
			return
		}
	}
	c.AwaitingKey = true
	c.advance = false
}

// Fx15 - write delay timer
func (c *CPU) ldDTOp(instruction uint16) {
	c.DT = c.Registers[regX(instruction)]
}

// Fx18 - write sound timer
func (c *CPU) ldSTOp(instruction uint16) {
	c.ST = c.Registers[regX(instruction)]
}

// Fx1E - add to index, 16 bit without overflow check
func (c *CPU) addIOp(instruction uint16) {
	c.I += uint16(c.Registers[regX(instruction)])
}

// Fx29 - index to the font glyph of the digit in Vx
func (c *CPU) ldFontOp(instruction uint16) {
	c.I = uint16(c.Registers[regX(instruction)]) * GlyphSize
}

// Fx33 - store hundreds, tens and units of Vx at I, I+1, I+2
func (c *CPU) bcdOp(instruction uint16) {
	v := c.Registers[regX(instruction)]
	c.Memory.WriteByte(c.I, v/100)
	c.Memory.WriteByte(c.I+1, (v/10)%10)
	c.Memory.WriteByte(c.I+2, v%10)
}

// Fx55 - store V0..Vx at I. I is not modified.
func (c *CPU) storeOp(instruction uint16) {
	for reg := uint16(0); reg <= regX(instruction); reg++ {
		c.Memory.WriteByte(c.I+reg, c.Registers[reg])
	}
}

// Fx65 - load V0..Vx from I. I is not modified.
func (c *CPU) loadOp(instruction uint16) {
	for reg := uint16(0); reg <= regX(instruction); reg++ {
		c.Registers[reg] = c.Memory.ReadByte(c.I + reg)
	}
}
