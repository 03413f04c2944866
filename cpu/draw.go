package cpu

import "chip8/display"

// 00E0 - clear the display
func (c *CPU) clsOp(instruction uint16) {
	c.plane.Clear()
	c.redraw = true
}

// Dxyn - draw n sprite rows from memory at I to Vx, Vy.
//
// Every sprite bit is XORed onto the plane. Coordinates wrap around both
// edges, sprites never clip. VF is cleared first and set to 1 when any lit
// pixel is switched off.
func (c *CPU) drwOp(instruction uint16) {
	originX := int(c.Registers[regX(instruction)])
	originY := int(c.Registers[regY(instruction)])
	rows := int(instruction & 0xF)

	collision := false

	for row := 0; row < rows; row++ {
		sprite := c.Memory.ReadByte(c.I + uint16(row))
		y := (originY + row) % display.Height

		for col := 0; col < 8; col++ {
			x := (originX + col) % display.Width

			bit := (sprite >> (7 - col)) & 1
			var prev uint8
			if c.plane[y][x] != 0 {
				prev = 1
			}

			pixel := bit ^ prev
			if prev == 1 && pixel == 0 {
				collision = true
			}
			c.plane[y][x] = pixel
		}
	}

	c.Registers.SetFlag(collision)
	c.redraw = true
}
