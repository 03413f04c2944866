package cpu

import (
	"testing"

	"chip8/display"

	"github.com/retroenv/retrogolib/assert"
)

func TestCPU_DrawTwiceRestoresPlane(t *testing.T) {
	c := newTestCPU(t, 0xD125, 0xD125)
	c.Registers[1] = 10
	c.Registers[2] = 12
	c.I = 0 // glyph 0
	var plane display.Plane

	res := step(t, c, &plane)
	assert.True(t, res.Redraw)
	assert.Equal(t, uint8(0), c.Registers.Flag())
	assert.Equal(t, 14, plane.Lit())
	assert.True(t, plane.Pixel(10, 12))
	assert.False(t, plane.Pixel(11, 13))

	step(t, c, &plane)
	assert.Equal(t, uint8(1), c.Registers.Flag())
	assert.Equal(t, 0, plane.Lit())
}

func TestCPU_DrawWrapsAround(t *testing.T) {
	c := newTestCPU(t, 0xD121)
	c.Registers[1] = 60
	c.Registers[2] = 31
	c.I = 0x300
	c.Memory[0x300] = 0xFF
	var plane display.Plane

	step(t, c, &plane)
	assert.Equal(t, 8, plane.Lit())
	for _, x := range []int{60, 61, 62, 63, 0, 1, 2, 3} {
		assert.True(t, plane.Pixel(x, 31))
	}
	assert.False(t, plane.Pixel(4, 31))
	assert.False(t, plane.Pixel(59, 31))
}

func TestCPU_DrawWrapsVertically(t *testing.T) {
	c := newTestCPU(t, 0xD013)
	c.Registers[0] = 0x45 // x 69 wraps to 5
	c.Registers[1] = 31
	c.I = 0x300
	c.Memory.Load(0x300, []byte{0x80, 0x80, 0x80})
	var plane display.Plane

	step(t, c, &plane)
	assert.True(t, plane.Pixel(5, 31))
	assert.True(t, plane.Pixel(5, 0))
	assert.True(t, plane.Pixel(5, 1))
	assert.Equal(t, 3, plane.Lit())
}

func TestCPU_DrawCollisionFlag(t *testing.T) {
	tests := []struct {
		name     string
		lit      []int
		wantFlag uint8
		wantLit  int
	}{
		{"empty plane", nil, 0, 8},
		{"overlapping pixel", []int{3}, 1, 7},
		{"lit pixel beside sprite", []int{9}, 0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, 0xD011)
			c.I = 0x300
			c.Memory[0x300] = 0xFF
			c.Registers.SetFlag(true)
			var plane display.Plane
			for _, x := range tt.lit {
				plane.Set(x, 0, true)
			}

			step(t, c, &plane)
			assert.Equal(t, tt.wantFlag, c.Registers.Flag())
			assert.Equal(t, tt.wantLit, plane.Lit())
		})
	}
}

func TestCPU_DrawZeroRows(t *testing.T) {
	c := newTestCPU(t, 0xD010)
	c.Registers.SetFlag(true)
	var plane display.Plane

	res := step(t, c, &plane)
	assert.True(t, res.Redraw)
	assert.Equal(t, 0, plane.Lit())
	assert.Equal(t, uint8(0), c.Registers.Flag())
}
