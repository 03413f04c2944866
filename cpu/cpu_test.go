package cpu

import (
	"errors"
	"strings"
	"testing"

	"chip8/display"
	"chip8/fault"
	"chip8/keypad"

	"github.com/retroenv/retrogolib/assert"
)

var noKeys [keypad.Keys]bool

// words encodes instruction words big endian.
func words(w ...uint16) []byte {
	out := make([]byte, 0, len(w)*2)
	for _, v := range w {
		out = append(out, byte(v>>8), byte(v))
	}
	return out
}

func newTestCPU(t *testing.T, program ...uint16) *CPU {
	t.Helper()
	c := New(WithSeed(1))
	if len(program) > 0 {
		assert.NoError(t, c.Load(words(program...)))
	}
	return c
}

func step(t *testing.T, c *CPU, plane *display.Plane) Result {
	t.Helper()
	res, err := c.Step(plane, noKeys)
	assert.NoError(t, err)
	return res
}

func TestNew(t *testing.T) {
	c := New()
	assert.Equal(t, uint16(ProgramStart), c.PC)
	assert.Equal(t, 0, c.Stack.Depth())
	for i, b := range Font {
		assert.Equal(t, b, c.Memory[i])
	}
	assert.Equal(t, byte(0), c.Memory[len(Font)])
}

func TestCPU_Load(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr error
	}{
		{"empty", 0, ErrEmptyProgram},
		{"one byte", 1, nil},
		{"largest", MaxProgramSize, nil},
		{"too large", MaxProgramSize + 1, ErrProgramTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			program := make([]byte, tt.size)
			for i := range program {
				program[i] = 0xAB
			}
			err := c.Load(program)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, byte(0xAB), c.Memory[ProgramStart])
			assert.Equal(t, byte(0xAB), c.Memory[ProgramStart+tt.size-1])
		})
	}
}

func TestCPU_Decode(t *testing.T) {
	c := New()

	tests := []struct {
		name    string
		word    uint16
		wantErr bool
	}{
		{"clear", 0x00E0, false},
		{"return", 0x00EE, false},
		{"sys call is unknown", 0x0123, true},
		{"zero word is unknown", 0x0000, true},
		{"jump", 0x1ABC, false},
		{"skip eq reg", 0x5120, false},
		{"skip eq reg with low nibble", 0x5121, true},
		{"shift left", 0x812E, false},
		{"undefined 8xy8", 0x8128, true},
		{"skip ne reg", 0x9AB0, false},
		{"skip ne reg with low nibble", 0x9AB1, true},
		{"draw", 0xD125, false},
		{"skip key", 0xE19E, false},
		{"undefined Ex00", 0xE100, true},
		{"load registers", 0xF365, false},
		{"undefined Fx99", 0xF399, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := c.Decode(tt.word)
			if tt.wantErr {
				assert.True(t, errors.Is(err, fault.ErrUnknownOpcode))
				assert.True(t, op == nil)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, op)
		})
	}
}

func TestCPU_StepAdvancesProgramCounter(t *testing.T) {
	c := newTestCPU(t, 0x6005, 0x6106)
	var plane display.Plane

	res := step(t, c, &plane)
	assert.Equal(t, uint16(0x200), res.Address)
	assert.Equal(t, uint16(0x6005), res.Opcode)
	assert.False(t, res.Redraw)
	assert.Equal(t, uint16(0x202), c.PC)

	step(t, c, &plane)
	assert.Equal(t, uint16(0x204), c.PC)
	assert.Equal(t, uint8(5), c.Registers[0])
	assert.Equal(t, uint8(6), c.Registers[1])
}

func TestCPU_UnknownOpcodeHalts(t *testing.T) {
	c := newTestCPU(t, 0x6005)
	var plane display.Plane
	step(t, c, &plane)

	res, err := c.Step(&plane, noKeys)
	assert.True(t, fault.IsHalt(err))
	assert.Equal(t, uint16(0x202), res.Address)
	assert.Equal(t, uint16(0x0000), res.Opcode)
	// state untouched
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Equal(t, uint8(5), c.Registers[0])
}

func TestCPU_DumpRegisters(t *testing.T) {
	c := New()
	c.Registers[0] = 0x12
	c.Registers[0xF] = 1
	c.I = 0x345

	dump := c.DumpRegisters()
	assert.Equal(t,
		"V0 12 V1 00 V2 00 V3 00 V4 00 V5 00 V6 00 V7 00 V8 00 V9 00 VA 00 VB 00 VC 00 VD 00 VE 00 VF 01"+
			" I 345 PC 200 SP 0 DT 00 ST 00", dump)
}

func TestCPU_Trace(t *testing.T) {
	c := New(WithTrace(2))
	assert.NoError(t, c.Load(words(0x6001, 0x6102, 0x6203)))
	var plane display.Plane

	step(t, c, &plane)
	step(t, c, &plane)
	step(t, c, &plane)

	trace := c.Trace()
	assert.Equal(t, 2, len(trace))
	assert.Equal(t, uint16(0x202), trace[0].Address)
	assert.Equal(t, uint16(0x6203), trace[1].Opcode)

	dump := c.TraceDump()
	assert.True(t, strings.HasPrefix(dump, "202: 6102  "))
	assert.True(t, strings.Contains(dump, "\n204: 6203  "))

	c.Reset()
	assert.Equal(t, 0, len(c.Trace()))
	assert.Equal(t, 0, len(New().Trace()))
	assert.Equal(t, "", New().TraceDump())
}

func TestCPU_PrintState(t *testing.T) {
	c := newTestCPU(t, 0x6005, 0x00EE)
	var plane display.Plane
	step(t, c, &plane)

	_, err := c.Step(&plane, noKeys)
	assert.True(t, errors.Is(err, fault.ErrStackUnderflow))

	state := strings.Split(c.PrintState(), "\n")
	assert.Len(t, state, 2)
	assert.Equal(t, c.DumpRegisters(), state[0])
	assert.Equal(t, " instr 202: 00EE   "+Disasm(0x00EE), state[1])
}

func TestCPU_ResetKeepsFont(t *testing.T) {
	c := newTestCPU(t, 0x6001)
	c.Registers[3] = 9
	c.PC = 0x300
	c.Reset()

	assert.Equal(t, uint16(ProgramStart), c.PC)
	assert.Equal(t, uint8(0), c.Registers[3])
	assert.Equal(t, byte(0), c.Memory[ProgramStart])
	assert.Equal(t, Font[0], c.Memory[0])
}
