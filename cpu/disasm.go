package cpu

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// operand formatters
func opNone(uint16) string { return "" }

func opAddr(w uint16) string { return fmt.Sprintf("0x%03X", address(w)) }

func opRegImm(w uint16) string { return fmt.Sprintf("V%X, 0x%02X", regX(w), immediate(w)) }

func opRegReg(w uint16) string { return fmt.Sprintf("V%X, V%X", regX(w), regY(w)) }

func opReg(w uint16) string { return fmt.Sprintf("V%X", regX(w)) }

func opDraw(w uint16) string {
	return fmt.Sprintf("V%X, V%X, %d", regX(w), regY(w), w&0xF)
}

// opFormat returns a formatter printing the register with a fixed operand
// on either side.
func opFormat(format string) func(uint16) string {
	return func(w uint16) string { return fmt.Sprintf(format, regX(w)) }
}

var disasmtable = []struct {
	inst, arg uint16
	msg       string
	operands  func(uint16) string
}{
	{0xFFFF, 0x00E0, "CLS", opNone},
	{0xFFFF, 0x00EE, "RET", opNone},
	{0xF000, 0x1000, "JP", opAddr},
	{0xF000, 0x2000, "CALL", opAddr},
	{0xF000, 0x3000, "SE", opRegImm},
	{0xF000, 0x4000, "SNE", opRegImm},
	{0xF00F, 0x5000, "SE", opRegReg},
	{0xF000, 0x6000, "LD", opRegImm},
	{0xF000, 0x7000, "ADD", opRegImm},
	{0xF00F, 0x8000, "LD", opRegReg},
	{0xF00F, 0x8001, "OR", opRegReg},
	{0xF00F, 0x8002, "AND", opRegReg},
	{0xF00F, 0x8003, "XOR", opRegReg},
	{0xF00F, 0x8004, "ADD", opRegReg},
	{0xF00F, 0x8005, "SUB", opRegReg},
	{0xF00F, 0x8006, "SHR", opRegReg},
	{0xF00F, 0x8007, "SUBN", opRegReg},
	{0xF00F, 0x800E, "SHL", opRegReg},
	{0xF00F, 0x9000, "SNE", opRegReg},
	{0xF000, 0xA000, "LD", func(w uint16) string { return "I, " + opAddr(w) }},
	{0xF000, 0xB000, "JP", func(w uint16) string { return "V0, " + opAddr(w) }},
	{0xF000, 0xC000, "RND", opRegImm},
	{0xF000, 0xD000, "DRW", opDraw},
	{0xF0FF, 0xE09E, "SKP", opReg},
	{0xF0FF, 0xE0A1, "SKNP", opReg},
	{0xF0FF, 0xF007, "LD", opFormat("V%X, DT")},
	{0xF0FF, 0xF00A, "LD", opFormat("V%X, K")},
	{0xF0FF, 0xF015, "LD", opFormat("DT, V%X")},
	{0xF0FF, 0xF018, "LD", opFormat("ST, V%X")},
	{0xF0FF, 0xF01E, "ADD", opFormat("I, V%X")},
	{0xF0FF, 0xF029, "LD", opFormat("F, V%X")},
	{0xF0FF, 0xF033, "LD", opFormat("B, V%X")},
	{0xF0FF, 0xF055, "LD", opFormat("[I], V%X")},
	{0xF0FF, 0xF065, "LD", opFormat("V%X, [I]")},
}

// Disasm returns the assembly text of an instruction word. Words that are no
// instruction are printed as data.
func Disasm(word uint16) string {
	for _, d := range disasmtable {
		if word&d.inst != d.arg {
			continue
		}

		name := d.msg
		if ins := lookupInstruction(word); ins != nil && ins.Name != "" {
			name = strings.ToUpper(ins.Name)
		}
		if ops := d.operands(word); ops != "" {
			return name + " " + ops
		}
		return name
	}
	return fmt.Sprintf("DW 0x%04X", word)
}

// lookupInstruction finds the instruction set entry for the word in the
// CHIP-8 opcode tables, grouped by the first nibble. The most specific mask
// wins.
func lookupInstruction(word uint16) *chip8.Instruction {
	var found *chip8.Instruction
	best := -1
	for _, op := range chip8.Opcodes[int(word>>12)] {
		if op.Info.Mask&word != op.Info.Value {
			continue
		}
		if n := bits.OnesCount16(op.Info.Mask); n > best {
			found, best = op.Instruction, n
		}
	}
	return found
}

// DisassembleProgram lists a program image loaded at base, one instruction
// per line. A trailing odd byte is listed as data.
func DisassembleProgram(program []byte, base uint16) []string {
	lines := make([]string, 0, len(program)/instructionSize+1)
	for i := 0; i+1 < len(program); i += instructionSize {
		word := uint16(program[i])<<8 | uint16(program[i+1])
		addr := base + uint16(i)
		lines = append(lines, fmt.Sprintf("%03X: %04X  %s", addr, word, Disasm(word)))
	}
	if len(program)%instructionSize == 1 {
		last := len(program) - 1
		lines = append(lines, fmt.Sprintf("%03X: %02X    DB 0x%02X", base+uint16(last), program[last], program[last]))
	}
	return lines
}
