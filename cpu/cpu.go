package cpu

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"chip8/display"
	"chip8/fault"
	"chip8/keypad"
)

// errors returned by Load
var (
	ErrEmptyProgram   = errors.New("program is empty")
	ErrProgramTooLong = errors.New("program does not fit into memory")
)

// instruction size in bytes
const instructionSize = 2

// CPU holds the machine state and executes instructions on it. It is owned
// by a single goroutine for the duration of a run.
type CPU struct {
	Memory    Memory
	Registers Registers

	// I is the index register used by memory indirect instructions.
	I uint16

	// DT and ST are the delay and sound timers. They are decremented by the
	// timing driver, not by instructions.
	DT uint8
	ST uint8

	// PC points to the next instruction.
	PC    uint16
	Stack Stack

	// AwaitingKey is set while a wait-key instruction found no held key. The
	// same instruction is executed again on the next step.
	AwaitingKey bool

	// per step context
	advance bool
	redraw  bool
	plane   *display.Plane
	keys    [keypad.Keys]bool

	rnd   *rand.Rand
	trace *DebugQueue

	// instructions are kept in maps, where key is the opcode with its
	// operands masked out, and value is the function executing it.
	// systemOpcodes are matched on the full word, addressOpcodes on the
	// first nibble, registerOpcodes on the first and last nibble and
	// miscOpcodes on the first nibble and the low byte.
	systemOpcodes   map[uint16](func(uint16))
	addressOpcodes  map[uint16](func(uint16))
	registerOpcodes map[uint16](func(uint16))
	miscOpcodes     map[uint16](func(uint16))
}

// Option configures a CPU.
type Option func(*CPU)

// WithRandom sets the source for the random instruction.
func WithRandom(rnd *rand.Rand) Option {
	return func(c *CPU) {
		c.rnd = rnd
	}
}

// WithSeed makes the random instruction predictable.
func WithSeed(seed int64) Option {
	return WithRandom(rand.New(rand.NewSource(seed)))
}

// WithTrace keeps the last size executed instructions.
func WithTrace(size int) Option {
	return func(c *CPU) {
		c.trace = NewQueue(size)
	}
}

// Result describes one executed step.
type Result struct {
	// Address and Opcode of the executed instruction.
	Address uint16
	Opcode  uint16

	// Redraw is set when the display plane was modified.
	Redraw bool

	// Waiting is set when a wait-key instruction found no key.
	Waiting bool
}

// New initializes and returns the CPU, with the font loaded and the program
// counter at ProgramStart.
func New(opts ...Option) *CPU {
	c := &CPU{}
	for _, opt := range opts {
		opt(c)
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c.systemOpcodes = make(map[uint16](func(uint16)))
	c.addressOpcodes = make(map[uint16](func(uint16)))
	c.registerOpcodes = make(map[uint16](func(uint16)))
	c.miscOpcodes = make(map[uint16](func(uint16)))

	// full word:
	c.systemOpcodes[0x00E0] = c.clsOp
	c.systemOpcodes[0x00EE] = c.retOp

	// address / immediate operand:
	c.addressOpcodes[0x1000] = c.jpOp
	c.addressOpcodes[0x2000] = c.callOp
	c.addressOpcodes[0x3000] = c.seImmOp
	c.addressOpcodes[0x4000] = c.sneImmOp
	c.addressOpcodes[0x6000] = c.ldImmOp
	c.addressOpcodes[0x7000] = c.addImmOp
	c.addressOpcodes[0xA000] = c.ldIOp
	c.addressOpcodes[0xB000] = c.jpV0Op
	c.addressOpcodes[0xC000] = c.rndOp
	c.addressOpcodes[0xD000] = c.drwOp

	// register / register:
	c.registerOpcodes[0x5000] = c.seRegOp
	c.registerOpcodes[0x8000] = c.ldRegOp
	c.registerOpcodes[0x8001] = c.orOp
	c.registerOpcodes[0x8002] = c.andOp
	c.registerOpcodes[0x8003] = c.xorOp
	c.registerOpcodes[0x8004] = c.addOp
	c.registerOpcodes[0x8005] = c.subOp
	c.registerOpcodes[0x8006] = c.shrOp
	c.registerOpcodes[0x8007] = c.subnOp
	c.registerOpcodes[0x800E] = c.shlOp
	c.registerOpcodes[0x9000] = c.sneRegOp

	// keys, timers, index:
	c.miscOpcodes[0xE09E] = c.skpOp
	c.miscOpcodes[0xE0A1] = c.sknpOp
	c.miscOpcodes[0xF007] = c.ldVxDTOp
	c.miscOpcodes[0xF00A] = c.ldKeyOp
	c.miscOpcodes[0xF015] = c.ldDTOp
	c.miscOpcodes[0xF018] = c.ldSTOp
	c.miscOpcodes[0xF01E] = c.addIOp
	c.miscOpcodes[0xF029] = c.ldFontOp
	c.miscOpcodes[0xF033] = c.bcdOp
	c.miscOpcodes[0xF055] = c.storeOp
	c.miscOpcodes[0xF065] = c.loadOp

	c.Reset()
	return c
}

// Reset clears the machine state and reloads the font. Memory above the
// font is zeroed, so the program has to be loaded again.
func (c *CPU) Reset() {
	c.Memory = Memory{}
	c.Memory.Load(0, Font[:])
	c.Registers = Registers{}
	c.I = 0
	c.DT = 0
	c.ST = 0
	c.PC = ProgramStart
	c.Stack.Reset()
	c.AwaitingKey = false
	if c.trace != nil {
		c.trace.Clear()
	}
}

// Load places the program image at ProgramStart.
func (c *CPU) Load(program []byte) error {
	if len(program) == 0 {
		return ErrEmptyProgram
	}
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLong, len(program), MaxProgramSize)
	}
	c.Memory.Load(ProgramStart, program)
	return nil
}

// Fetch returns the instruction word at the program counter.
func (c *CPU) Fetch() uint16 {
	return c.Memory.ReadWord(c.PC)
}

// Decode returns the function executing the instruction. Words matching none
// of the instructions return an unknown opcode fault.
func (c *CPU) Decode(instr uint16) (func(uint16), error) {
	if val, ok := c.systemOpcodes[instr]; ok {
		return val, nil
	}

	if val, ok := c.addressOpcodes[instr&0xF000]; ok {
		return val, nil
	}

	if val, ok := c.registerOpcodes[instr&0xF00F]; ok {
		return val, nil
	}

	if val, ok := c.miscOpcodes[instr&0xF0FF]; ok {
		return val, nil
	}

	return nil, fault.New(fault.UnknownOpcode, c.PC, instr, "")
}

// Step executes exactly one instruction. plane is the display plane draw and
// clear write into, keys the current keypad snapshot.
//
// An unknown opcode returns a fault matching fault.ErrUnknownOpcode, the
// designed end of a program. Stack faults return faults matching
// fault.ErrStackOverflow or fault.ErrStackUnderflow. The machine state is
// left as it was before the failing instruction.
func (c *CPU) Step(plane *display.Plane, keys [keypad.Keys]bool) (res Result, err error) {
	defer func() {
		t := recover()
		switch t := t.(type) {
		case fault.Fault:
			err = t
		case nil:
			// ignore
		default:
			panic(t)
		}
	}()

	c.plane = plane
	c.keys = keys
	c.advance = true
	c.redraw = false

	res.Address = c.PC
	res.Opcode = c.Fetch()

	opcode, err := c.Decode(res.Opcode)
	if err != nil {
		return res, err
	}
	opcode(res.Opcode)

	if c.advance {
		c.PC += instructionSize
	}
	if c.trace != nil {
		c.trace.Enqueue(TraceEntry{Address: res.Address, Opcode: res.Opcode})
	}

	res.Redraw = c.redraw
	res.Waiting = c.AwaitingKey
	return res, nil
}

// Trace returns the most recently executed instructions, oldest first. It
// is empty unless the CPU was created with WithTrace.
func (c *CPU) Trace() []TraceEntry {
	if c.trace == nil {
		return nil
	}
	return c.trace.Items()
}

// TraceDump returns the recent instructions one per line.
func (c *CPU) TraceDump() string {
	if c.trace == nil {
		return ""
	}
	return c.trace.String()
}

// DumpRegisters returns register values and machine state as a single line.
func (c *CPU) DumpRegisters() string {
	var res strings.Builder
	res.WriteString(c.Registers.String())
	fmt.Fprintf(&res, " I %03X PC %03X SP %d DT %02X ST %02X", c.I, c.PC, c.Stack.Depth(), c.DT, c.ST)
	return res.String()
}

// PrintState returns the registers followed by the instruction at the
// program counter.
func (c *CPU) PrintState() string {
	instruction := c.Fetch()
	return fmt.Sprintf("%s\n instr %03X: %04X   %s", c.DumpRegisters(), c.PC, instruction, Disasm(instruction))
}

// trap raises a fault for the instruction being executed, Step recovers it.
func (c *CPU) trap(kind fault.Kind, instruction uint16, msg string) {
	panic(fault.New(kind, c.PC, instruction, msg))
}
