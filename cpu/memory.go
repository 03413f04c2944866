package cpu

// memory layout
const (
	// MemorySize is the addressable memory, 4KB.
	MemorySize = 0x1000

	// ProgramStart is where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits.
	MaxProgramSize = MemorySize - ProgramStart

	addressMask = MemorySize - 1
)

// Memory is the 4KB main memory. Every access wraps modulo MemorySize, an
// index register pointing past the end reads from the start of memory.
type Memory [MemorySize]byte

// ReadByte returns the byte at addr.
func (m *Memory) ReadByte(addr uint16) byte {
	return m[addr&addressMask]
}

// WriteByte stores data at addr.
func (m *Memory) WriteByte(addr uint16, data byte) {
	m[addr&addressMask] = data
}

// ReadWord returns the big endian word at addr. Both bytes wrap
// independently, a word at 0xFFF is made of 0xFFF and 0x000.
func (m *Memory) ReadWord(addr uint16) uint16 {
	return uint16(m.ReadByte(addr))<<8 | uint16(m.ReadByte(addr+1))
}

// WriteWord stores data big endian at addr.
func (m *Memory) WriteWord(addr, data uint16) {
	m.WriteByte(addr, byte(data>>8))
	m.WriteByte(addr+1, byte(data))
}

// Load copies data to memory starting at addr.
func (m *Memory) Load(addr uint16, data []byte) {
	for i, b := range data {
		m.WriteByte(addr+uint16(i), b)
	}
}
