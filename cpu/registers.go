package cpu

import (
	"fmt"
	"strings"
)

// FlagRegister is VF. It is a regular register in the register file, but
// arithmetic, shift and draw instructions overwrite it with their carry,
// borrow or collision result. Well formed programs don't keep data in it.
const FlagRegister = 0xF

// Registers is the general purpose register file V0-VF.
type Registers [16]uint8

// Flag returns the value of VF.
func (r *Registers) Flag() uint8 {
	return r[FlagRegister]
}

// SetFlag sets VF to 1 or 0.
func (r *Registers) SetFlag(status bool) {
	if status {
		r[FlagRegister] = 1
	} else {
		r[FlagRegister] = 0
	}
}

// String returns the register values in hex.
func (r *Registers) String() string {
	var res strings.Builder
	for i, reg := range r {
		fmt.Fprintf(&res, "V%X %02X ", i, reg)
	}
	s := res.String()
	return s[:(len(s) - 1)]
}
