package fault

/**
 * Separate package exists mainly in order to avoid cyclic imports
 * between the cpu and the system run loop.
 */

import (
	"errors"
	"fmt"
)

// Kind of a fault raised by the instruction engine.
type Kind int

const (
	// UnknownOpcode : the fetched word matches none of the instructions.
	// Not an error as such, it is the designed termination signal.
	UnknownOpcode Kind = iota + 1

	// StackOverflow : call with all 16 stack entries in use
	StackOverflow

	// StackUnderflow : return with nothing pushed
	StackUnderflow
)

// sentinel errors, matched through Fault.Is
var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrStackUnderflow = errors.New("call stack underflow")
)

var kindErrors = map[Kind]error{
	UnknownOpcode:  ErrUnknownOpcode,
	StackOverflow:  ErrStackOverflow,
	StackUnderflow: ErrStackUnderflow,
}

// Fault describes what went wrong while executing the instruction at Address.
type Fault struct {
	Kind    Kind
	Address uint16
	Opcode  uint16
	Msg     string
}

// New returns a fault of the given kind.
func New(kind Kind, address, opcode uint16, msg string) Fault {
	return Fault{Kind: kind, Address: address, Opcode: opcode, Msg: msg}
}

func (f Fault) Error() string {
	base := "fault"
	if err, ok := kindErrors[f.Kind]; ok {
		base = err.Error()
	}
	if f.Msg == "" {
		return fmt.Sprintf("%s at %03X (opcode %04X)", base, f.Address, f.Opcode)
	}
	return fmt.Sprintf("%s at %03X (opcode %04X): %s", base, f.Address, f.Opcode, f.Msg)
}

// Is makes errors.Is(f, ErrStackOverflow) and friends work.
func (f Fault) Is(target error) bool {
	return kindErrors[f.Kind] == target
}

// IsHalt reports whether err is the clean termination signal.
func IsHalt(err error) bool {
	return errors.Is(err, ErrUnknownOpcode)
}
