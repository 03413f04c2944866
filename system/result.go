package system

import "time"

// Reason tells why a run ended.
type Reason int

// run termination reasons
const (
	ReasonHalted    Reason = iota + 1 // unknown opcode fetched
	ReasonClosed                      // display closed by the operator
	ReasonCancelled                   // context cancelled
	ReasonStepLimit                   // MaxSteps reached
	ReasonFault                       // stack fault or display error
)

var reasonNames = map[Reason]string{
	ReasonHalted:    "halted",
	ReasonClosed:    "closed",
	ReasonCancelled: "cancelled",
	ReasonStepLimit: "step limit",
	ReasonFault:     "fault",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return "unknown"
}

// Result summarizes a run.
type Result struct {
	Reason       Reason
	Instructions uint64
	Elapsed      time.Duration
}

// InstructionsPerSecond returns the average execution speed of the run.
func (r Result) InstructionsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Instructions) / r.Elapsed.Seconds()
}
