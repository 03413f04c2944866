package cpu

import (
	"fmt"
	"strings"
)

// TraceEntry is one executed instruction.
type TraceEntry struct {
	Address uint16
	Opcode  uint16
}

func (e TraceEntry) String() string {
	return fmt.Sprintf("%03X: %04X  %s", e.Address, e.Opcode, Disasm(e.Opcode))
}

// DebugQueue is a FIFO queue of the most recent instructions. Once maxSize
// is reached the oldest entry is dropped.
type DebugQueue struct {
	items   []TraceEntry
	maxSize int
}

// NewQueue creates a new empty queue.
func NewQueue(maxSize int) *DebugQueue {
	if maxSize < 1 {
		maxSize = 1
	}
	return &DebugQueue{
		items:   make([]TraceEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Enqueue adds an item to the rear of the queue.
func (q *DebugQueue) Enqueue(item TraceEntry) {
	if len(q.items) == q.maxSize {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, item)
}

// Items returns a copy of the queued entries, oldest first.
func (q *DebugQueue) Items() []TraceEntry {
	out := make([]TraceEntry, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued entries.
func (q *DebugQueue) Len() int {
	return len(q.items)
}

// IsEmpty checks if the queue is empty.
func (q *DebugQueue) IsEmpty() bool {
	return len(q.items) == 0
}

// Clear drops all entries.
func (q *DebugQueue) Clear() {
	q.items = q.items[:0]
}

// String lists the entries one per line.
func (q *DebugQueue) String() string {
	var b strings.Builder
	for _, item := range q.items {
		b.WriteString(item.String())
		b.WriteByte('\n')
	}
	return b.String()
}
