// Package procs implements the fixed-capacity process table: identity,
// status, saved context and scheduling metadata for every process-table
// slot, per spec.md §3 and §4.B.
package procs

import "github.com/jessielea/miniker/common"

// Table is a fixed-capacity indexed mapping from slot index to Pcb. N
// tracks the highest slot index ever assigned, plus one — it never
// decreases, matching spec.md §8's "N is monotonically non-decreasing"
// law.
type Table struct {
	slots []common.Pcb
	n     int
}

// New allocates a table with the given capacity. Capacity must be at
// least 1 (slot 0 is the bootstrap process).
func New(capacity int) *Table {
	if capacity < 1 {
		panic("procs: capacity must be at least 1")
	}
	return &Table{slots: make([]common.Pcb, capacity)}
}

// Cap returns the table's fixed capacity.
func (t *Table) Cap() int { return len(t.slots) }

// N returns the current population count.
func (t *Table) N() int { return t.n }

// Get returns a pointer to slot i's Pcb. Callers within the kernel core
// hold this pointer only for the duration of the trap handler activation.
func (t *Table) Get(i int) *common.Pcb { return &t.slots[i] }

// Full reports whether allocating a new slot would exceed capacity.
func (t *Table) Full() bool { return t.n >= len(t.slots) }

// Alloc reserves the next slot (index N), increments N, and returns the
// new slot's index. The caller is responsible for initializing the slot;
// Alloc itself does not zero it (callers that need a clean slot should
// call Get(idx).Reset() first, since a never-before-used slot is already
// the Go zero value but a reused one might not be under a future caching
// scheme).
func (t *Table) Alloc() (idx int, ok bool) {
	if t.Full() {
		return 0, false
	}
	idx = t.n
	t.n++
	return idx, true
}

// LookupPID scans slots [0, N) for the first whose Pid matches pid,
// matching spec.md §4.B's "linear scan, first match wins" contract.
func (t *Table) LookupPID(pid int) (idx int, ok bool) {
	for i := 0; i < t.n; i++ {
		if t.slots[i].Status != common.Unused && t.slots[i].Pid == pid {
			return i, true
		}
	}
	return 0, false
}

// Each calls fn for every slot index in [0, N), in order.
func (t *Table) Each(fn func(i int, p *common.Pcb)) {
	for i := 0; i < t.n; i++ {
		fn(i, &t.slots[i])
	}
}
