// Package shm implements the named, advisory shared-memory table from
// spec.md §3 and §4.G: a fixed-capacity table of lock-bit-protected
// regions carved from a separate shared-memory arena, addressed by a
// caller-supplied integer id.
package shm

import "github.com/jessielea/miniker/common"

type slot struct {
	shmid int
	tos   uint32
	lock  bool
}

// Table is the kernel's shared-memory table. Slots are never freed during
// the system's lifetime, matching spec.md §3's invariant; regionSize and
// capacity come from common.Config.
type Table struct {
	shmemTop   uint32
	regionSize uint32
	slots      []slot
	n          int
}

// New creates a shared-memory table backed by an arena whose high address
// is shmemTop, with the given per-region size and slot capacity.
func New(shmemTop, regionSize uint32, capacity int) *Table {
	return &Table{shmemTop: shmemTop, regionSize: regionSize, slots: make([]slot, capacity)}
}

func (t *Table) find(shmid int) (int, bool) {
	for i := 0; i < t.n; i++ {
		if t.slots[i].shmid == shmid {
			return i, true
		}
	}
	return 0, false
}

func (t *Table) tosFor(idx int) uint32 {
	return t.shmemTop - uint32(idx)*t.regionSize
}

// Get resolves shmid to its region's top-of-region address, allocating a
// new slot on first use. A single attempt is made per call: if the slot
// exists and is currently locked, Get returns immediately with ErrBusy
// rather than blocking or rescheduling inside the kernel, per spec.md
// §5's invariant that a supervisor call never blocks except on UART
// read. The caller drives any retry itself, via a later shmget trap
// (typically after a yield). On success the slot is left locked and its
// address returned; on exhaustion (allocating past capacity) it returns
// ErrShrmTableFull rather than the original source's undefined behavior,
// per spec.md §7.
func (t *Table) Get(shmid int) (uint32, common.Err_t) {
	idx, found := t.find(shmid)
	if !found {
		if t.n >= len(t.slots) {
			return 0, common.ErrShrmTableFull
		}
		idx = t.n
		t.slots[idx] = slot{shmid: shmid, tos: t.tosFor(idx)}
		t.n++
		t.slots[idx].lock = true
		return t.slots[idx].tos, common.OK
	}

	if t.slots[idx].lock {
		return 0, common.ErrBusy
	}

	t.slots[idx].lock = true
	return t.slots[idx].tos, common.OK
}

// Detach clears shmid's lock unconditionally: no ownership check, per
// spec.md §4.G. A miss is a silent no-op.
func (t *Table) Detach(shmid int) {
	if idx, found := t.find(shmid); found {
		t.slots[idx].lock = false
	}
}

// N returns the number of allocated shared-memory slots, for assertions.
func (t *Table) N() int { return t.n }

// Locked reports whether shmid's slot is currently locked; it returns
// false for an id that has never been allocated.
func (t *Table) Locked(shmid int) bool {
	idx, found := t.find(shmid)
	return found && t.slots[idx].lock
}
