// Package sched implements the aging-priority scheduler described in
// spec.md §4.D: a single Tick function shared by the timer-IRQ path and the
// explicit yield supervisor call.
package sched

import (
	"github.com/jessielea/miniker/common"
	"github.com/jessielea/miniker/procs"
)

// Scheduler owns the currently-executing slot index and picks the next
// Ready slot by a circular scan, per spec.md §4.D. It holds no copy of the
// process table's data, only a reference to it.
type Scheduler struct {
	table     *procs.Table
	executing int
}

// New returns a scheduler over table. The caller must set Executing once
// the bootstrap process has been installed (see trap.Dispatcher.Reset).
func New(table *procs.Table) *Scheduler {
	return &Scheduler{table: table}
}

// Executing returns the slot index currently marked Executing.
func (s *Scheduler) Executing() int { return s.executing }

// SetExecuting forcibly sets the executing slot index, used only by the
// reset handler to install the bootstrap process.
func (s *Scheduler) SetExecuting(i int) { s.executing = i }

// pickNext performs the circular scan starting at (executing+1) mod n,
// returning the first Ready slot found, or executing itself if none is
// Ready — spec.md §4.D's tie-break for "no other Ready slot".
func (s *Scheduler) pickNext() int {
	n := s.table.N()
	for i := 1; i < n; i++ {
		j := (s.executing + i) % n
		if s.table.Get(j).Status == common.Ready {
			return j
		}
	}
	return s.executing
}

// SwitchTo performs the five-step atomic context switch from spec.md
// §4.D: save *ctx into the executing slot (unless it is Terminated),
// install target's saved context into *ctx, mark target Executing, and
// reset its age. A no-op if target is already the executing slot.
func (s *Scheduler) SwitchTo(ctx *common.Ctx, target int) {
	if target == s.executing {
		return
	}
	cur := s.table.Get(s.executing)
	if cur.Status != common.Terminated {
		cur.Ctx = *ctx
		cur.Status = common.Ready
	}

	next := s.table.Get(target)
	*ctx = next.Ctx
	next.Status = common.Executing
	next.Age = 0

	s.executing = target
}

// Reschedule unconditionally switches to the next Ready slot, bypassing
// the aging check Tick applies. It is used by exit and kill, which must
// vacate a slot immediately rather than wait for its age to catch up.
func (s *Scheduler) Reschedule(ctx *common.Ctx) {
	s.SwitchTo(ctx, s.pickNext())
}

// Tick is the scheduler's single entry point, invoked on every timer IRQ
// and on an explicit yield supervisor call. If the executing process's age has
// reached its base priority, it yields to the next Ready slot (or
// continues if none exists); otherwise its age is incremented.
func (s *Scheduler) Tick(ctx *common.Ctx) {
	cur := s.table.Get(s.executing)
	if cur.Age == cur.BasePriority {
		next := s.pickNext()
		s.SwitchTo(ctx, next)
		return
	}
	cur.Age++
}
