package trap

import "github.com/jessielea/miniker/common"

// fork duplicates the executing process: a new slot is allocated, its
// stack bytes copied verbatim from the parent's, and only the saved stack
// pointer rebased by the difference between the two stacks' top
// addresses — every other register, including the frame and link
// registers, is copied unchanged, per spec.md §3 and §4.F. The parent's
// live Ctx (gpr[0]) receives the child's pid; the child's saved Ctx
// (installed when it is first scheduled) receives 0.
//
// Slot index and pid are the same monotonically-increasing sequence
// shifted by one (slot 0 is pid 1), so no separate pid counter is kept.
func (d *Dispatcher) fork(ctx *common.Ctx) common.Err_t {
	parent := d.sched.Executing()

	child, ok := d.procs.Alloc()
	if !ok {
		ctx.Gpr[0] = uint32(common.SvcReturn)
		return common.ErrProcTableFull
	}

	parentPcb := d.procs.Get(parent)
	childPcb := d.procs.Get(child)
	childPcb.Reset()

	d.stack.Copy(child, parent)

	offset := d.stack.Top(child) - d.stack.Top(parent)

	childPcb.Ctx = *ctx
	childPcb.Ctx.Sp = ctx.Sp + offset
	childPcb.Ctx.Gpr[0] = 0

	childPcb.Pid = child + 1
	childPcb.BasePriority = parentPcb.BasePriority
	childPcb.Age = 0
	childPcb.Status = common.Ready

	ctx.Gpr[0] = uint32(childPcb.Pid)
	return common.OK
}

// exec replaces the executing process's program: its stack is zeroed and
// its saved context fully reset, with only the new entry point (taken
// from gpr[0]) and a fresh stack pointer installed. Pid, base priority
// and age — all held in the process table, not the Ctx — are untouched,
// per spec.md §4.F.
func (d *Dispatcher) exec(ctx *common.Ctx) {
	idx := d.sched.Executing()
	entry := ctx.Gpr[0]

	d.stack.Zero(idx)

	*ctx = common.Ctx{}
	ctx.Pc = entry
	ctx.Sp = d.stack.Top(idx)
	ctx.Cpsr = common.CpsrUserIRQEnabled
}

// exit terminates the executing process: its slot is zeroed and marked
// Terminated, then the scheduler is forced to switch to the next Ready
// slot immediately, regardless of that slot's age. Per spec.md §4.F,
// there is no process left to return a value to.
func (d *Dispatcher) exit(ctx *common.Ctx) {
	idx := d.sched.Executing()
	p := d.procs.Get(idx)
	p.Reset()
	p.Status = common.Terminated

	d.sched.Reschedule(ctx)
}

// kill terminates the process identified by gpr[0], which may or may not
// be the caller. gpr[0] out is "—" in spec.md's opcode table: kill never
// writes a return value, in any of its three outcomes. If the target is
// the caller, behavior is identical to exit: the scheduler switches away
// immediately and ctx belongs to whichever process runs next. Otherwise
// the target slot is zeroed and marked Terminated and the caller resumes
// with gpr[0] exactly as it was on entry. An unknown pid is a silent
// no-op, per spec.md §7 — distinct from the −1-on-failure convention
// resource-exhaustion errors use.
func (d *Dispatcher) kill(ctx *common.Ctx) common.Err_t {
	pid := int(ctx.Gpr[0])
	idx, found := d.procs.LookupPID(pid)
	if !found {
		return common.ErrNotFound
	}

	killingSelf := idx == d.sched.Executing()

	p := d.procs.Get(idx)
	p.Reset()
	p.Status = common.Terminated

	if killingSelf {
		d.sched.Reschedule(ctx)
		return common.OK
	}

	return common.OK
}
