// Package demo drives the reference user programs — a console shell, the
// dining philosophers, and a shmget-backed producer/consumer — against a
// booted kernel.Kernel, standing in for the real system's user-space
// binaries. See SPEC_FULL.md's supplemented features.
package demo

import (
	"sync"

	"github.com/jessielea/miniker/common"
	"github.com/jessielea/miniker/kernel"
	"github.com/jessielea/miniker/userland"
)

// Runner cooperatively drives simulated user processes as goroutines, one
// per process-table slot, serialized so only the slot the kernel reports
// as Executing is allowed to touch kernel state — the Go-level stand-in
// for the single core spec.md §1 assumes. Every Syscalls call a process
// makes through a Runner-issued client blocks until its slot is scheduled
// again, so process code reads like straight-line sequential logic, the
// same as the original's C functions do under real preemption.
type Runner struct {
	k    *kernel.Kernel
	mu   sync.Mutex
	cond *sync.Cond
	wg   sync.WaitGroup
}

func NewRunner(k *kernel.Kernel) *Runner {
	r := &Runner{k: k}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// processHandle adapts a Runner to userland.Kernel for one process-table
// slot: every Svc call is serialized behind the Runner's lock and blocks
// the caller until the kernel schedules that slot again.
type processHandle struct {
	r    *Runner
	slot int
}

func (h *processHandle) Svc(op common.Opcode, args [3]uint32, buf []byte) (uint32, common.Err_t) {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	res, err := h.r.k.Svc(op, args, buf)
	h.r.cond.Broadcast()

	// A terminated slot is never scheduled again, so a process that just
	// exited (or killed itself) must not wait for its own turn — there
	// won't be one. Its goroutine is expected to return immediately
	// after this call.
	if h.r.k.Procs().Get(h.slot).Status == common.Terminated {
		return res, err
	}

	for h.r.k.Executing() != h.slot {
		h.r.cond.Wait()
	}
	return res, err
}

// Start runs fn as the bootstrap process (slot 0) on its own goroutine.
// Callers must have already called kernel.Kernel.Boot.
func (r *Runner) Start(fn func(sys *userland.Syscalls)) {
	r.goAt(0, fn)
}

func (r *Runner) goAt(slot int, fn func(sys *userland.Syscalls)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.mu.Lock()
		for r.k.Executing() != slot {
			r.cond.Wait()
		}
		r.mu.Unlock()
		fn(userland.New(&processHandle{r: r, slot: slot}))
	}()
}

// Fork performs the fork supervisor call on behalf of the process running
// on sys, then — if it succeeded — spawns child as a new goroutine bound
// to the new slot. Real fork duplicates a running call stack; Go has no
// continuation primitive to resume the caller's own stack a second time
// with gpr[0] reading 0, so the child's continuation is supplied
// explicitly here rather than observed via sys.Fork's return value inside
// a single goroutine, the way the original source's C does it.
func (r *Runner) Fork(sys *userland.Syscalls, child func(childSys *userland.Syscalls)) (int, common.Err_t) {
	pid, err := sys.Fork()
	if err == common.OK {
		r.goAt(pid-1, child)
	}
	return pid, err
}

// Tick delivers one timer IRQ to the kernel, for a driver loop simulating
// the periodic interrupt. It is serialized the same way process syscalls
// are, and wakes any goroutine the resulting scheduling decision selects.
func (r *Runner) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.k.IRQ()
	r.cond.Broadcast()
}

// Wait blocks until every process goroutine started via Start or Fork has
// returned (i.e. called Exit, or its function body returned).
func (r *Runner) Wait() {
	r.wg.Wait()
}
