// Package userland stands in for the real trampoline's SVC instruction:
// a thin client that builds the register arguments a supervisor call
// expects and invokes the kernel's dispatcher directly, since this
// rewrite has no assembly boundary to cross. See spec.md §4.H and §6.
package userland

import "github.com/jessielea/miniker/common"

// Kernel is the subset of *kernel.Kernel a Syscalls client needs. It is
// declared here, not imported from package kernel, so userland can be
// exercised against a bare Dispatcher in tests without pulling in the
// kernel package's device-wiring concerns.
type Kernel interface {
	Svc(op common.Opcode, args [3]uint32, buf []byte) (uint32, common.Err_t)
}

// Syscalls is a process's view of the kernel: every method corresponds
// to one supervisor-call opcode from spec.md's ABI table.
type Syscalls struct {
	k Kernel
}

// New returns a Syscalls client bound to k. Each process in a simulation
// or test typically gets its own Syscalls wrapping the same Kernel, since
// the kernel — not this client — tracks which process is executing.
func New(k Kernel) *Syscalls {
	return &Syscalls{k: k}
}

// Yield gives up the remainder of this process's time slice, subject to
// the scheduler's aging check (spec.md §4.D) — it is not a forced switch.
func (s *Syscalls) Yield() {
	s.k.Svc(common.OpYield, [3]uint32{}, nil)
}

// Write emits buf's bytes to the console, returning the count written.
func (s *Syscalls) Write(buf []byte) int {
	n, _ := s.k.Svc(common.OpWrite, [3]uint32{0, 0, uint32(len(buf))}, buf)
	return int(n)
}

// Read blocks until len(buf) bytes have arrived from the console, filling
// buf in place. After the read completes the kernel writes a trailing
// framing byte ('x') to the console, per SPEC_FULL.md's supplemented
// read-completion echo.
func (s *Syscalls) Read(buf []byte) int {
	n, _ := s.k.Svc(common.OpRead, [3]uint32{0, 0, uint32(len(buf))}, buf)
	return int(n)
}

// Fork duplicates the calling process and returns the child's pid to the
// caller, with common.OK. The child's saved context holds 0
// in gpr[0], but no call to this method ever returns that 0: the call
// returns only in the parent, so the child's code has to be started
// separately (demo.Runner.Fork does this with a new goroutine).
func (s *Syscalls) Fork() (int, common.Err_t) {
	pid, err := s.k.Svc(common.OpFork, [3]uint32{}, nil)
	return int(pid), err
}

// Exit terminates the calling process.
func (s *Syscalls) Exit() {
	s.k.Svc(common.OpExit, [3]uint32{}, nil)
}

// Exec replaces the calling process's program, starting at entry.
func (s *Syscalls) Exec(entry uint32) {
	s.k.Svc(common.OpExec, [3]uint32{entry, 0, 0}, nil)
}

// Kill terminates the process identified by pid.
func (s *Syscalls) Kill(pid int) common.Err_t {
	_, err := s.k.Svc(common.OpKill, [3]uint32{uint32(pid)}, nil)
	return err
}

// ShmGet resolves shmid to a shared-memory region's address, allocating
// one on first use. A single attempt is made: if the region is currently
// held by another process, it returns common.ErrBusy immediately rather
// than blocking, and the caller must retry via a later call (typically
// after a Yield).
func (s *Syscalls) ShmGet(shmid int) (uint32, common.Err_t) {
	tos, err := s.k.Svc(common.OpShmGet, [3]uint32{uint32(shmid)}, nil)
	return tos, err
}

// ShmDt releases shmid's lock.
func (s *Syscalls) ShmDt(shmid int) {
	s.k.Svc(common.OpShmDt, [3]uint32{uint32(shmid)}, nil)
}
