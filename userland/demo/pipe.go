package demo

import "github.com/jessielea/miniker/userland"

// PipeDemo reworks original_source/user/pipeTest.c's pipe()-based
// producer/consumer as a shmget-backed one: the opcode table spec.md §4
// authorizes has no pipe syscall, so shmid 0's lock is used purely to
// serialize "parent writes, then child writes" — the same handoff shape,
// over shared-memory contention instead of a dropped pipe object. The
// payload itself still travels over the console (there is no byte-level
// shared-memory read/write primitive in this ABI, only the lock), unlike
// the original's pipe().
func PipeDemo(r *Runner, sys *userland.Syscalls) {
	const shmid = 0

	sys.Write([]byte("HI"))
	sys.ShmGet(shmid)

	r.Fork(sys, func(childSys *userland.Syscalls) {
		acquireShm(childSys, shmid) // retries, yielding, until the parent detaches
		childSys.Write([]byte("7"))
		childSys.ShmDt(shmid)
		childSys.Exit()
	})

	sys.Write([]byte(" producing\n"))
	sys.ShmDt(shmid)
	sys.Exit()
}
