package common

// Status is the lifecycle state of a process-table slot.
type Status int

const (
	// Unused marks a slot that has never been assigned, or has been
	// reclaimed and zeroed.
	Unused Status = iota
	Ready
	Executing
	Terminated
)

func (s Status) String() string {
	switch s {
	case Unused:
		return "unused"
	case Ready:
		return "ready"
	case Executing:
		return "executing"
	case Terminated:
		return "terminated"
	default:
		return "invalid"
	}
}

// Pcb is a process control block: everything the kernel needs to
// schedule, preempt and resume one process. Pid is assigned monotonically
// starting at 1 (pcb[0].Pid == 1, the bootstrap process); Ctx is undefined
// while Status == Executing, since the live register file is the trapped
// Ctx, not this copy.
type Pcb struct {
	Pid          int
	Status       Status
	Ctx          Ctx
	BasePriority uint32
	Age          uint32
}

// Reset zeroes a Pcb in place, matching the teacher's memset-then-mark
// idiom used on fork, exec-adjacent slot reuse, exit and kill.
func (p *Pcb) Reset() {
	*p = Pcb{}
}
