package common

// Err_t is the kernel's error taxonomy, mirroring the teacher's
// common.Err_t convention of a small signed int rather than the `error`
// interface: it is cheap to stash in a register-return value and has a
// fixed, enumerable set of members a supervisor call can produce.
type Err_t int

const (
	// OK indicates success; it is the zero value so a freshly-zeroed
	// result never reads as an error by accident.
	OK Err_t = 0

	// ErrProcTableFull is returned by fork when the process table has
	// reached its configured capacity. gpr[0] carries -1 to the caller
	// per the supervisor-call ABI; ErrProcTableFull is available to Go
	// callers that want the specific cause.
	ErrProcTableFull Err_t = -1

	// ErrShrmTableFull is returned by shmget when allocating a new named
	// region would exceed MaxShrm.
	ErrShrmTableFull Err_t = -2

	// ErrNotFound is returned by kill when no slot matches the pid;
	// callers that only care about the syscall ABI should ignore it, since
	// kill is a no-op on a miss, not a failure. (shmdt on an unknown id is
	// also a no-op, and returns OK.)
	ErrNotFound Err_t = -3

	// ErrBusy is returned by shmget when the named region exists but is
	// currently locked by another process. The supervisor call returns
	// immediately rather than spinning inside the kernel; the caller is
	// expected to retry the same shmget on a later trap, typically after
	// a yield.
	ErrBusy Err_t = -4
)

func (e Err_t) String() string {
	switch e {
	case OK:
		return "ok"
	case ErrProcTableFull:
		return "process table full"
	case ErrShrmTableFull:
		return "shared-memory table full"
	case ErrNotFound:
		return "not found"
	case ErrBusy:
		return "region locked"
	default:
		return "unknown error"
	}
}

// SvcReturn is the register value a failed supervisor call writes to
// gpr[0] — the ABI specifies no richer failure signal than this.
const SvcReturn = -1
