// Package common holds the types shared by every kernel package: the CPU
// context snapshot, the process control block, the supervisor-call opcode
// table, the error taxonomy, and the runtime configuration.
package common

// NumGPR is the number of general-purpose registers saved in a Ctx,
// indexed 0..NumGPR-1. Supervisor-call arguments live in Gpr[0:3] and the
// return value is written back to Gpr[0].
const NumGPR = 13

// Ctx is a snapshot of the user-mode register file captured by the
// assembly trampoline on trap entry. The trampoline owns the memory this
// type describes; the kernel only ever holds a pointer to it for the
// duration of a single trap handler activation.
//
// Field order is significant to the (unspecified) trampoline's calling
// contract: Gpr first, then Pc, Sp, Cpsr. A trampoline written against an
// older layout must be updated if this order changes.
type Ctx struct {
	Gpr  [NumGPR]uint32
	Pc   uint32
	Sp   uint32
	Cpsr uint32
}

// CpsrUserIRQEnabled is the status-word value the reset handler installs
// for a freshly-initialized process: user mode, IRQs enabled.
const CpsrUserIRQEnabled = 0x50
