// Package device abstracts the timer, interrupt controller and UART the
// kernel core drives, per spec.md §4.A. The core only ever talks to these
// interfaces; concrete MMIO register pokes live behind a build tag and are
// never imported by trap/sched/procs, so the scheduler and lifecycle
// properties in spec.md §8 are checkable off-target against Sim* doubles.
package device

// Timer is the periodic tick source.
type Timer interface {
	// Configure programs the timer to raise an interrupt every period
	// ticks. Idempotent: calling it again reprograms the period.
	Configure(periodTicks uint32)
	// Ack clears the timer's interrupt-pending bit. Must be called
	// exactly once per IRQ, before the interrupt controller's EOI.
	Ack()
}

// IRQController is the interrupt controller the dispatcher reads sources
// from and signals completion to.
type IRQController interface {
	// Enable globally unmasks all priority levels, enables the timer
	// interrupt line, and enables both the CPU interface and the
	// distributor. Called once from the reset handler, before the
	// bootstrap process is installed.
	Enable()
	// EnableCPU globally enables IRQ interrupts at the CPU level,
	// distinct from Enable's controller-level unmasking. Called once
	// from the reset handler, as its final step — after the bootstrap
	// process is installed and marked executing.
	EnableCPU()
	// AckStart reads the current interrupt source.
	AckStart() IRQID
	// AckEnd signals completion of handling irq to the controller.
	AckEnd(irq IRQID)
}

// IRQID is an opaque interrupt-source identifier as returned by
// IRQController.AckStart.
type IRQID uint32

// UART is the console's serial port: blocking single-byte I/O.
type UART interface {
	PutByte(b byte)
	GetByte() byte
}

// TimerIdentifier is implemented by an IRQController that can tell
// whether irq identifies the periodic timer source (IsTimerIRQ).
type TimerIdentifier interface {
	IsTimerIRQ(irq IRQID) bool
}
