// Package trap implements the kernel's three entry points — reset, timer
// IRQ, and supervisor call — and the process lifecycle operations
// (fork/exec/exit/kill) they expose, per spec.md §4.E and §4.F.
package trap

import (
	"github.com/jessielea/miniker/common"
	"github.com/jessielea/miniker/device"
	"github.com/jessielea/miniker/kernel/klog"
	"github.com/jessielea/miniker/procs"
	"github.com/jessielea/miniker/sched"
	"github.com/jessielea/miniker/shm"
	"github.com/jessielea/miniker/stackarena"
	"go.uber.org/zap"
)

// Dispatcher wires the device façade, process table, stack arena,
// scheduler and shared-memory table together. It is the kernel's single
// mutable-state owner: every method below borrows the trapped Ctx only
// for the duration of the call, matching the "disable preemption while a
// handler holds the borrow" design note in spec.md §9.
type Dispatcher struct {
	cfg common.Config

	timer device.Timer
	irqc  device.IRQController
	uart  device.UART

	procs *procs.Table
	stack *stackarena.Arena
	sched *sched.Scheduler
	shm   *shm.Table

	log *klog.Logger
}

// New assembles a Dispatcher from its components. stack must be sized for
// cfg.ProcessTableCapacity stacks of cfg.StackSize bytes each. log may be
// nil (equivalent to klog.Noop()).
func New(cfg common.Config, timer device.Timer, irqc device.IRQController, uart device.UART, procTable *procs.Table, stack *stackarena.Arena, shmTable *shm.Table, log *klog.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:   cfg,
		timer: timer,
		irqc:  irqc,
		uart:  uart,
		procs: procTable,
		stack: stack,
		sched: sched.New(procTable),
		shm:   shmTable,
		log:   log,
	}
}

// Scheduler exposes the dispatcher's scheduler, e.g. so a test driver can
// read Executing() between calls.
func (d *Dispatcher) Scheduler() *sched.Scheduler { return d.sched }

// Procs exposes the process table for inspection in tests.
func (d *Dispatcher) Procs() *procs.Table { return d.procs }

// Shm exposes the shared-memory table for inspection in tests.
func (d *Dispatcher) Shm() *shm.Table { return d.shm }

// Reset is the kernel's entry point at boot, invoked once with a mutable
// pointer to the initial Ctx. It programs the timer, unmasks interrupts
// at the controller, installs the bootstrap process (pid 1, base
// priority 0, ready to run entry at stack 0's top), marks it Executing,
// and finally globally enables IRQs at the CPU level — a distinct, later
// step from the controller-level unmask above, matching the original
// source's trailing int_enable_irq() call. Per spec.md §4.E, the first
// byte the boot sequence emits to the console is 'R'.
func (d *Dispatcher) Reset(ctx *common.Ctx, entry uint32) {
	d.timer.Configure(d.cfg.TimerPeriodTicks)
	d.irqc.Enable()

	boot := d.procs.Get(0)
	boot.Reset()
	boot.Pid = 1
	boot.Status = common.Ready
	boot.Ctx.Cpsr = common.CpsrUserIRQEnabled
	boot.Ctx.Pc = entry
	boot.Ctx.Sp = d.stack.Top(0)
	boot.BasePriority = 0
	boot.Age = 0

	d.uart.PutByte('R')
	d.log.Debug("reset: bootstrap process installed", zap.Int("pid", boot.Pid))

	*ctx = boot.Ctx
	boot.Status = common.Executing
	d.sched.SetExecuting(0)

	// procs.Table.Alloc reserves slot 0 for the bootstrap process; slots
	// allocated by fork start from slot 1.
	d.procs.Alloc()

	d.irqc.EnableCPU()
}

// IRQ is the kernel's asynchronous entry point. It reads the interrupt
// source; if it is the periodic timer, it acknowledges the timer and
// invokes the scheduler against *ctx, then signals completion to the
// controller regardless of source. Any other source is ignored, per
// spec.md §4.E.
func (d *Dispatcher) IRQ(ctx *common.Ctx) {
	id := d.irqc.AckStart()
	if isTimer(d.irqc, id) {
		d.timer.Ack()
		d.sched.Tick(ctx)
	}
	d.irqc.AckEnd(id)
}

func isTimer(irqc device.IRQController, id device.IRQID) bool {
	if ti, ok := irqc.(device.TimerIdentifier); ok {
		return ti.IsTimerIRQ(id)
	}
	return id == device.IRQTimer
}
