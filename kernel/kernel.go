// Package kernel assembles the device façade, process table, stack
// arena, shared-memory table and trap dispatcher into the single boot
// singleton spec.md §4 describes, mirroring the teacher's convention of
// a top-level struct gluing its subsystems together rather than a
// constellation of package-level globals.
package kernel

import (
	"github.com/jessielea/miniker/common"
	"github.com/jessielea/miniker/device"
	"github.com/jessielea/miniker/kernel/klog"
	"github.com/jessielea/miniker/procs"
	"github.com/jessielea/miniker/shm"
	"github.com/jessielea/miniker/stackarena"
	"github.com/jessielea/miniker/trap"
	"go.uber.org/zap"
)

// Devices bundles the three device façades a Kernel drives. Either every
// field is Sim* (simulation/test mode) or every field is MMIO* (real
// hardware, behind the miniker_mmio build tag) — the kernel itself never
// cares which, since it only ever sees the device package's interfaces.
type Devices struct {
	Timer device.Timer
	IRQC  device.IRQController
	UART  device.UART
}

// Kernel is the booted system: its process table, stack arena,
// shared-memory table and dispatcher, plus the live register file the
// currently-executing process owns.
type Kernel struct {
	cfg  common.Config
	ctx  common.Ctx
	disp *trap.Dispatcher
	devs Devices
	log  *klog.Logger
}

// New constructs an un-booted Kernel: the process table, stack arena and
// shared-memory table are allocated per cfg, but no process exists until
// Boot is called. log may be nil, in which case logging is disabled.
func New(cfg common.Config, devs Devices, log *klog.Logger) *Kernel {
	if log == nil {
		log = klog.Noop()
	}

	procTable := procs.New(cfg.ProcessTableCapacity)
	stackMem := make([]byte, uint32(cfg.ProcessTableCapacity)*cfg.StackSize)
	stack := stackarena.New(stackMem, cfg.StackSize)

	shmMem := uint32(cfg.MaxShrm) * cfg.ShrmRegionSize
	shmTable := shm.New(shmMem, cfg.ShrmRegionSize, cfg.MaxShrm)

	disp := trap.New(cfg, devs.Timer, devs.IRQC, devs.UART, procTable, stack, shmTable, log)

	return &Kernel{
		cfg:  cfg,
		disp: disp,
		devs: devs,
		log:  log,
	}
}

// Boot installs the bootstrap process at entry and marks it executing,
// per spec.md §4.E. It must be called exactly once, before any IRQ or Svc.
func (k *Kernel) Boot(entry uint32) {
	k.disp.Reset(&k.ctx, entry)
	k.log.Info("kernel booted", zap.Uint32("entry", entry))
}

// IRQ delivers a timer interrupt to the dispatcher against the kernel's
// live context.
func (k *Kernel) IRQ() {
	k.disp.IRQ(&k.ctx)
}

// Svc invokes a supervisor call against the kernel's live context. args
// are staged into gpr[0:3] before the call, standing in for the real
// trampoline loading a process's argument registers ahead of its SVC
// instruction; buf is the byte buffer write/read operate on. It returns
// gpr[0] after the call, the ABI's single return-value slot.
func (k *Kernel) Svc(op common.Opcode, args [3]uint32, buf []byte) (uint32, common.Err_t) {
	k.ctx.Gpr[0], k.ctx.Gpr[1], k.ctx.Gpr[2] = args[0], args[1], args[2]
	err := k.disp.Svc(&k.ctx, op, buf)
	return k.ctx.Gpr[0], err
}

// Ctx returns a copy of the kernel's live register file, e.g. so a driver
// loop can read gpr[0] after a Svc call returns.
func (k *Kernel) Ctx() common.Ctx { return k.ctx }

// Executing returns the process-table slot index currently executing.
func (k *Kernel) Executing() int { return k.disp.Scheduler().Executing() }

// Procs exposes the process table, e.g. for a shell's "ps" command.
func (k *Kernel) Procs() *procs.Table { return k.disp.Procs() }

// Shm exposes the shared-memory table, e.g. for diagnostics.
func (k *Kernel) Shm() *shm.Table { return k.disp.Shm() }

// UART exposes the console device, so a driver loop can feed input and
// drain output without reaching back into Devices.
func (k *Kernel) UART() device.UART { return k.devs.UART }
