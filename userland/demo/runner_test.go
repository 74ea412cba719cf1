package demo

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jessielea/miniker/common"
	"github.com/jessielea/miniker/device"
	"github.com/jessielea/miniker/kernel"
	"github.com/jessielea/miniker/userland"
	"github.com/stretchr/testify/require"
)

func newTestKernel(capacity int) *kernel.Kernel {
	cfg := common.Config{
		ProcessTableCapacity: capacity,
		StackSize:            0x100,
		ShrmRegionSize:       0x40,
		MaxShrm:              16,
		TimerPeriodTicks:     1 << 20,
	}
	devs := kernel.Devices{
		Timer: device.NewSimTimer(),
		IRQC:  device.NewSimIRQController(),
		UART:  device.NewSimUART(),
	}
	return kernel.New(cfg, devs, nil)
}

func TestForkHelperRunsParentAndChildToCompletion(t *testing.T) {
	k := newTestKernel(4)
	k.Boot(0x1000)
	r := NewRunner(k)

	var parentRan, childRan int32

	r.Start(func(sys *userland.Syscalls) {
		r.Fork(sys, func(childSys *userland.Syscalls) {
			atomic.StoreInt32(&childRan, 1)
			childSys.Exit()
		})
		atomic.StoreInt32(&parentRan, 1)
		sys.Exit()
	})

	done := make(chan struct{})
	go func() { r.Wait(); close(done) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not finish within timeout")
	}

	require.EqualValues(t, 1, atomic.LoadInt32(&parentRan))
	require.EqualValues(t, 1, atomic.LoadInt32(&childRan))
	require.Equal(t, 2, k.Procs().N())
}

func TestPipeDemoCompletes(t *testing.T) {
	k := newTestKernel(4)
	k.Boot(0x1000)
	r := NewRunner(k)

	r.Start(func(sys *userland.Syscalls) {
		PipeDemo(r, sys)
	})

	done := make(chan struct{})
	go func() { r.Wait(); close(done) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pipe demo did not finish within timeout")
	}

	uart := k.UART().(*device.SimUART)
	require.Contains(t, string(uart.Written()), "HI")
}

// TestDiningPhilosophersCompletesUnderRealContention exercises the
// scenario most likely to deadlock: every forked philosopher inherits
// BasePriority 0 from the bootstrap process, so the scheduler switches
// executing slots on every Yield, and with 16 philosophers sharing 16
// adjacent fork regions, real lock contention on shmget is essentially
// guaranteed. It must resolve via each contending philosopher's own
// retry loop rather than blocking inside the kernel.
func TestDiningPhilosophersCompletesUnderRealContention(t *testing.T) {
	k := newTestKernel(20)
	k.Boot(0x1000)
	r := NewRunner(k)

	r.Start(func(sys *userland.Syscalls) {
		DiningPhilosophers(r, sys, 2)
	})

	done := make(chan struct{})
	go func() { r.Wait(); close(done) }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("dining philosophers did not finish within timeout")
	}

	uart := k.UART().(*device.SimUART)
	require.Contains(t, string(uart.Written()), "EATING")
}
