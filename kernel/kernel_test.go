package kernel

import (
	"testing"

	"github.com/jessielea/miniker/common"
	"github.com/jessielea/miniker/device"
	"github.com/stretchr/testify/require"
)

func newTestKernel(capacity int) *Kernel {
	cfg := common.Config{
		ProcessTableCapacity: capacity,
		StackSize:            0x100,
		ShrmRegionSize:       0x40,
		MaxShrm:              4,
		TimerPeriodTicks:     4,
	}
	devs := Devices{
		Timer: device.NewSimTimer(),
		IRQC:  device.NewSimIRQController(),
		UART:  device.NewSimUART(),
	}
	return New(cfg, devs, nil)
}

func TestBootInstallsExecutingBootstrapProcess(t *testing.T) {
	k := newTestKernel(4)
	k.Boot(0x1234)

	require.Equal(t, 0, k.Executing())
	require.Equal(t, uint32(0x1234), k.Ctx().Pc)
	require.Equal(t, 1, k.Procs().Get(0).Pid)
}

func TestSvcStagesArgumentsIntoGprBeforeDispatch(t *testing.T) {
	k := newTestKernel(4)
	k.Boot(0x1000)

	res, err := k.Svc(common.OpWrite, [3]uint32{0, 0, 2}, []byte("hi"))
	require.Equal(t, common.OK, err)
	require.Equal(t, uint32(2), res)

	w, ok := k.UART().(*device.SimUART)
	require.True(t, ok)
	require.Equal(t, []byte("Rhi"), w.Written(), "boot's 'R' followed by the written bytes")
}

func TestForkThroughKernelAssignsNextPid(t *testing.T) {
	k := newTestKernel(4)
	k.Boot(0x1000)

	childPid, err := k.Svc(common.OpFork, [3]uint32{}, nil)
	require.Equal(t, common.OK, err)
	require.Equal(t, uint32(2), childPid)
	require.Equal(t, 2, k.Procs().N())
}
