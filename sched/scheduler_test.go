package sched

import (
	"testing"

	"github.com/jessielea/miniker/common"
	"github.com/jessielea/miniker/procs"
	"github.com/stretchr/testify/require"
)

func readySlot(tbl *procs.Table, priority uint32) int {
	idx, _ := tbl.Alloc()
	p := tbl.Get(idx)
	p.Status = common.Ready
	p.BasePriority = priority
	return idx
}

func TestTickIncrementsAgeUntilItMatchesPriority(t *testing.T) {
	tbl := procs.New(2)
	a := readySlot(tbl, 3)
	readySlot(tbl, 3)

	s := New(tbl)
	s.SetExecuting(a)
	tbl.Get(a).Status = common.Executing

	ctx := &common.Ctx{}
	s.Tick(ctx)
	require.Equal(t, uint32(1), tbl.Get(a).Age)
	require.Equal(t, a, s.Executing(), "no switch until age reaches priority")

	s.Tick(ctx)
	require.Equal(t, uint32(2), tbl.Get(a).Age)

	s.Tick(ctx)
	require.Equal(t, uint32(3), tbl.Get(a).Age)
	require.Equal(t, a, s.Executing(), "age only just reached priority")

	s.Tick(ctx)
	require.NotEqual(t, a, s.Executing(), "switches on the tick that finds age == base priority")
}

func TestSwitchToResetsAgeAndSavesContext(t *testing.T) {
	tbl := procs.New(2)
	a := readySlot(tbl, 0)
	b := readySlot(tbl, 0)
	tbl.Get(a).Status = common.Executing
	tbl.Get(b).Age = 5

	s := New(tbl)
	s.SetExecuting(a)

	ctx := &common.Ctx{Pc: 0x42}
	s.SwitchTo(ctx, b)

	require.Equal(t, b, s.Executing())
	require.Equal(t, uint32(0), tbl.Get(b).Age)
	require.Equal(t, common.Executing, tbl.Get(b).Status)
	require.Equal(t, common.Ready, tbl.Get(a).Status)
	require.Equal(t, uint32(0x42), tbl.Get(a).Ctx.Pc, "outgoing process's live ctx is saved into its PCB")
}

func TestSwitchToTerminatedSlotDoesNotMarkReady(t *testing.T) {
	tbl := procs.New(2)
	a := readySlot(tbl, 0)
	b := readySlot(tbl, 0)
	tbl.Get(a).Status = common.Terminated
	s := New(tbl)
	s.SetExecuting(a)

	ctx := &common.Ctx{}
	s.SwitchTo(ctx, b)

	require.Equal(t, common.Terminated, tbl.Get(a).Status)
}

func TestPickNextSkipsNonReadySlots(t *testing.T) {
	tbl := procs.New(3)
	a := readySlot(tbl, 0)
	readySlot(tbl, 0) // b, will be skipped (not Ready)
	c := readySlot(tbl, 0)
	tbl.Get(1).Status = common.Terminated

	s := New(tbl)
	s.SetExecuting(a)

	require.Equal(t, c, s.pickNext())
}

func TestReschedulePicksNextRegardlessOfAge(t *testing.T) {
	tbl := procs.New(2)
	a := readySlot(tbl, 10)
	b := readySlot(tbl, 10)
	tbl.Get(a).Status = common.Executing
	tbl.Get(a).Age = 0

	s := New(tbl)
	s.SetExecuting(a)

	ctx := &common.Ctx{}
	s.Reschedule(ctx)

	require.Equal(t, b, s.Executing())
}
