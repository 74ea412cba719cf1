package procs

import (
	"testing"

	"github.com/jessielea/miniker/common"
	"github.com/stretchr/testify/require"
)

func TestAllocIncrementsN(t *testing.T) {
	tbl := New(4)
	require.Equal(t, 0, tbl.N())

	idx, ok := tbl.Alloc()
	require.True(t, ok)
	require.Equal(t, 0, idx)
	require.Equal(t, 1, tbl.N())

	idx, ok = tbl.Alloc()
	require.True(t, ok)
	require.Equal(t, 1, idx)
	require.Equal(t, 2, tbl.N())
}

func TestAllocFailsAtCapacity(t *testing.T) {
	tbl := New(2)
	_, ok := tbl.Alloc()
	require.True(t, ok)
	_, ok = tbl.Alloc()
	require.True(t, ok)

	_, ok = tbl.Alloc()
	require.False(t, ok)
	require.True(t, tbl.Full())
	require.Equal(t, 2, tbl.N())
}

func TestLookupPIDSkipsUnusedAndFirstMatchWins(t *testing.T) {
	tbl := New(4)
	for i := 0; i < 3; i++ {
		idx, _ := tbl.Alloc()
		tbl.Get(idx).Pid = i + 1
		tbl.Get(idx).Status = common.Ready
	}
	// Slot 1 keeps pid 2 but is marked Unused, so a lookup of pid 2 must
	// skip it.
	tbl.Get(1).Status = common.Unused

	idx, ok := tbl.LookupPID(1)
	require.True(t, ok)
	require.Equal(t, 0, idx, "first match among the non-Unused slots")

	_, ok = tbl.LookupPID(2)
	require.False(t, ok, "the Unused slot holding pid 2 is skipped")

	_, ok = tbl.LookupPID(99)
	require.False(t, ok)
}

func TestNewPanicsOnZeroCapacity(t *testing.T) {
	require.Panics(t, func() { New(0) })
}

func TestEachVisitsOnlyAllocatedSlots(t *testing.T) {
	tbl := New(4)
	tbl.Alloc()
	tbl.Alloc()

	visited := 0
	tbl.Each(func(i int, p *common.Pcb) { visited++ })
	require.Equal(t, 2, visited)
}
