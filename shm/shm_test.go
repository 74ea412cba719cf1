package shm

import (
	"testing"

	"github.com/jessielea/miniker/common"
	"github.com/stretchr/testify/require"
)

func TestGetAllocatesOnFirstUse(t *testing.T) {
	tbl := New(16000, 1000, 16)

	tos, err := tbl.Get(5)
	require.Equal(t, common.OK, err)
	require.Equal(t, uint32(16000-0*1000), tos, "the first allocation takes slot index 0, whatever its shmid")
	require.True(t, tbl.Locked(5))
}

func TestGetReturnsSameAddressOnReattach(t *testing.T) {
	tbl := New(16000, 1000, 16)

	tos1, _ := tbl.Get(5)
	tbl.Detach(5)
	tos2, _ := tbl.Get(5)

	require.Equal(t, tos1, tos2)
}

// TestGetReturnsErrBusyWithoutBlocking is the direct regression guard for
// the contention deadlock: a single call against a locked slot must
// return immediately with ErrBusy, never loop or touch a scheduler.
func TestGetReturnsErrBusyWithoutBlocking(t *testing.T) {
	tbl := New(16000, 1000, 16)
	_, err := tbl.Get(7)
	require.Equal(t, common.OK, err)
	require.True(t, tbl.Locked(7))

	tos, err := tbl.Get(7)
	require.Equal(t, common.ErrBusy, err)
	require.Equal(t, uint32(0), tos)

	tbl.Detach(7)
	tos, err = tbl.Get(7)
	require.Equal(t, common.OK, err, "a retry after the holder detaches succeeds")
	require.NotEqual(t, uint32(0), tos)
}

func TestGetExhaustionReturnsErrShrmTableFull(t *testing.T) {
	tbl := New(16000, 1000, 2)

	_, err := tbl.Get(1)
	require.Equal(t, common.OK, err)
	_, err = tbl.Get(2)
	require.Equal(t, common.OK, err)

	_, err = tbl.Get(3)
	require.Equal(t, common.ErrShrmTableFull, err)
}

func TestDetachOnMissIsNoop(t *testing.T) {
	tbl := New(16000, 1000, 16)
	require.NotPanics(t, func() { tbl.Detach(99) })
	require.False(t, tbl.Locked(99))
}

func TestFindScansOnlyAllocatedPrefix(t *testing.T) {
	// A never-allocated slot defaults to shmid 0; Get(0) must allocate a
	// fresh slot for shmid 0 rather than matching one of the table's
	// unused (zero-valued) backing slots. This is a deliberate fix over
	// the original source's full-array scan.
	tbl := New(16000, 1000, 16)

	tbl.Get(5) // occupies slot index 0 internally
	tos, err := tbl.Get(0)

	require.Equal(t, common.OK, err)
	require.Equal(t, uint32(16000-1*1000), tos, "shmid 0 gets its own freshly-allocated slot, at index 1")
}
