package heap

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerate(t *testing.T) {
	h := newTestHeap(t, WithPoolSize(64*1024))

	a := h.Allocate(128)
	b := h.Allocate(256)
	require.NotNil(t, a)
	require.NotNil(t, b)

	var indexes []int
	var addrs []uintptr

	h.Enumerate(func(index int, addr unsafe.Pointer, size uintptr, allocated bool) {
		indexes = append(indexes, index)
		addrs = append(addrs, uintptr(addr))
	})

	require.Equal(t, []int{0, 1, 2}, indexes)

	for i := 1; i < len(addrs); i++ {
		assert.Greater(t, addrs[i], addrs[i-1], "blocks must be visited in ascending address order")
	}

	assert.Equal(t, uintptr(h.region.Base()), addrs[0])
}

func TestDump(t *testing.T) {
	h := newTestHeap(t, WithPoolSize(64*1024))

	ptr := h.Allocate(128)
	require.NotNil(t, ptr)

	var sb strings.Builder
	h.Dump(&sb)
	out := sb.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Block 0:")
	assert.Contains(t, lines[0], "Size: 128")
	assert.Contains(t, lines[0], "Allocated")
	assert.Contains(t, lines[1], "Block 1:")
	assert.Contains(t, lines[1], "Free")

	assert.Equal(t, out, h.String())
}

func TestStats(t *testing.T) {
	h := newTestHeap(t, WithPoolSize(64*1024))

	s := h.Stats()
	assert.Equal(t, uintptr(64*1024), s.PoolSize)
	assert.Equal(t, 1, s.BlockCount)
	assert.Equal(t, 1, s.FreeBlocks)
	assert.Zero(t, s.AllocatedBlocks)
	assert.Zero(t, s.BytesInUse)
	assert.Equal(t, uintptr(64*1024)-headerSize, s.BytesFree)
	assert.Equal(t, uintptr(64*1024)-headerSize, s.LargestFree)
	assert.Zero(t, s.AllocationCount)

	a := h.Allocate(100)
	b := h.Allocate(1024)
	require.NotNil(t, a)
	require.NotNil(t, b)

	s = h.Stats()
	assert.Equal(t, 3, s.BlockCount)
	assert.Equal(t, 2, s.AllocatedBlocks)
	assert.Equal(t, uintptr(104+1024), s.BytesInUse)
	assert.Equal(t, uint64(2), s.AllocationCount)

	h.Free(a)
	b = h.Reallocate(b, 2048)
	require.NotNil(t, b)

	s = h.Stats()
	assert.Equal(t, uint64(1), s.FreeCount)
	assert.Equal(t, uint64(1), s.ReallocationCount)
}
