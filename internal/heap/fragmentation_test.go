package heap

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentationThresholdReached(t *testing.T) {
	t.Run("FreshHeap", func(t *testing.T) {
		h := newTestHeap(t, WithPoolSize(64*1024))

		assert.False(t, h.FragmentationThresholdReached())
	})

	t.Run("TransitionCounting", func(t *testing.T) {
		h := newTestHeap(t, WithPoolSize(64*1024))

		var ptrs []unsafe.Pointer
		for i := 0; i < 12; i++ {
			ptr := h.Allocate(128)
			require.NotNil(t, ptr)
			ptrs = append(ptrs, ptr)
		}

		// Twelve allocated blocks followed by the free tail: one
		// allocated-to-free transition.
		assert.False(t, h.FragmentationThresholdReached())

		// Punch isolated holes; each adds one transition.
		for _, i := range []int{1, 3, 5} {
			h.Free(ptrs[i])
		}
		assert.False(t, h.FragmentationThresholdReached(), "four transitions stay below the threshold")

		h.Free(ptrs[7])
		assert.True(t, h.FragmentationThresholdReached(), "five transitions reach the threshold")

		h.Free(ptrs[9])
		assert.True(t, h.FragmentationThresholdReached())
		requireInvariants(t, h)
	})

	t.Run("ProbeDoesNotModifyHeap", func(t *testing.T) {
		h := newTestHeap(t, WithPoolSize(64*1024))

		a := h.Allocate(256)
		b := h.Allocate(256)
		require.NotNil(t, b)
		h.Free(a)

		before, beforeAlloc := blockSizes(h)
		h.FragmentationThresholdReached()
		after, afterAlloc := blockSizes(h)

		assert.Equal(t, before, after)
		assert.Equal(t, beforeAlloc, afterAlloc)
	})
}
