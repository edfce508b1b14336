package heap

import "unsafe"

// Reallocate resizes the allocation at ptr to newSize bytes, preferring to
// shrink or grow in place and relocating only as a last resort.
//
// A nil ptr with a zero newSize returns nil; a nil ptr otherwise behaves as
// Allocate; a zero newSize frees ptr and returns nil. Reallocating a block
// that is not allocated returns nil, as does an unsatisfiable grow; in the
// latter case the original allocation stays valid and allocated.
func (h *Heap) Reallocate(ptr unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	if ptr == nil && newSize == 0 {
		return nil
	}

	if ptr == nil {
		return h.Allocate(newSize)
	}

	if newSize == 0 {
		h.Free(ptr)
		return nil
	}

	b := headerOf(ptr)
	if !b.allocated {
		return nil
	}

	h.reallocCount++
	need := alignUp(newSize)
	if need < newSize {
		// Rounding wrapped around; the grow cannot be satisfied.
		return nil
	}

	if need <= b.size {
		h.shrink(b, need)
		return ptr
	}

	if n := b.next; n != nil && !n.allocated && b.size+headerSize+n.size >= need {
		h.expandIntoNext(b, need)
		return ptr
	}

	// A block that already holds need bytes never relocates.
	if b.size >= need {
		return ptr
	}

	q := h.Allocate(newSize)
	if q == nil {
		return nil
	}

	n := need
	if b.size < n {
		n = b.size
	}

	copyPayload(q, ptr, n)
	h.Free(ptr)

	return q
}

// shrink trims b to need bytes, carving the remainder into a free block when
// it is big enough to stand alone. The carved block merges forward into a
// free successor so no two adjacent free blocks survive.
func (h *Heap) shrink(b *blockHeader, need uintptr) {
	if b.size-need < headerSize+minBlockSize {
		return
	}

	h.split(b, need)
	h.absorbNext(b.next)
}

// expandIntoNext grows b in place by consuming its free successor, splitting
// any remainder back out as a free block. Only the absorbed neighbor is
// unlinked; the rest of the list is untouched.
func (h *Heap) expandIntoNext(b *blockHeader, need uintptr) {
	n := b.next

	b.next = n.next
	if n.next != nil {
		n.next.prev = b
	}

	b.size += headerSize + n.size

	if b.size-need >= headerSize+minBlockSize {
		h.split(b, need)
	}
}
