package heap

// FragmentationThresholdReached reports whether the block list shows at
// least nonContiguousFreeBlockLimit transitions from an allocated block to a
// free one. The probe is advisory: it takes no action and does not modify
// the heap.
func (h *Heap) FragmentationThresholdReached() bool {
	if h.head == nil {
		return false
	}

	transitions := 0
	prevAllocated := h.head.allocated

	for b := h.head.next; b != nil; b = b.next {
		if prevAllocated && !b.allocated {
			transitions++
		}

		prevAllocated = b.allocated
	}

	return transitions >= nonContiguousFreeBlockLimit
}
