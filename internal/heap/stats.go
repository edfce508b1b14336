package heap

import "unsafe"

// Stats is a point-in-time summary of the block list plus cumulative
// operation counters.
type Stats struct {
	PoolSize        uintptr
	BlockCount      int
	AllocatedBlocks int
	FreeBlocks      int
	BytesInUse      uintptr
	BytesFree       uintptr
	LargestFree     uintptr

	AllocationCount   uint64
	FreeCount         uint64
	ReallocationCount uint64
}

// Stats walks the block list and returns current totals.
func (h *Heap) Stats() Stats {
	s := Stats{
		AllocationCount:   h.allocCount,
		FreeCount:         h.freeCount,
		ReallocationCount: h.reallocCount,
	}

	if h.region != nil {
		s.PoolSize = uintptr(h.region.Size())
	}

	h.Enumerate(func(_ int, _ unsafe.Pointer, size uintptr, allocated bool) {
		s.BlockCount++

		if allocated {
			s.AllocatedBlocks++
			s.BytesInUse += size
		} else {
			s.FreeBlocks++
			s.BytesFree += size

			if size > s.LargestFree {
				s.LargestFree = size
			}
		}
	})

	return s
}
