package heap

import (
	"fmt"
	"io"
	"strings"
	"unsafe"
)

// Enumerate calls visit for every block in address order, passing the block
// index, the header address, the payload size, and the allocation state. It
// does not modify the heap.
func (h *Heap) Enumerate(visit func(index int, addr unsafe.Pointer, size uintptr, allocated bool)) {
	index := 0
	for b := h.head; b != nil; b = b.next {
		visit(index, unsafe.Pointer(b), b.size, b.allocated)
		index++
	}
}

// Dump writes one line per block to w.
func (h *Heap) Dump(w io.Writer) {
	h.Enumerate(func(index int, addr unsafe.Pointer, size uintptr, allocated bool) {
		state := "Free"
		if allocated {
			state = "Allocated"
		}

		fmt.Fprintf(w, "Block %d: Addr: %p | Size: %d | %s\n", index, addr, size, state)
	})
}

func (h *Heap) String() string {
	var sb strings.Builder
	h.Dump(&sb)

	return sb.String()
}
