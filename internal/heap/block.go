package heap

import "unsafe"

// Heap geometry constants.
const (
	// DefaultPoolSize is the pool acquired from the OS when no option
	// overrides it.
	DefaultPoolSize = 1 << 20

	// alignment is the boundary every payload size and client pointer is
	// rounded to.
	alignment = 8

	// minBlockSize is the smallest payload a block may carry; split
	// remainders below it stay with the allocated block instead.
	minBlockSize = 4

	// nonContiguousFreeBlockLimit is the number of allocated-to-free
	// transitions at which the fragmentation probe reports pressure.
	nonContiguousFreeBlockLimit = 5
)

// blockHeader is the in-band metadata at the start of every block. The
// payload begins headerSize bytes after the header; size counts the payload
// only. prev and next order blocks by ascending address: prev is nil for the
// block at the pool base, next is nil for the block whose payload ends at
// the pool's last byte.
type blockHeader struct {
	size      uintptr
	allocated bool
	prev      *blockHeader
	next      *blockHeader
}

// headerSize must stay a multiple of alignment or client pointers would
// lose their alignment guarantee.
const headerSize = unsafe.Sizeof(blockHeader{})

// alignUp rounds n up to the next multiple of alignment.
func alignUp(n uintptr) uintptr {
	return (n + alignment - 1) &^ (alignment - 1)
}

// payload returns the client pointer for b.
func (b *blockHeader) payload() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(b), headerSize)
}

// headerOf recovers the owning header from a client pointer.
func headerOf(ptr unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Add(ptr, -int(headerSize)))
}

// headerAt places a header view off bytes past b's header.
func headerAt(b *blockHeader, off uintptr) *blockHeader {
	return (*blockHeader)(unsafe.Add(unsafe.Pointer(b), int(off)))
}

// copyPayload copies n bytes between payloads.
func copyPayload(dst, src unsafe.Pointer, n uintptr) {
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}
