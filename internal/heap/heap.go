// Package heap implements a user-space allocator over a single OS-provided
// memory pool. Blocks carry in-band headers linked in an address-ordered
// doubly linked list; allocation is first-fit with tail splitting, and frees
// eagerly coalesce adjacent free blocks.
//
// A Heap is single-threaded and non-reentrant: callers that share one across
// goroutines must serialize externally.
package heap

import (
	"fmt"
	"unsafe"

	"github.com/twojays/heapmanager/internal/osmem"
)

// Config holds the tunable parameters of a heap.
type Config struct {
	// PoolSize is the total byte length acquired from the OS. It must be a
	// multiple of the alignment and at least headerSize + minBlockSize.
	PoolSize int
}

// Option mutates a Config before initialization.
type Option func(*Config)

// WithPoolSize overrides the default 1 MiB pool.
func WithPoolSize(n int) Option {
	return func(c *Config) { c.PoolSize = n }
}

func defaultConfig() *Config {
	return &Config{PoolSize: DefaultPoolSize}
}

// Heap owns one contiguous pool and the block list inside it. The zero value
// is not usable; construct with New.
type Heap struct {
	region *osmem.Region
	head   *blockHeader

	allocCount   uint64
	freeCount    uint64
	reallocCount uint64
}

// New acquires a pool from the OS and formats it as a single free block.
func New(opts ...Option) (*Heap, error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	if config.PoolSize < int(headerSize)+minBlockSize {
		return nil, fmt.Errorf("heap: pool size %d below minimum %d", config.PoolSize, int(headerSize)+minBlockSize)
	}

	if config.PoolSize%alignment != 0 {
		return nil, fmt.Errorf("heap: pool size %d not a multiple of %d", config.PoolSize, alignment)
	}

	region, err := osmem.Acquire(config.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("heap: acquiring pool: %w", err)
	}

	head := (*blockHeader)(region.Base())
	head.size = uintptr(config.PoolSize) - headerSize
	head.allocated = false
	head.prev = nil
	head.next = nil

	return &Heap{region: region, head: head}, nil
}

// Allocate returns an aligned pointer to at least size bytes of payload, or
// nil when no free block fits. The heap is left untouched on failure.
func (h *Heap) Allocate(size uintptr) unsafe.Pointer {
	need := alignUp(size)
	if need < size {
		// Rounding wrapped around; no block can hold the request.
		return nil
	}

	if need == 0 {
		need = alignment
	}

	b := h.findFreeBlock(need)
	if b == nil {
		return nil
	}

	if b.size >= need+headerSize+minBlockSize {
		h.split(b, need)
	}

	b.allocated = true
	h.allocCount++

	return b.payload()
}

// findFreeBlock walks from the pool base and returns the first free block
// whose payload holds need bytes, or nil. First-fit keeps the block layout
// deterministic.
func (h *Heap) findFreeBlock(need uintptr) *blockHeader {
	for b := h.head; b != nil; b = b.next {
		if !b.allocated && b.size >= need {
			return b
		}
	}

	return nil
}

// split carves the tail of b into a new free block, leaving b with a payload
// of exactly need bytes. The caller has checked that the remainder can hold
// a header plus minBlockSize.
func (h *Heap) split(b *blockHeader, need uintptr) {
	rest := headerAt(b, headerSize+need)
	rest.size = b.size - need - headerSize
	rest.allocated = false
	rest.prev = b
	rest.next = b.next

	if b.next != nil {
		b.next.prev = rest
	}

	b.next = rest
	b.size = need
}

// Free returns ptr's block to the heap and merges it with any free
// neighbor. A nil ptr is a no-op. ptr must have been produced by this
// heap's Allocate or Reallocate and not freed since; anything else is
// undefined behavior.
func (h *Heap) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	b := headerOf(ptr)
	b.allocated = false
	h.freeCount++
	h.coalesce(b)
}

// coalesce merges the just-freed b with free neighbors on either side.
// Merged sizes stay aligned because both operands and headerSize are
// aligned.
func (h *Heap) coalesce(b *blockHeader) {
	if b.prev != nil && !b.prev.allocated {
		b.prev.size += headerSize + b.size
		b.prev.next = b.next

		if b.next != nil {
			b.next.prev = b.prev
		}

		b = b.prev
	}

	h.absorbNext(b)
}

// absorbNext merges b with its successor when that successor is free.
func (h *Heap) absorbNext(b *blockHeader) {
	n := b.next
	if n == nil || n.allocated {
		return
	}

	b.size += headerSize + n.size
	b.next = n.next

	if n.next != nil {
		n.next.prev = b
	}
}

// Destroy releases the pool back to the OS. Every client pointer handed out
// by this heap is invalid afterwards. Destroying an already-destroyed heap
// is a no-op.
func (h *Heap) Destroy() error {
	if h.region == nil {
		return nil
	}

	region := h.region
	h.region = nil
	h.head = nil

	if err := region.Release(); err != nil {
		return fmt.Errorf("heap: releasing pool: %w", err)
	}

	return nil
}
