// Command heapdemo exercises the heap allocator against a 1 MiB pool:
// three allocations of different sizes, then frees in middle-first-last
// order so every coalescing path runs, dumping the block list after each
// step.
package main

import (
	"flag"
	"fmt"
	"os"
	"unsafe"

	"github.com/twojays/heapmanager/internal/cli"
	"github.com/twojays/heapmanager/internal/heap"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose output")
	debug := flag.Bool("debug", false, "enable debug output")
	version := flag.Bool("version", false, "print version information")
	jsonOut := flag.Bool("json", false, "print version information as JSON")
	flag.Parse()

	if *version {
		cli.PrintVersion("heapdemo", *jsonOut)
		return
	}

	logger := cli.NewLogger(*verbose, *debug)

	h, err := heap.New()
	if err != nil {
		cli.ExitWithError("heap initialization failed: %v", err)
	}

	fmt.Println("=== Initial Heap State ===")
	h.Dump(os.Stdout)

	intPtr := mustAllocate(h, logger, 2001)
	doublePtr := mustAllocate(h, logger, 43320)
	charPtr := mustAllocate(h, logger, 123124)

	fmt.Println("\n=== After Three Allocations ===")
	h.Dump(os.Stdout)

	h.Free(doublePtr)
	fmt.Println("\n=== After Freeing the Middle Block ===")
	h.Dump(os.Stdout)

	h.Free(intPtr)
	fmt.Println("\n=== After Freeing the First Block (Coalesce Forward) ===")
	h.Dump(os.Stdout)

	h.Free(charPtr)
	fmt.Println("\n=== After Freeing the Last Block (Complete Coalescing) ===")
	h.Dump(os.Stdout)

	stats := h.Stats()
	logger.Info("allocations=%d frees=%d blocks=%d largest free=%d",
		stats.AllocationCount, stats.FreeCount, stats.BlockCount, stats.LargestFree)

	if h.FragmentationThresholdReached() {
		logger.Info("fragmentation threshold reached")
	}

	if err := h.Destroy(); err != nil {
		cli.ExitWithError("heap teardown failed: %v", err)
	}
}

func mustAllocate(h *heap.Heap, logger *cli.Logger, size uintptr) unsafe.Pointer {
	ptr := h.Allocate(size)
	if ptr == nil {
		cli.ExitWithError("allocation of %d bytes failed", size)
	}

	logger.Debug("allocated %d bytes at %p", size, ptr)

	return ptr
}
