//go:build windows

package osmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Acquire reserves and commits size contiguous read/write bytes from the OS.
func Acquire(size int) (*Region, error) {
	if size <= 0 {
		return nil, &Error{Op: "VirtualAlloc", Err: windows.ERROR_INVALID_PARAMETER}
	}

	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, &Error{Op: "VirtualAlloc", Err: err}
	}

	return &Region{
		base: unsafe.Pointer(addr),
		size: size,
	}, nil
}

// Release returns the region to the OS. The region and every pointer into it
// must not be used afterwards. Releasing an already-released region is a
// no-op.
func (r *Region) Release() error {
	if r.base == nil {
		return nil
	}

	addr := uintptr(r.base)
	r.base = nil
	r.size = 0

	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		return &Error{Op: "VirtualFree", Err: err}
	}

	return nil
}
