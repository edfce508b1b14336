//go:build unix

package osmem

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Acquire reserves and commits size contiguous read/write bytes from the OS.
func Acquire(size int) (*Region, error) {
	if size <= 0 {
		return nil, &Error{Op: "mmap", Err: unix.EINVAL}
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, &Error{Op: "mmap", Err: err}
	}

	return &Region{
		base: unsafe.Pointer(&data[0]),
		size: size,
		data: data,
	}, nil
}

// Release returns the region to the OS. The region and every pointer into it
// must not be used afterwards. Releasing an already-released region is a
// no-op.
func (r *Region) Release() error {
	if r.data == nil {
		return nil
	}

	data := r.data
	r.data = nil
	r.base = nil
	r.size = 0

	if err := unix.Munmap(data); err != nil {
		return &Error{Op: "munmap", Err: err}
	}

	return nil
}
