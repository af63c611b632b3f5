//go:build windows

package layout

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapMemory acquires a region via VirtualAlloc. Windows commits charge
// at MEM_COMMIT time but materializes pages on first touch, so one call
// shape serves both the lazy and the eager policy; an infeasible size
// fails here either way.
func mapMemory(length int, eager bool) ([]byte, error) {
	_ = eager
	addr, err := windows.VirtualAlloc(0, uintptr(length),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length), nil
}

// unmapMemory releases a region created by mapMemory.
func unmapMemory(b []byte) error {
	return windows.VirtualFree(uintptr(unsafe.Pointer(&b[0])), 0, windows.MEM_RELEASE)
}
