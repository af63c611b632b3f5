//go:build linux

package layout

import "golang.org/x/sys/unix"

// mapMemory acquires an anonymous private mapping of the given length.
// Lazy mappings carry MAP_NORESERVE so a multi-gigabyte reservation does
// not count against commit charge; eager mappings carry MAP_POPULATE so
// the pages are faulted in before the call returns and an infeasible
// size surfaces as ENOMEM here.
func mapMemory(length int, eager bool) ([]byte, error) {
	flags := unix.MAP_PRIVATE | unix.MAP_ANONYMOUS
	if eager {
		flags |= unix.MAP_POPULATE
	} else {
		flags |= unix.MAP_NORESERVE
	}
	return unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, flags)
}

// unmapMemory releases a mapping created by mapMemory.
func unmapMemory(b []byte) error {
	return unix.Munmap(b)
}
