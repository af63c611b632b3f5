//go:build unix && !linux

package layout

import "golang.org/x/sys/unix"

// mapMemory acquires an anonymous private mapping of the given length.
// MAP_NORESERVE and MAP_POPULATE are Linux-specific; other Unixes get a
// plain anonymous mapping for both policies, which still satisfies the
// allocator contract because the caller writes every entry once on
// construction.
func mapMemory(length int, eager bool) ([]byte, error) {
	_ = eager
	return unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
}

// unmapMemory releases a mapping created by mapMemory.
func unmapMemory(b []byte) error {
	return unix.Munmap(b)
}
