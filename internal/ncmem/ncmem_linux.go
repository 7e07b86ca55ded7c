//go:build linux

package ncmem

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

type memfdBacking struct {
	f *os.File
}

// NewBacking copies data into an anonymous memfd_create file and returns a
// /proc/self/fd path the C library can nc_open like any other file, with no
// visible directory entry.
func NewBacking(name string, data []byte) (Backing, error) {
	fd, err := unix.MemfdCreate(name, 0)
	if err != nil {
		return nil, fmt.Errorf("ncmem: memfd_create: %w", err)
	}
	f := os.NewFile(uintptr(fd), name)
	if len(data) > 0 {
		if _, err := f.Write(data); err != nil {
			f.Close()
			return nil, fmt.Errorf("ncmem: write memfd: %w", err)
		}
	}
	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("ncmem: seek memfd: %w", err)
	}
	return &memfdBacking{f: f}, nil
}

func (b *memfdBacking) Path() string { return fmt.Sprintf("/proc/self/fd/%d", b.f.Fd()) }
func (b *memfdBacking) Close() error { return b.f.Close() }
