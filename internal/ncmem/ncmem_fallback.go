//go:build !linux

package ncmem

import (
	"os"
)

type tempFileBacking struct {
	f *os.File
}

// NewBacking writes data to a temp file when memfd_create is unavailable.
func NewBacking(name string, data []byte) (Backing, error) {
	f, err := os.CreateTemp("", "ncmem-"+name+"-*")
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(f.Name())
			return nil, err
		}
	}
	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	return &tempFileBacking{f: f}, nil
}

func (b *tempFileBacking) Path() string { return b.f.Name() }

func (b *tempFileBacking) Close() error {
	err := b.f.Close()
	os.Remove(b.f.Name())
	return err
}
