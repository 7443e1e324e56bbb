//go:build unix

package memory

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func reserve(n int) ([]byte, error) {
	buf, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, errors.Wrap(err, "mmap")
	}
	return buf, nil
}

func release(buf []byte) error {
	return errors.Wrap(unix.Munmap(buf), "munmap")
}
