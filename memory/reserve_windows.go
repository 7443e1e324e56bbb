//go:build windows

package memory

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

func reserve(n int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(n), windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, errors.Wrap(err, "VirtualAlloc")
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n), nil
}

func release(buf []byte) error {
	return errors.Wrap(windows.VirtualFree(uintptr(unsafe.Pointer(&buf[0])), 0, windows.MEM_RELEASE), "VirtualFree")
}
