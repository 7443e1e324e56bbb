//go:build !unix && !windows

package memory

import (
	"fmt"

	"github.com/pkg/errors"
)

// Without an anonymous mapping primitive the Go heap is used. Only the
// out-of-range panic from makeslice can be turned into an error here; a real
// out-of-memory condition still aborts the runtime.
func reserve(n int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(fmt.Sprint(r))
		}
	}()

	return make([]byte, n), nil
}

func release(buf []byte) error {
	return nil
}
