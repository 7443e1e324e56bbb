package memory

import (
	"errors"
	"fmt"
)

var ErrTooLarge = errors.New("size exceeds the addressable range")

type ZeroSizeError struct{}

func (e *ZeroSizeError) Error() string {
	return "size must be greater than 0 bytes"
}

type ReservationError struct {
	Requested uint64
	Err       error
}

func (e *ReservationError) Error() string {
	return fmt.Sprintf("unable to reserve %d bytes of memory: %s", e.Requested, e.Err)
}

func (e *ReservationError) Unwrap() error {
	return e.Err
}

type LengthError struct {
	Field     string
	Requested uint64
	Actual    uint64
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("region %s %d does not match requested %d", e.Field, e.Actual, e.Requested)
}

type SizeMismatchError struct {
	Requested uint64
	Actual    uint64
	Err       error
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("allocated memory size (%d) does not match the requested size (%d)", e.Actual, e.Requested)
}

func (e *SizeMismatchError) Unwrap() error {
	return e.Err
}
