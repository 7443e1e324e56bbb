package size

import (
	"errors"
	"fmt"
)

// ErrUnparseable matches every error returned by Parse.
var ErrUnparseable = errors.New("unparseable size")

type EmptyError struct{}

func (e *EmptyError) Error() string {
	return "size is empty"
}

func (e *EmptyError) Is(target error) bool {
	return target == ErrUnparseable
}

type InvalidNumberError struct {
	Input  string
	Number string
	Err    error
}

func (e *InvalidNumberError) Error() string {
	if e.Number == "" {
		return fmt.Sprintf("size %q does not start with a number", e.Input)
	}
	return fmt.Sprintf("size %q has an invalid number %q", e.Input, e.Number)
}

func (e *InvalidNumberError) Is(target error) bool {
	return target == ErrUnparseable
}

func (e *InvalidNumberError) Unwrap() error {
	return e.Err
}

type UnknownUnitError struct {
	Input string
	Unit  string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("size %q has an unknown unit %q", e.Input, e.Unit)
}

func (e *UnknownUnitError) Is(target error) bool {
	return target == ErrUnparseable
}
