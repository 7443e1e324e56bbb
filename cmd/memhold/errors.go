package main

import (
	"fmt"
	"strings"

	"code.cloudfoundry.org/memhold/size"
)

type InvalidLogFormatError struct {
	Format string
}

func (e *InvalidLogFormatError) Error() string {
	return fmt.Sprintf("invalid log format %s", e.Format)
}

type UsageError struct {
	Program string
	Got     int
	Reason  string
}

func (e *UsageError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = fmt.Sprintf("expected exactly 1 argument, got %d", e.Got)
	}
	return fmt.Sprintf("%s\nusage: %s <size>\nexample: %s 100mb\nsupported units: %s",
		reason, e.Program, e.Program, unitList())
}

type UnparseableSizeError struct {
	Size string
	Err  error
}

func (e *UnparseableSizeError) Error() string {
	return fmt.Sprintf("cannot parse memory size '%s'\nuse a number and an optional unit (%s), for example: 512mb, 1gb, 2048", e.Size, unitNames())
}

func (e *UnparseableSizeError) Unwrap() error {
	return e.Err
}

type AllocationError struct {
	Requested uint64
	Err       error
	Hint      string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%s\n%s", e.Err, e.Hint)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

// unitList renders "b (default), kb (k), mb (m), gb (g)".
func unitList() string {
	var parts []string
	for _, u := range size.Units() {
		aliases := []string{}
		for _, a := range u.Aliases {
			if a == "" {
				aliases = append(aliases, "default")
			} else {
				aliases = append(aliases, a)
			}
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", u.Name, strings.Join(aliases, ", ")))
	}
	return strings.Join(parts, ", ")
}

func unitNames() string {
	var names []string
	for _, u := range size.Units() {
		names = append(names, u.Name)
	}
	return strings.Join(names, ", ")
}
