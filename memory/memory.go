package memory

import (
	"math"

	"code.cloudfoundry.org/memhold/size"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

type Allocator struct {
	logger *logrus.Entry
}

// Region is a contiguous block of memory obtained by Reserve. It lives
// outside the Go heap on platforms that support it.
type Region struct {
	buf []byte
}

func NewAllocator(logger *logrus.Entry) *Allocator {
	return &Allocator{
		logger: logger,
	}
}

// Reserve asks the operating system for exactly n bytes. A request the
// system cannot satisfy is returned as a *ReservationError rather than
// aborting the process, which is what a plain make([]byte, n) would do.
func (a *Allocator) Reserve(n uint64) (*Region, error) {
	logger := a.logger.WithFields(logrus.Fields{
		"bytes": n,
		"human": size.Human(n),
	})

	if n == 0 {
		return nil, &ZeroSizeError{}
	}

	if n > math.MaxInt {
		logger.Error("requested size exceeds the address space")
		return nil, &ReservationError{Requested: n, Err: ErrTooLarge}
	}

	logger.Debug("reserving memory")
	buf, err := reserve(int(n))
	if err != nil {
		logger.WithError(err).Error("reservation failed")
		return nil, &ReservationError{Requested: n, Err: err}
	}

	logger.Debug("reserved memory")
	return &Region{buf: buf}, nil
}

// Commit writes a zero to every byte of the region so the operating system
// has to back each page with physical memory.
func (r *Region) Commit() {
	for i := range r.buf {
		r.buf[i] = 0
	}
}

func (r *Region) Verify(requested uint64) error {
	var result *multierror.Error

	if r.Len() != requested {
		result = multierror.Append(result, &LengthError{Field: "length", Requested: requested, Actual: r.Len()})
	}

	if uint64(cap(r.buf)) != requested {
		result = multierror.Append(result, &LengthError{Field: "capacity", Requested: requested, Actual: uint64(cap(r.buf))})
	}

	if result == nil {
		return nil
	}

	return &SizeMismatchError{Requested: requested, Actual: r.Len(), Err: result}
}

func (r *Region) Len() uint64 {
	return uint64(len(r.buf))
}

func (r *Region) Bytes() []byte {
	return r.buf
}

// Release hands the region back to the operating system. The region must
// not be used afterwards.
func (r *Region) Release() error {
	if r.buf == nil {
		return nil
	}

	err := release(r.buf)
	r.buf = nil
	return err
}
