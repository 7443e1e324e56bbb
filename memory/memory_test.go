package memory_test

import (
	"errors"
	"io"
	"math"

	"code.cloudfoundry.org/memhold/memory"
	"code.cloudfoundry.org/memhold/size"
	"github.com/hashicorp/go-multierror"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shirou/gopsutil/mem"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var _ = Describe("Allocator", func() {
	var (
		allocator *memory.Allocator
		logHook   *test.Hook
	)

	BeforeEach(func() {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		logger.SetLevel(logrus.DebugLevel)
		logHook = test.NewLocal(logger)
		allocator = memory.NewAllocator(logger.WithField("test", "memory"))
	})

	Describe("Reserve", func() {
		It("reserves a region of exactly the requested size", func() {
			region, err := allocator.Reserve(size.MB + 3)
			Expect(err).NotTo(HaveOccurred())
			defer region.Release()

			Expect(region.Len()).To(Equal(size.MB + 3))
			Expect(region.Bytes()).To(HaveLen(int(size.MB + 3)))
		})

		It("logs the requested size", func() {
			region, err := allocator.Reserve(4096)
			Expect(err).NotTo(HaveOccurred())
			defer region.Release()

			Expect(logHook.Entries).NotTo(BeEmpty())
			Expect(logHook.LastEntry().Data).To(HaveKeyWithValue("bytes", uint64(4096)))
			Expect(logHook.LastEntry().Data).To(HaveKeyWithValue("human", "4.0 KiB"))
		})

		Context("when the size is zero", func() {
			It("returns a ZeroSizeError", func() {
				_, err := allocator.Reserve(0)
				Expect(err).To(BeAssignableToTypeOf(&memory.ZeroSizeError{}))
			})
		})

		Context("when the size cannot be addressed", func() {
			It("returns a ReservationError instead of crashing", func() {
				_, err := allocator.Reserve(math.MaxUint64)
				var resErr *memory.ReservationError
				Expect(errors.As(err, &resErr)).To(BeTrue())
				Expect(resErr.Requested).To(Equal(uint64(math.MaxUint64)))
				Expect(errors.Is(err, memory.ErrTooLarge)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring("unable to reserve 18446744073709551615 bytes"))
			})
		})

		Context("when the operating system refuses the request", func() {
			It("returns a ReservationError", func() {
				_, err := allocator.Reserve(1 << 62)
				Expect(err).To(BeAssignableToTypeOf(&memory.ReservationError{}))
				Expect(errors.Is(err, memory.ErrTooLarge)).To(BeFalse())
				Expect(logHook.LastEntry().Level).To(Equal(logrus.ErrorLevel))
			})
		})
	})

	Describe("Commit", func() {
		It("zeroes every byte of the region", func() {
			region, err := allocator.Reserve(64 * size.KB)
			Expect(err).NotTo(HaveOccurred())
			defer region.Release()

			buf := region.Bytes()
			for i := range buf {
				buf[i] = 0xff
			}

			region.Commit()
			Expect(region.Bytes()).To(Equal(make([]byte, 64*size.KB)))
			Expect(region.Verify(64 * size.KB)).To(Succeed())
		})
	})

	Describe("Release", func() {
		It("can be called more than once", func() {
			region, err := allocator.Reserve(4096)
			Expect(err).NotTo(HaveOccurred())

			Expect(region.Release()).To(Succeed())
			Expect(region.Release()).To(Succeed())
			Expect(region.Len()).To(BeZero())
		})
	})
})

var _ = Describe("Region", func() {
	Describe("Verify", func() {
		It("succeeds when the length matches", func() {
			Expect(memory.NewRegion(make([]byte, 10)).Verify(10)).To(Succeed())
		})

		It("reports a length mismatch", func() {
			err := memory.NewRegion(make([]byte, 8)).Verify(10)
			var mismatch *memory.SizeMismatchError
			Expect(errors.As(err, &mismatch)).To(BeTrue())
			Expect(mismatch.Requested).To(Equal(uint64(10)))
			Expect(mismatch.Actual).To(Equal(uint64(8)))
			Expect(err.Error()).To(Equal("allocated memory size (8) does not match the requested size (10)"))
		})

		It("reports the length and capacity separately", func() {
			err := memory.NewRegion(make([]byte, 8, 12)).Verify(12)
			var merr *multierror.Error
			Expect(errors.As(err, &merr)).To(BeTrue())
			Expect(merr.Errors).To(HaveLen(1))
			Expect(merr.Errors[0].Error()).To(Equal("region length 8 does not match requested 12"))

			err = memory.NewRegion(make([]byte, 8)).Verify(12)
			Expect(errors.As(err, &merr)).To(BeTrue())
			Expect(merr.Errors).To(HaveLen(2))
		})
	})
})

var _ = Describe("Hint", func() {
	var restore func()

	AfterEach(func() {
		if restore != nil {
			restore()
		}
	})

	It("includes the system memory when it is known", func() {
		restore = memory.SetVirtualMemory(func() (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 8 * size.GB, Available: 512 * size.MB}, nil
		})

		hint := memory.Hint(errors.New("mmap: cannot allocate memory"))
		Expect(hint).To(ContainSubstring("low on memory"))
		Expect(hint).To(ContainSubstring("512 MiB available out of 8.0 GiB"))
	})

	It("falls back to the plain hint when the system memory is unknown", func() {
		restore = memory.SetVirtualMemory(func() (*mem.VirtualMemoryStat, error) {
			return nil, errors.New("no procfs")
		})

		hint := memory.Hint(errors.New("mmap: cannot allocate memory"))
		Expect(hint).To(Equal("this is likely because the system is low on memory or the requested size is too large."))
	})

	It("explains sizes beyond the address space", func() {
		hint := memory.Hint(&memory.ReservationError{Requested: math.MaxUint64, Err: memory.ErrTooLarge})
		Expect(hint).To(ContainSubstring("larger than this platform can address"))
	})
})
