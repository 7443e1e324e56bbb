package memory

import (
	"errors"
	"fmt"

	"code.cloudfoundry.org/memhold/size"
	"github.com/shirou/gopsutil/mem"
)

var virtualMemory = mem.VirtualMemory

// Hint suggests the likely cause of a failed reservation.
func Hint(err error) string {
	if errors.Is(err, ErrTooLarge) {
		return "the requested size is larger than this platform can address."
	}

	hint := "this is likely because the system is low on memory or the requested size is too large."

	vm, vmErr := virtualMemory()
	if vmErr != nil {
		return hint
	}

	return fmt.Sprintf("%s the system has %s available out of %s.", hint, size.Human(vm.Available), size.Human(vm.Total))
}
