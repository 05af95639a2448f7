//go:build linux

package affinity

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// setAffinity binds the current thread (pid 0) to cpu. The kernel rejects
// a CPU outside the allowed cpuset with EINVAL; CPUSet.Set ignores an index
// past its size, which leaves the mask empty and fails the same way.
func setAffinity(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		if errors.Is(err, unix.EINVAL) {
			return fmt.Errorf("%w: cpu %d: %w", ErrInvalidCPU, cpu, err)
		}
		return fmt.Errorf("affinity: sched_setaffinity cpu %d: %w", cpu, err)
	}
	return nil
}
