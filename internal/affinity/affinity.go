// Package affinity pins the calling goroutine's OS thread to one CPU so a
// spinning consumer does not migrate between cores mid-run.
//
// Pin locks the goroutine to its thread with runtime.LockOSThread; call
// the returned release func when the loop exits.
package affinity

import (
	"errors"
	"runtime"
)

// ErrUnsupported is returned on platforms without thread affinity.
var ErrUnsupported = errors.New("affinity: not supported on " + runtime.GOOS)

// ErrInvalidCPU is returned for a negative CPU index or one the process is
// not allowed to run on.
var ErrInvalidCPU = errors.New("affinity: invalid cpu")

// Pin locks the current goroutine to its OS thread and binds that thread to
// cpu. On error the goroutine is left unlocked.
func Pin(cpu int) (release func(), err error) {
	if cpu < 0 {
		return nil, ErrInvalidCPU
	}

	runtime.LockOSThread()
	if err := setAffinity(cpu); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	return runtime.UnlockOSThread, nil
}
