//go:build linux
// +build linux

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/srodi/corepin/pkg/types"
)

// Binder pins processes to a single logical CPU via sched_setaffinity.
type Binder struct{}

// NewBinder returns the Linux affinity binder.
func NewBinder() *Binder {
	return &Binder{}
}

// Bind restricts pid to run only on core. The target may have exited since
// it was observed; the caller treats a failure here as non-fatal.
func (b *Binder) Bind(pid types.PID, core types.CoreID) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(int(core))
	if err := unix.SchedSetaffinity(int(pid), &set); err != nil {
		return fmt.Errorf("pinning pid %d to core %d: %w", pid, core, err)
	}
	return nil
}
