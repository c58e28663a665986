package types

import "time"

// DefaultInterval is how often the daemon re-evaluates the process table.
const DefaultInterval = 5 * time.Second

// DefaultProcessNames are the compiler executables watched when the
// configuration does not name any.
var DefaultProcessNames = []string{"cc1plus", "cc1"}

// PID names a live OS process.
type PID int

// CoreID names one logical CPU core eligible for pinning.
type CoreID int

// Binding records a process freshly pinned to a core during one cycle.
type Binding struct {
	PID  PID
	Core CoreID
}
