//go:build !linux
// +build !linux

package affinity

import (
	"errors"

	"github.com/srodi/corepin/pkg/types"
)

var errUnsupported = errors.New("affinity binding requires linux")

// Binder is a placeholder on non-Linux platforms.
type Binder struct{}

// NewBinder returns a binder whose Bind always fails.
func NewBinder() *Binder {
	return &Binder{}
}

// Bind always fails on unsupported platforms.
func (b *Binder) Bind(pid types.PID, core types.CoreID) error {
	return errUnsupported
}
