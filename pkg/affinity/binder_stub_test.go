//go:build !linux

package affinity

import (
	"errors"
	"testing"
)

func TestStubBinderBehavior(t *testing.T) {
	b := NewBinder()
	if err := b.Bind(123, 1); !errors.Is(err, errUnsupported) {
		t.Fatalf("expected errUnsupported, got %v", err)
	}
}
