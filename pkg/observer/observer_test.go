package observer

import (
	"context"
	"errors"
	"testing"

	"github.com/srodi/corepin/pkg/types"
)

func stubProcesses(t *testing.T, entries []procEntry, err error) {
	t.Helper()
	orig := listProcesses
	t.Cleanup(func() { listProcesses = orig })
	listProcesses = func(ctx context.Context) ([]procEntry, error) {
		return entries, err
	}
}

func TestObserveCollectsWatchedNames(t *testing.T) {
	stubProcesses(t, []procEntry{
		{pid: 300, name: "cc1"},
		{pid: 42, name: "systemd"},
		{pid: 100, name: "cc1plus"},
		{pid: 205, name: "cc1plus"},
		{pid: 7, name: "bash"},
	}, nil)

	obs := New([]string{"cc1plus", "cc1"})
	got := obs.Observe(context.Background())

	want := []types.PID{100, 205, 300}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sorted PIDs %v, got %v", want, got)
		}
	}
}

func TestObserveDeduplicatesPIDs(t *testing.T) {
	// The same PID showing up under two watched names is one logical process.
	stubProcesses(t, []procEntry{
		{pid: 100, name: "cc1"},
		{pid: 100, name: "cc1plus"},
	}, nil)

	obs := New([]string{"cc1plus", "cc1"})
	got := obs.Observe(context.Background())
	if len(got) != 1 || got[0] != 100 {
		t.Fatalf("expected single PID 100, got %v", got)
	}
}

func TestObserveToleratesMissesAndFailures(t *testing.T) {
	stubProcesses(t, []procEntry{{pid: 9, name: "sshd"}}, nil)
	obs := New([]string{"cc1plus", "cc1"})
	if got := obs.Observe(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty set when nothing matches, got %v", got)
	}

	stubProcesses(t, nil, errors.New("proc unavailable"))
	if got := obs.Observe(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty set on walk failure, got %v", got)
	}
}
