package daemon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/srodi/corepin/pkg/tracker"
	"github.com/srodi/corepin/pkg/types"
)

type fakeObserver struct {
	cycles [][]types.PID
	calls  int
}

func (f *fakeObserver) Observe(ctx context.Context) []types.PID {
	if f.calls >= len(f.cycles) {
		return nil
	}
	observed := f.cycles[f.calls]
	f.calls++
	return observed
}

type fakeBinder struct {
	bound  []types.Binding
	reject map[types.PID]bool
}

func (f *fakeBinder) Bind(pid types.PID, core types.CoreID) error {
	if f.reject[pid] {
		return errors.New("no such process")
	}
	f.bound = append(f.bound, types.Binding{PID: pid, Core: core})
	return nil
}

func newTestDaemon(obs *fakeObserver, b *fakeBinder, coreIDs ...int) *Daemon {
	cores := make([]types.CoreID, len(coreIDs))
	for i, c := range coreIDs {
		cores[i] = types.CoreID(c)
	}
	return New(obs, tracker.New(cores), b, time.Second, false)
}

func TestRunCycleBindsNewcomersOnce(t *testing.T) {
	obs := &fakeObserver{cycles: [][]types.PID{
		{100, 101},
		{100, 101}, // same processes survive: no re-binding
	}}
	binder := &fakeBinder{}
	d := newTestDaemon(obs, binder, 1, 2, 3)

	d.runCycle(context.Background())
	d.runCycle(context.Background())

	if len(binder.bound) != 2 {
		t.Fatalf("expected 2 bind calls across both cycles, got %d: %v", len(binder.bound), binder.bound)
	}
	if binder.bound[0] != (types.Binding{PID: 100, Core: 1}) ||
		binder.bound[1] != (types.Binding{PID: 101, Core: 2}) {
		t.Fatalf("unexpected bindings: %v", binder.bound)
	}
}

func TestRunCycleToleratesBindFailure(t *testing.T) {
	obs := &fakeObserver{cycles: [][]types.PID{
		{100, 101},
		{101}, // 100 vanished: its optimistic assignment self-corrects
	}}
	binder := &fakeBinder{reject: map[types.PID]bool{100: true}}
	d := newTestDaemon(obs, binder, 1, 2)

	d.runCycle(context.Background())

	// The rejected bind keeps its assignment for this cycle.
	status := d.Status()
	if len(status.Pinned) != 2 {
		t.Fatalf("expected optimistic assignment kept, got %+v", status.Pinned)
	}

	d.runCycle(context.Background())
	status = d.Status()
	if len(status.Pinned) != 1 || status.Pinned[0].PID != 101 {
		t.Fatalf("expected only 101 pinned after 100 vanished, got %+v", status.Pinned)
	}
	if len(status.FreeCores) != 1 || status.FreeCores[0] != 1 {
		t.Fatalf("expected core 1 released, got %v", status.FreeCores)
	}
}

func TestRunCycleStallsOnExhaustedPool(t *testing.T) {
	obs := &fakeObserver{cycles: [][]types.PID{
		{100, 101, 102},
		{101, 102},
	}}
	binder := &fakeBinder{}
	d := newTestDaemon(obs, binder, 1, 2)

	d.runCycle(context.Background())
	if len(binder.bound) != 2 {
		t.Fatalf("expected only 2 bindings from a 2-core pool, got %v", binder.bound)
	}

	// 100 exited; the stalled newcomer picks up the freed core.
	d.runCycle(context.Background())
	last := binder.bound[len(binder.bound)-1]
	if last != (types.Binding{PID: 102, Core: 1}) {
		t.Fatalf("expected 102 bound to released core 1, got %+v", last)
	}
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	obs := &fakeObserver{}
	d := newTestDaemon(obs, &fakeBinder{}, 1)
	d.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("daemon did not stop after cancellation")
	}
}

func TestStatusReportsPool(t *testing.T) {
	obs := &fakeObserver{cycles: [][]types.PID{{500}}}
	d := newTestDaemon(obs, &fakeBinder{}, 1, 2)
	d.runCycle(context.Background())

	status := d.Status()
	if status.PoolSize != 2 {
		t.Fatalf("expected pool size 2, got %d", status.PoolSize)
	}
	if len(status.Pinned) != 1 || status.Pinned[0].Core != 1 {
		t.Fatalf("unexpected pinned rows: %+v", status.Pinned)
	}
	if len(status.FreeCores) != 1 || status.FreeCores[0] != 2 {
		t.Fatalf("unexpected free cores: %v", status.FreeCores)
	}
}
