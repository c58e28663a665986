package tracker

import (
	"sort"
	"sync"

	"github.com/srodi/corepin/pkg/types"
)

// Tracker owns the core pool allocation state and the PID-to-core
// assignment that survives between polling cycles. The daemon loop is the
// only writer; the mutex exists so the status endpoint can snapshot the
// assignment while a cycle is running.
type Tracker struct {
	mu         sync.Mutex
	pool       []types.CoreID // sorted ascending, fixed at construction
	assignment map[types.PID]types.CoreID
	inUse      map[types.CoreID]bool
}

// New builds a tracker over the given core pool. The pool is copied and
// sorted so allocation always prefers the lowest-valued free core.
func New(cores []types.CoreID) *Tracker {
	pool := make([]types.CoreID, len(cores))
	copy(pool, cores)
	sort.Slice(pool, func(i, j int) bool { return pool[i] < pool[j] })

	return &Tracker{
		pool:       pool,
		assignment: make(map[types.PID]types.CoreID),
		inUse:      make(map[types.CoreID]bool),
	}
}

// allocate returns the lowest-valued core in the pool that is not in use,
// or false when every core is taken.
func (t *Tracker) allocate() (types.CoreID, bool) {
	for _, core := range t.pool {
		if !t.inUse[core] {
			return core, true
		}
	}
	return 0, false
}

// Reconcile replaces the retained assignment with one reflecting the
// observed PID set and returns the pairs that were newly bound.
//
// PIDs already assigned keep their core untouched. PIDs no longer observed
// are dropped, returning their core to the pool. Remaining PIDs receive
// cores in encounter order until the pool runs out; the surplus stays
// unassigned until a core frees up in a later cycle. The assignment and
// in-use set are rebuilt fresh and swapped in wholesale, never mutated
// while the previous cycle's maps are being read.
func (t *Tracker) Reconcile(observed []types.PID) []types.Binding {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make(map[types.PID]types.CoreID, len(observed))
	nextInUse := make(map[types.CoreID]bool, len(observed))
	for _, pid := range observed {
		if core, ok := t.assignment[pid]; ok {
			next[pid] = core
			nextInUse[core] = true
		}
	}

	// Survivors are settled; newcomers allocate from whatever they left free.
	t.inUse = nextInUse

	var bound []types.Binding
	for _, pid := range observed {
		if _, ok := next[pid]; ok {
			continue
		}
		core, ok := t.allocate()
		if !ok {
			break
		}
		next[pid] = core
		t.inUse[core] = true
		bound = append(bound, types.Binding{PID: pid, Core: core})
	}

	t.assignment = next
	return bound
}

// Snapshot returns a copy of the current assignment.
func (t *Tracker) Snapshot() map[types.PID]types.CoreID {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[types.PID]types.CoreID, len(t.assignment))
	for pid, core := range t.assignment {
		out[pid] = core
	}
	return out
}

// FreeCores returns the pool members not currently assigned, ascending.
func (t *Tracker) FreeCores() []types.CoreID {
	t.mu.Lock()
	defer t.mu.Unlock()

	free := make([]types.CoreID, 0, len(t.pool))
	for _, core := range t.pool {
		if !t.inUse[core] {
			free = append(free, core)
		}
	}
	return free
}

// PoolSize reports how many cores the fixed pool holds.
func (t *Tracker) PoolSize() int {
	return len(t.pool)
}

// Assigned reports how many processes currently hold a core.
func (t *Tracker) Assigned() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.assignment)
}
