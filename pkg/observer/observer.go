package observer

import (
	"context"
	"sort"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/srodi/corepin/pkg/logx"
	"github.com/srodi/corepin/pkg/types"
)

type procEntry struct {
	pid  types.PID
	name string
}

// listProcesses allows tests to stub the process-table walk.
var listProcesses = func(ctx context.Context) ([]procEntry, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]procEntry, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Process exited between listing and lookup.
			continue
		}
		entries = append(entries, procEntry{pid: types.PID(p.Pid), name: name})
	}
	return entries, nil
}

// Observer finds the PIDs of the watched executables in the host process
// table. It owns no state between cycles.
type Observer struct {
	names []string
	watch map[string]bool
}

// New builds an observer for the given executable names.
func New(names []string) *Observer {
	watch := make(map[string]bool, len(names))
	for _, name := range names {
		watch[name] = true
	}
	return &Observer{names: names, watch: watch}
}

// Observe walks the process table once and returns the live PIDs of every
// watched executable, deduplicated and sorted ascending so the allocation
// order downstream is reproducible. A watched name with no running
// instances contributes nothing; a failed walk yields an empty set. Neither
// is an error for the caller.
func (o *Observer) Observe(ctx context.Context) []types.PID {
	entries, err := listProcesses(ctx)
	if err != nil {
		logx.Log.Debug().Err(err).Msg("process table walk failed")
		return nil
	}

	seen := make(map[types.PID]bool)
	matched := make(map[string]int, len(o.names))
	var out []types.PID
	for _, e := range entries {
		if !o.watch[e.name] {
			continue
		}
		matched[e.name]++
		if seen[e.pid] {
			continue
		}
		seen[e.pid] = true
		out = append(out, e.pid)
	}

	for _, name := range o.names {
		if matched[name] == 0 {
			logx.Log.Debug().Str("name", name).Msg("no running instances")
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
