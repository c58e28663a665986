package daemon

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/srodi/corepin/pkg/logx"
	"github.com/srodi/corepin/pkg/metrics"
	"github.com/srodi/corepin/pkg/report"
	"github.com/srodi/corepin/pkg/tracker"
	"github.com/srodi/corepin/pkg/types"
	"github.com/srodi/corepin/pkg/ui"
)

// Observer yields the PIDs of the watched processes for one cycle.
type Observer interface {
	Observe(ctx context.Context) []types.PID
}

// Binder pins a process to a core.
type Binder interface {
	Bind(pid types.PID, core types.CoreID) error
}

// Daemon drives the observe/reconcile/bind cycle on a fixed interval.
type Daemon struct {
	observer Observer
	tracker  *tracker.Tracker
	binder   Binder
	interval time.Duration
	liveView bool
}

// New wires the daemon components together. liveView enables the
// alternate-screen status table; when off, cycles log instead.
func New(obs Observer, tr *tracker.Tracker, b Binder, interval time.Duration, liveView bool) *Daemon {
	return &Daemon{
		observer: obs,
		tracker:  tr,
		binder:   b,
		interval: interval,
		liveView: liveView,
	}
}

// Run executes cycles until ctx is done. The first cycle runs immediately
// so already-running compilers get pinned without waiting a full interval.
func (d *Daemon) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.runCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.runCycle(ctx)
		}
	}
}

// runCycle performs one observe/reconcile/bind pass. Nothing here is fatal:
// discovery misses yield an empty set, pool exhaustion leaves the surplus
// unpinned until a core frees, and a rejected bind keeps its optimistic
// assignment to be corrected by the next observation.
func (d *Daemon) runCycle(ctx context.Context) {
	observed := d.observer.Observe(ctx)
	bound := d.tracker.Reconcile(observed)

	for _, b := range bound {
		if err := d.binder.Bind(b.PID, b.Core); err != nil {
			metrics.BindFailure()
			logx.Log.Warn().Err(err).
				Int("pid", int(b.PID)).
				Int("core", int(b.Core)).
				Msg("bind failed")
			continue
		}
		metrics.BindSuccess()
		logx.Log.Info().
			Int("pid", int(b.PID)).
			Int("core", int(b.Core)).
			Msg("pinned process")
	}

	pinned := d.tracker.Assigned()
	free := d.tracker.FreeCores()
	unpinned := len(observed) - pinned
	metrics.ObserveCycle(pinned, len(free), unpinned)

	if unpinned > 0 {
		logx.Log.Debug().
			Int("unpinned", unpinned).
			Msg("core pool exhausted, surplus processes left unpinned")
	}

	if d.liveView {
		d.renderStatus()
		return
	}
	logx.Log.Debug().
		Int("observed", len(observed)).
		Int("pinned", pinned).
		Int("new", len(bound)).
		Str("free", report.FormatCores(free)).
		Msg("cycle complete")
}

func (d *Daemon) renderStatus() {
	var buf bytes.Buffer
	buf.WriteString(ui.Banner())
	fmt.Fprintf(&buf, "corepin (press Ctrl+C to exit)\n")
	rows := report.BuildRows(d.tracker.Snapshot())
	report.Render(&buf, rows, d.tracker.FreeCores(), d.interval)
	ui.ClearScreen()
	fmt.Print(buf.String())
}

// Status describes the current assignment for the HTTP endpoint.
type Status struct {
	Pinned    []report.Row   `json:"pinned"`
	FreeCores []types.CoreID `json:"free_cores"`
	PoolSize  int            `json:"pool_size"`
}

// Status snapshots the tracker for the /status endpoint.
func (d *Daemon) Status() Status {
	return Status{
		Pinned:    report.BuildRows(d.tracker.Snapshot()),
		FreeCores: d.tracker.FreeCores(),
		PoolSize:  d.tracker.PoolSize(),
	}
}
