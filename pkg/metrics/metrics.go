package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	poolSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "corepin_core_pool_size",
			Help: "Number of cores in the configured pool",
		},
	)

	freeCores = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "corepin_free_cores",
			Help: "Cores currently available for allocation",
		},
	)

	pinnedProcesses = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "corepin_pinned_processes",
			Help: "Processes currently holding a core assignment",
		},
	)

	unpinnedProcesses = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "corepin_unpinned_processes",
			Help: "Observed processes left unpinned because the pool is exhausted",
		},
	)

	cyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "corepin_cycles_total",
			Help: "Total number of completed observe/reconcile cycles",
		},
	)

	bindingsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "corepin_bindings_total",
			Help: "Total number of successful core bindings",
		},
	)

	bindFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "corepin_bind_failures_total",
			Help: "Total number of rejected core-binding requests",
		},
	)
)

// Register registers the daemon metrics with the given registerer.
func Register(r prometheus.Registerer) {
	r.MustRegister(
		poolSize,
		freeCores,
		pinnedProcesses,
		unpinnedProcesses,
		cyclesTotal,
		bindingsTotal,
		bindFailuresTotal,
	)
}

// SetPoolSize records the fixed pool size once at startup.
func SetPoolSize(n int) { poolSize.Set(float64(n)) }

// ObserveCycle updates the per-cycle gauges and the cycle counter.
func ObserveCycle(pinned, free, unpinned int) {
	pinnedProcesses.Set(float64(pinned))
	freeCores.Set(float64(free))
	unpinnedProcesses.Set(float64(unpinned))
	cyclesTotal.Inc()
}

// BindSuccess counts a completed binding.
func BindSuccess() { bindingsTotal.Inc() }

// BindFailure counts a binding the OS rejected.
func BindFailure() { bindFailuresTotal.Inc() }
