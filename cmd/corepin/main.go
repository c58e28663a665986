package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/srodi/corepin/pkg/affinity"
	"github.com/srodi/corepin/pkg/config"
	"github.com/srodi/corepin/pkg/daemon"
	"github.com/srodi/corepin/pkg/logx"
	"github.com/srodi/corepin/pkg/metrics"
	"github.com/srodi/corepin/pkg/observer"
	"github.com/srodi/corepin/pkg/report"
	"github.com/srodi/corepin/pkg/tracker"
	"github.com/srodi/corepin/pkg/types"
	"github.com/srodi/corepin/pkg/ui"
)

func parseConfig() (config.Config, bool, error) {
	configPath := flag.String("config", config.DefaultPath, "path to YAML config file")
	interval := flag.Duration("interval", types.DefaultInterval, "polling interval (e.g. 3s, 1m)")
	coreList := flag.String("cores", "", "comma-separated core pool, e.g. 1,2,3 (default: every core except 0)")
	procList := flag.String("procs", "", "comma-separated executable names to pin (default cc1plus,cc1)")
	statusAddr := flag.String("status-addr", "", "listen address for /metrics and /status (empty disables)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg := config.Default()
	data, err := os.ReadFile(*configPath)
	switch {
	case err == nil:
		if cfg, err = config.Parse(data); err != nil {
			return config.Config{}, false, err
		}
	case os.IsNotExist(err) && !flagWasSet("config"):
		// No config file at the default location: flags and defaults apply.
	default:
		return config.Config{}, false, err
	}

	if flagWasSet("interval") {
		cfg.Interval = *interval
	}
	if flagWasSet("status-addr") {
		cfg.StatusAddr = *statusAddr
	}
	if flagWasSet("procs") {
		cfg.Processes = config.ParseNames(*procList)
	}
	if flagWasSet("cores") {
		cores, err := config.ParseCores(*coreList)
		if err != nil {
			return config.Config{}, false, err
		}
		cfg.Cores = cores
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, false, err
	}
	return cfg, *debug, nil
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func main() {
	cfg, debug, err := parseConfig()
	if err != nil {
		logx.Log.Fatal().Err(err).Msg("invalid configuration")
	}
	logx.SetDebug(debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr := tracker.New(cfg.Cores)
	obs := observer.New(cfg.Processes)
	binder := affinity.NewBinder()

	metrics.Register(prometheus.DefaultRegisterer)
	metrics.SetPoolSize(tr.PoolSize())

	cleanupTerminal, liveView := ui.EnableSingleView()
	defer cleanupTerminal()

	d := daemon.New(obs, tr, binder, cfg.Interval, liveView)

	if cfg.StatusAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.StatusAddr, func() any { return d.Status() }); err != nil {
				logx.Log.Error().Err(err).Msg("status server failed")
			}
		}()
	}

	logx.Log.Info().
		Str("cores", report.FormatCores(cfg.Cores)).
		Dur("interval", cfg.Interval).
		Strs("processes", cfg.Processes).
		Msg("corepin started")

	d.Run(ctx)
}
