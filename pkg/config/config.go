package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/srodi/corepin/pkg/types"
)

// DefaultPath is where the daemon looks for its config when -config is not given.
const DefaultPath = "/etc/corepin/corepin.yaml"

// Config is the daemon configuration, immutable once the daemon starts.
type Config struct {
	Cores      []types.CoreID
	Interval   time.Duration
	Processes  []string
	StatusAddr string
}

// file mirrors the YAML document. Interval is a duration string such as "5s".
type file struct {
	Cores      []int    `yaml:"cores"`
	Interval   string   `yaml:"interval"`
	Processes  []string `yaml:"processes"`
	StatusAddr string   `yaml:"status_addr"`
}

// Default returns the built-in configuration: every core except 0 (left to
// the rest of the system), the default interval, and the default compiler
// names.
func Default() Config {
	n := runtime.NumCPU()
	cores := make([]types.CoreID, 0, n)
	for c := 1; c < n; c++ {
		cores = append(cores, types.CoreID(c))
	}
	return Config{
		Cores:     cores,
		Interval:  types.DefaultInterval,
		Processes: append([]string(nil), types.DefaultProcessNames...),
	}
}

// Load reads a YAML config file and merges it over the defaults. Fields
// absent from the file keep their default value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes a YAML document and merges it over the defaults.
func Parse(data []byte) (Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	cfg := Default()
	if len(f.Cores) > 0 {
		cfg.Cores = make([]types.CoreID, len(f.Cores))
		for i, c := range f.Cores {
			cfg.Cores[i] = types.CoreID(c)
		}
	}
	if f.Interval != "" {
		interval, err := time.ParseDuration(f.Interval)
		if err != nil {
			return Config{}, fmt.Errorf("parsing interval %q: %w", f.Interval, err)
		}
		cfg.Interval = interval
	}
	if len(f.Processes) > 0 {
		cfg.Processes = f.Processes
	}
	if f.StatusAddr != "" {
		cfg.StatusAddr = f.StatusAddr
	}
	return cfg, nil
}

// Validate rejects configurations the tracker cannot run with. A
// non-positive interval is coerced to the default rather than rejected.
func (c *Config) Validate() error {
	if len(c.Cores) == 0 {
		return fmt.Errorf("core pool is empty")
	}
	seen := make(map[types.CoreID]bool, len(c.Cores))
	for _, core := range c.Cores {
		if core < 0 {
			return fmt.Errorf("negative core id %d", core)
		}
		if seen[core] {
			return fmt.Errorf("duplicate core id %d", core)
		}
		seen[core] = true
	}
	if len(c.Processes) == 0 {
		return fmt.Errorf("no watched process names")
	}
	if c.Interval <= 0 {
		c.Interval = types.DefaultInterval
	}
	return nil
}

// ParseCores turns a flag value like "1,2,3" into a core list.
func ParseCores(value string) ([]types.CoreID, error) {
	var cores []types.CoreID
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid core id %q", field)
		}
		cores = append(cores, types.CoreID(n))
	}
	return cores, nil
}

// ParseNames splits a comma-separated executable list from a flag.
func ParseNames(value string) []string {
	var names []string
	for _, field := range strings.Split(value, ",") {
		if field = strings.TrimSpace(field); field != "" {
			names = append(names, field)
		}
	}
	return names
}
