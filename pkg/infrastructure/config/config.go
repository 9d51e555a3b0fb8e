// Package config loads service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/aim/pkg/infrastructure/logging"
)

// Supported store drivers
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config is the top-level configuration
type Config struct {
	Store   StoreConfig    `yaml:"store"`
	HTTP    HTTPConfig     `yaml:"http"`
	Log     logging.Config `yaml:"log"`
	Reports ReportsConfig  `yaml:"reports"`
	Seed    SeedConfig     `yaml:"seed"`
}

// StoreConfig selects and configures the persistence backend
type StoreConfig struct {
	Driver string       `yaml:"driver"`
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig configures the SQLite store
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// HTTPConfig configures the API server
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// ReportsConfig holds reporting defaults
type ReportsConfig struct {
	FailureRateThreshold float64 `yaml:"failure_rate_threshold"`
}

// SeedConfig names a CSV scenario directory loaded into the store at startup
type SeedConfig struct {
	ScenarioDir string `yaml:"scenario_dir"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: DriverMemory,
			SQLite: SQLiteConfig{Path: "aim.db"},
		},
		HTTP:    HTTPConfig{Addr: ":8080"},
		Log:     logging.DefaultConfig(),
		Reports: ReportsConfig{FailureRateThreshold: 0.05},
	}
}

// Load reads the YAML file at path on top of the defaults, applies
// environment overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("AIM_STORE_DRIVER"); ok {
		c.Store.Driver = v
	}
	if v, ok := lookup("AIM_SQLITE_PATH"); ok {
		c.Store.SQLite.Path = v
	}
	if v, ok := lookup("AIM_HTTP_ADDR"); ok {
		c.HTTP.Addr = v
	}
	if v, ok := lookup("AIM_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("AIM_SCENARIO_DIR"); ok {
		c.Seed.ScenarioDir = v
	}
	if v, ok := lookup("AIM_FAILURE_RATE_THRESHOLD"); ok {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("AIM_FAILURE_RATE_THRESHOLD: invalid number %q", v)
		}
		c.Reports.FailureRateThreshold = threshold
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Store.SQLite.Path) == "" {
			return fmt.Errorf("store.sqlite.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported store driver: %s", c.Store.Driver)
	}

	if c.Reports.FailureRateThreshold < 0 {
		return fmt.Errorf("reports.failure_rate_threshold must be non-negative, got %g", c.Reports.FailureRateThreshold)
	}
	return nil
}
