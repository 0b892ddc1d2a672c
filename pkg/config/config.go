// Package config provides configuration management for the netstate
// engine.
//
// This package handles:
// - Configuration file parsing (YAML)
// - Environment variable overrides
// - Configuration validation
//
// Configuration Priority (highest to lowest):
// 1. Environment variables (NETSTATE_*)
// 2. Configuration file
// 3. Default values
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/corenetic/netstate/pkg/nmerror"
)

// Config is the engine's own operational configuration — retry budgets,
// the OVSDB socket path, checkpoint timeout base, and logging. It is
// distinct from a NetworkState document: this is how the engine runs, not
// what it applies.
type Config struct {
	// Retry contains the verification retry harness settings (spec §4.6).
	Retry RetryConfig `json:"retry" yaml:"retry"`

	// OVSDB contains the Open_vSwitch transaction layer settings.
	OVSDB OVSDBConfig `json:"ovsdb" yaml:"ovsdb"`

	// Checkpoint contains the rollback-guard timeout base.
	Checkpoint CheckpointConfig `json:"checkpoint" yaml:"checkpoint"`

	// Logging contains logging configuration.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// RetryConfig holds the retry interval and per-mode attempt counts spec
// §4.6 specifies: 5 normal, 5 kernel-only, 60 SR-IOV. The engine reads only
// IntervalMS, for the checkpoint extension; pkg/verify polls with its own
// Interval and Retry* constants, which carry the same default values.
type RetryConfig struct {
	IntervalMS int `json:"intervalMs" yaml:"intervalMs"`
	Normal     int `json:"normal" yaml:"normal"`
	Kernel     int `json:"kernel" yaml:"kernel"`
	SRIOV      int `json:"sriov" yaml:"sriov"`
}

// OVSDBConfig holds the transport settings for pkg/ovsdb.
type OVSDBConfig struct {
	// SocketPath is the unix-domain socket path of the OVSDB server.
	SocketPath string `json:"socketPath" yaml:"socketPath"`

	// ConnectTimeout bounds the initial connection attempt.
	ConnectTimeout time.Duration `json:"connectTimeout" yaml:"connectTimeout"`
}

// CheckpointConfig holds the rollback-guard timeout base. It is not an
// input of pkg/checkpoint.ExtendSeconds, which derives the extension from
// the retry interval and count alone.
type CheckpointConfig struct {
	// BaseTimeoutSeconds is the network-manager daemon's own checkpoint
	// lifetime before any retry-proportional extension is applied.
	BaseTimeoutSeconds int `json:"baseTimeoutSeconds" yaml:"baseTimeoutSeconds"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `json:"level" yaml:"level"`

	// Format is the log format: "json" or "text".
	// Default: "json"
	Format string `json:"format" yaml:"format"`

	// File is the log file path (optional). If empty, logs to stdout.
	File string `json:"file" yaml:"file"`
}

// DefaultConfig returns the engine's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Retry: RetryConfig{
			IntervalMS: 1000,
			Normal:     5,
			Kernel:     5,
			SRIOV:      60,
		},
		OVSDB: OVSDBConfig{
			SocketPath:     "/var/run/openvswitch/db.sock",
			ConnectTimeout: 5 * time.Second,
		},
		Checkpoint: CheckpointConfig{
			BaseTimeoutSeconds: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig builds a Config from defaults, an optional file named by the
// NETSTATE_CONFIG_FILE environment variable, and then environment
// overrides — in that priority order.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("NETSTATE_CONFIG_FILE"); path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file, overlaying it onto
// the receiver's current values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides applies NETSTATE_* environment variables on top of the
// current configuration.
//
// Environment variables follow the pattern: NETSTATE_<SECTION>_<KEY>
//   - NETSTATE_RETRY_INTERVAL_MS=1000
//   - NETSTATE_RETRY_NORMAL=5
//   - NETSTATE_RETRY_KERNEL=5
//   - NETSTATE_RETRY_SRIOV=60
//   - NETSTATE_OVSDB_SOCKET_PATH=/var/run/openvswitch/db.sock
//   - NETSTATE_CHECKPOINT_BASE_TIMEOUT_SECONDS=60
//   - NETSTATE_LOG_LEVEL=debug
//   - NETSTATE_LOG_FORMAT=json
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("NETSTATE_RETRY_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retry.IntervalMS = n
		}
	}
	if v := os.Getenv("NETSTATE_RETRY_NORMAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retry.Normal = n
		}
	}
	if v := os.Getenv("NETSTATE_RETRY_KERNEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retry.Kernel = n
		}
	}
	if v := os.Getenv("NETSTATE_RETRY_SRIOV"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retry.SRIOV = n
		}
	}
	if v := os.Getenv("NETSTATE_OVSDB_SOCKET_PATH"); v != "" {
		c.OVSDB.SocketPath = v
	}
	if v := os.Getenv("NETSTATE_CHECKPOINT_BASE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Checkpoint.BaseTimeoutSeconds = n
		}
	}
	if v := os.Getenv("NETSTATE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("NETSTATE_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
}

// Validate checks the configuration for internally consistent values.
func (c *Config) Validate() error {
	if c.Retry.IntervalMS <= 0 {
		return nmerror.NewInvalidArgument("retry.intervalMs must be positive, got %d", c.Retry.IntervalMS)
	}
	if c.Retry.Normal <= 0 || c.Retry.Kernel <= 0 || c.Retry.SRIOV <= 0 {
		return nmerror.NewInvalidArgument("retry counts must be positive")
	}
	if c.OVSDB.SocketPath == "" {
		return nmerror.NewInvalidArgument("ovsdb.socketPath must not be empty")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return nmerror.NewInvalidArgument("logging.level must be one of debug/info/warn/error, got %q", c.Logging.Level)
	}
	return nil
}

// RetryInterval returns the configured retry interval as a time.Duration.
func (c *Config) RetryInterval() time.Duration {
	return time.Duration(c.Retry.IntervalMS) * time.Millisecond
}
