// Package config holds the runtime settings threaded into the store and the
// monitor. Values come from command-line flags and the environment; there is
// no configuration file, the database is the only persisted state.
package config

import (
	"fmt"
	"os"
	"time"
)

// Defaults.
const (
	DefaultDatabasePath  = "clipboard.db"
	DefaultIntervalMS    = 10
	DefaultReadTimeoutMS = 250
	DefaultMaxRetries    = 3
)

// EnvDatabasePath overrides the default database location when --db is not set.
const EnvDatabasePath = "ROPIAS_DB"

// Config is the complete runtime configuration.
type Config struct {
	DatabasePath  string `json:"database_path" yaml:"database_path"`
	IntervalMS    int    `json:"interval_ms" yaml:"interval_ms"`         // sampling period
	ReadTimeoutMS int    `json:"read_timeout_ms" yaml:"read_timeout_ms"` // bound on one OS clipboard read
	MaxRetries    int    `json:"max_retries" yaml:"max_retries"`         // transient write retries; 0 disables
	Verbose       bool   `json:"verbose" yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DatabasePath:  DefaultDatabasePath,
		IntervalMS:    DefaultIntervalMS,
		ReadTimeoutMS: DefaultReadTimeoutMS,
		MaxRetries:    DefaultMaxRetries,
	}
}

// ApplyEnv fills DatabasePath from ROPIAS_DB when explicit is false.
// explicit reports whether the user passed --db.
func (c *Config) ApplyEnv(explicit bool) {
	if explicit {
		return
	}
	if path := os.Getenv(EnvDatabasePath); path != "" {
		c.DatabasePath = path
	}
}

// Validate normalises out-of-range values to defaults and rejects
// configurations that cannot work.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.IntervalMS <= 0 {
		c.IntervalMS = DefaultIntervalMS
	}
	if c.ReadTimeoutMS <= 0 {
		c.ReadTimeoutMS = DefaultReadTimeoutMS
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return nil
}

// Interval returns the sampling period.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// ReadTimeout returns the bound on a single clipboard read.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMS) * time.Millisecond
}
