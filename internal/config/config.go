// Package config loads the exporter configuration from layered
// sources: struct defaults, an optional YAML file, and GARMIN_-prefixed
// environment variables, in that order of precedence.
package config

import (
	"fmt"
	"time"

	"garminexport/pkg/cache"
	"garminexport/pkg/connect"
	"garminexport/pkg/fetch"
)

// Config is the complete exporter configuration.
type Config struct {
	// Email is the Garmin Connect account email. Only needed when no
	// stored session is accepted and a fresh login has to happen.
	Email string `koanf:"email"`

	// Password is the Garmin Connect account password.
	Password string `koanf:"password"`

	// SessionFile is where the authenticated session is persisted.
	SessionFile string `koanf:"session_file"`

	// DataDir is where export artifacts are written.
	DataDir string `koanf:"data_dir"`

	// Days is the history window, counting back from today.
	Days int `koanf:"days"`

	Connect ConnectConfig `koanf:"connect"`
	Export  ExportConfig  `koanf:"export"`
	Redis   RedisConfig   `koanf:"redis"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// ConnectConfig overrides the Garmin Connect client settings.
type ConnectConfig struct {
	BaseURL    string        `koanf:"base_url"`
	SSOBaseURL string        `koanf:"sso_base_url"`
	UserAgent  string        `koanf:"user_agent"`
	Timeout    time.Duration `koanf:"timeout"`
}

// ExportConfig tunes the parallel history fetch.
type ExportConfig struct {
	Workers       int           `koanf:"workers"`
	RequestDelay  time.Duration `koanf:"request_delay"`
	RetryAttempts int           `koanf:"retry_attempts"`
	RetryDelay    time.Duration `koanf:"retry_delay"`
}

// RedisConfig enables the optional response cache.
type RedisConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	PastTTL  time.Duration `koanf:"past_ttl"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// MetricsConfig controls the optional Prometheus listener. An empty
// address disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// defaultConfig mirrors the standalone tool's conventions: artifacts in
// ./data, the session in a hidden file next to them.
func defaultConfig() *Config {
	connectDefaults := connect.DefaultConfig()
	historyDefaults := fetch.DefaultHistoryConfig()

	return &Config{
		SessionFile: ".garmin_session",
		DataDir:     "data",
		Days:        30,
		Connect: ConnectConfig{
			BaseURL:    connectDefaults.BaseURL,
			SSOBaseURL: connectDefaults.SSOBaseURL,
			UserAgent:  connectDefaults.UserAgent,
			Timeout:    connectDefaults.Timeout,
		},
		Export: ExportConfig{
			Workers:       historyDefaults.Workers,
			RequestDelay:  historyDefaults.RequestDelay,
			RetryAttempts: historyDefaults.Call.MaxAttempts,
			RetryDelay:    historyDefaults.Call.AttemptDelay,
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			DB:      0,
			PastTTL: cache.DefaultPastTTL,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: false,
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
	}
}

// Validate rejects configurations the exporter cannot run with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data dir must not be empty")
	}
	if c.SessionFile == "" {
		return fmt.Errorf("session file must not be empty")
	}
	if c.Days < 0 {
		return fmt.Errorf("days must not be negative, got %d", c.Days)
	}
	if c.Export.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Export.Workers)
	}
	if c.Export.RetryAttempts != 1 && c.Export.RetryAttempts != 3 {
		return fmt.Errorf("retry attempts must be 1 or 3, got %d", c.Export.RetryAttempts)
	}
	if c.Export.RequestDelay < 0 {
		return fmt.Errorf("request delay must not be negative, got %v", c.Export.RequestDelay)
	}
	if c.Export.RetryDelay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %v", c.Export.RetryDelay)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis addr must not be empty when redis is enabled")
	}
	return nil
}

// HistoryConfig maps the export tuning onto the fetcher configuration.
func (c *Config) HistoryConfig() fetch.HistoryConfig {
	return fetch.HistoryConfig{
		Workers:      c.Export.Workers,
		RequestDelay: c.Export.RequestDelay,
		Call:         c.CallConfig(),
	}
}

// CallConfig maps the retry tuning onto the resilient call wrapper.
func (c *Config) CallConfig() fetch.CallConfig {
	return fetch.CallConfig{
		MaxAttempts:  c.Export.RetryAttempts,
		AttemptDelay: c.Export.RetryDelay,
	}
}
