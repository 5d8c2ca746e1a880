package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want data", cfg.DataDir)
	}
	if cfg.SessionFile != ".garmin_session" {
		t.Errorf("SessionFile = %q, want .garmin_session", cfg.SessionFile)
	}
	if cfg.Days != 30 {
		t.Errorf("Days = %d, want 30", cfg.Days)
	}
	if cfg.Export.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Export.Workers)
	}
	if cfg.Export.RequestDelay != 500*time.Millisecond {
		t.Errorf("RequestDelay = %v, want 500ms", cfg.Export.RequestDelay)
	}
	if cfg.Export.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %d, want 3", cfg.Export.RetryAttempts)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis should be disabled by default")
	}
	if cfg.Connect.BaseURL != "https://connectapi.garmin.com" {
		t.Errorf("BaseURL = %q, want connectapi default", cfg.Connect.BaseURL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GARMIN_EMAIL", "user@example.com")
	t.Setenv("GARMIN_DAYS", "60")
	t.Setenv("GARMIN_EXPORT__WORKERS", "2")
	t.Setenv("GARMIN_EXPORT__REQUEST_DELAY", "750ms")
	t.Setenv("GARMIN_REDIS__ENABLED", "true")
	t.Setenv("GARMIN_REDIS__ADDR", "redis:6379")
	t.Setenv("GARMIN_LOGGING__PRETTY", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Email != "user@example.com" {
		t.Errorf("Email = %q, want user@example.com", cfg.Email)
	}
	if cfg.Days != 60 {
		t.Errorf("Days = %d, want 60", cfg.Days)
	}
	if cfg.Export.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Export.Workers)
	}
	if cfg.Export.RequestDelay != 750*time.Millisecond {
		t.Errorf("RequestDelay = %v, want 750ms", cfg.Export.RequestDelay)
	}
	if !cfg.Redis.Enabled {
		t.Error("Redis should be enabled")
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("Redis.Addr = %q, want redis:6379", cfg.Redis.Addr)
	}
	if !cfg.Logging.Pretty {
		t.Error("Pretty should be enabled")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := []byte("days: 7\nexport:\n  workers: 1\nlogging:\n  level: debug\n")
	if err := os.WriteFile(filepath.Join(dir, "garminexport.yaml"), yaml, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Days != 7 {
		t.Errorf("Days = %d, want 7", cfg.Days)
	}
	if cfg.Export.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Export.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched keys keep their defaults.
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want data", cfg.DataDir)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GARMIN_DAYS", "9")

	yaml := []byte("days: 7\n")
	if err := os.WriteFile(filepath.Join(dir, "garminexport.yaml"), yaml, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Days != 9 {
		t.Errorf("Days = %d, want 9 (env over file)", cfg.Days)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("data_dir: exports\n"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataDir != "exports" {
		t.Errorf("DataDir = %q, want exports", cfg.DataDir)
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := Load("no-such-file.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	env := []byte("GARMIN_EMAIL=dotenv@example.com\nGARMIN_PASSWORD=hunter2\n")
	if err := os.WriteFile(filepath.Join(dir, ".env"), env, 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv mutates the process environment for good; undo it so
	// later tests see a clean slate.
	t.Cleanup(func() {
		os.Unsetenv("GARMIN_EMAIL")
		os.Unsetenv("GARMIN_PASSWORD")
	})

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Email != "dotenv@example.com" {
		t.Errorf("Email = %q, want dotenv@example.com", cfg.Email)
	}
	if cfg.Password != "hunter2" {
		t.Errorf("Password = %q, want hunter2", cfg.Password)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.DataDir = "" },
			wantErr: true,
		},
		{
			name:    "empty session file",
			mutate:  func(c *Config) { c.SessionFile = "" },
			wantErr: true,
		},
		{
			name:    "negative days",
			mutate:  func(c *Config) { c.Days = -1 },
			wantErr: true,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Export.Workers = 0 },
			wantErr: true,
		},
		{
			name:    "zero retry attempts",
			mutate:  func(c *Config) { c.Export.RetryAttempts = 0 },
			wantErr: true,
		},
		{
			name:    "two retry attempts",
			mutate:  func(c *Config) { c.Export.RetryAttempts = 2 },
			wantErr: true,
		},
		{
			name:    "too many retry attempts",
			mutate:  func(c *Config) { c.Export.RetryAttempts = 4 },
			wantErr: true,
		},
		{
			name:    "negative request delay",
			mutate:  func(c *Config) { c.Export.RequestDelay = -time.Second },
			wantErr: true,
		},
		{
			name:    "negative retry delay",
			mutate:  func(c *Config) { c.Export.RetryDelay = -time.Second },
			wantErr: true,
		},
		{
			name: "redis enabled without addr",
			mutate: func(c *Config) {
				c.Redis.Enabled = true
				c.Redis.Addr = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestHistoryConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Export.Workers = 2
	cfg.Export.RequestDelay = 100 * time.Millisecond
	cfg.Export.RetryAttempts = 1
	cfg.Export.RetryDelay = 50 * time.Millisecond

	hc := cfg.HistoryConfig()
	if hc.Workers != 2 {
		t.Errorf("Workers = %d, want 2", hc.Workers)
	}
	if hc.RequestDelay != 100*time.Millisecond {
		t.Errorf("RequestDelay = %v, want 100ms", hc.RequestDelay)
	}
	if hc.Call.MaxAttempts != 1 {
		t.Errorf("MaxAttempts = %d, want 1", hc.Call.MaxAttempts)
	}
	if hc.Call.AttemptDelay != 50*time.Millisecond {
		t.Errorf("AttemptDelay = %v, want 50ms", hc.Call.AttemptDelay)
	}
}
