package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix shared by all configuration environment
// variables.
const EnvPrefix = "GARMIN_"

// defaultConfigPaths are searched in order when no explicit config path
// is given.
var defaultConfigPaths = []string{
	"garminexport.yaml",
	"garminexport.yml",
}

// Load builds the configuration from defaults, an optional YAML file,
// and GARMIN_-prefixed environment variables, later layers winning.
// A .env file in the working directory is folded into the process
// environment first, so GARMIN_EMAIL and GARMIN_PASSWORD can live there
// the way the standalone tool expects. configPath may be empty; then
// garminexport.yaml in the working directory is used when present.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path := configPath
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envToPath), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// envToPath maps GARMIN_EXPORT__WORKERS to export.workers. A single
// underscore stays part of the key, a double underscore nests.
func envToPath(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// findConfigFile returns the first default config file that exists, or
// an empty string.
func findConfigFile() string {
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
