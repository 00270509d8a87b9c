// Package config loads tool configuration from environment variables and an
// optional YAML file. Environment values (prefix TABLECLI) take precedence
// over the file; both layers fall back to the struct defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for all environment overrides.
const EnvPrefix = "TABLECLI"

// Config is the complete tool configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/tablecli.log"`
}

// PathsConfig names the working directories.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	CacheDir   string `yaml:"cache_dir" envconfig:"CACHE_DIR" default:"data/cache"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load reads configuration from the environment and, when present, the YAML
// file at configPath (empty means no file). The environment wins field by
// field over the file.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			fileCfg, err := loadFromFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
			cfg = merge(*fileCfg, cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge overlays env values on top of file values. Fields the environment
// left at their defaults are the same values envconfig filled in, so the env
// layer simply wins whenever it is non-empty.
func merge(file, env Config) Config {
	out := env
	if file.Logging.Level != "" && !envSet("LOGGING_LEVEL") {
		out.Logging.Level = file.Logging.Level
	}
	if file.Logging.Output != "" && !envSet("LOGGING_OUTPUT") {
		out.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" && !envSet("LOGGING_FILE_PATH") {
		out.Logging.FilePath = file.Logging.FilePath
	}
	if file.Paths.DataDir != "" && !envSet("PATHS_DATA_DIR") {
		out.Paths.DataDir = file.Paths.DataDir
	}
	if file.Paths.CacheDir != "" && !envSet("PATHS_CACHE_DIR") {
		out.Paths.CacheDir = file.Paths.CacheDir
	}
	if file.Paths.ReportsDir != "" && !envSet("PATHS_REPORTS_DIR") {
		out.Paths.ReportsDir = file.Paths.ReportsDir
	}
	if file.Paths.LogsDir != "" && !envSet("PATHS_LOGS_DIR") {
		out.Paths.LogsDir = file.Paths.LogsDir
	}
	return out
}

func envSet(suffix string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + suffix)
	return ok
}

func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output %q", c.Logging.Output)
	}
	return nil
}

// EnsureDirectories creates every configured directory.
func (p PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.CacheDir, p.ReportsDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// CachePath returns the cache location for a downloaded source file.
func (p PathsConfig) CachePath(filename string) string {
	return filepath.Join(p.CacheDir, filename)
}

// ReportPath returns the output location for a snapshot file.
func (p PathsConfig) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// LogPath returns the location for a log file.
func (p PathsConfig) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
