package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/rijksuitgaven/roadmap/internal/source"
)

// EnvPrefix is prepended to every key when read from the environment
// (ROADMAP_PORT, ROADMAP_VERSIONING_PATH, ...).
const EnvPrefix = "ROADMAP"

// Config holds runtime configuration for the server and CLI.
// Values are populated from an optional config file, ROADMAP_* env vars and
// CLI flags bound into viper.
type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// Auth
	APIKey string `mapstructure:"api_key"`

	// Source documents: either both paths or both URLs.
	VersioningPath string `mapstructure:"versioning_path"`
	BacklogPath    string `mapstructure:"backlog_path"`
	VersioningURL  string `mapstructure:"versioning_url"`
	BacklogURL     string `mapstructure:"backlog_url"`
	SourceToken    string `mapstructure:"source_token"`

	// Compiled roadmap cache
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// Recompile when the source files change. Paths only.
	Watch bool `mapstructure:"watch"`

	// TOML overlay with track names and descriptions.
	TracksFile string `mapstructure:"tracks_file"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("port", "8090")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("api_key", "")
	viper.SetDefault("versioning_path", "")
	viper.SetDefault("backlog_path", "")
	viper.SetDefault("versioning_url", "")
	viper.SetDefault("backlog_url", "")
	viper.SetDefault("source_token", "")
	viper.SetDefault("cache_ttl", 10*time.Minute)
	viper.SetDefault("watch", false)
	viper.SetDefault("tracks_file", "")

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return cfg, nil
}

// Validate checks what the HTTP server needs.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("ROADMAP_API_KEY is required")
	}
	return c.ValidateSources()
}

// ValidateSources checks that both documents can be located.
func (c Config) ValidateSources() error {
	paths := c.VersioningPath != "" && c.BacklogPath != ""
	urls := c.VersioningURL != "" && c.BacklogURL != ""
	switch {
	case !paths && !urls:
		return errors.New("versioning and backlog sources are required: set both paths or both URLs")
	case c.Watch && !paths:
		return errors.New("watch needs versioning_path and backlog_path")
	}
	return nil
}

// Loader returns the document loader the configuration selects. Paths win
// over URLs.
func (c Config) Loader() (source.Loader, error) {
	if err := c.ValidateSources(); err != nil {
		return nil, err
	}
	if c.VersioningPath != "" && c.BacklogPath != "" {
		return source.NewFileLoader(c.VersioningPath, c.BacklogPath), nil
	}
	return source.NewHTTPLoader(c.VersioningURL, c.BacklogURL, c.SourceToken), nil
}

// WatchFiles returns the files to watch, or nil when watching is off.
func (c Config) WatchFiles() []string {
	if !c.Watch {
		return nil
	}
	return []string{c.VersioningPath, c.BacklogPath}
}
