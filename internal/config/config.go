// Package config loads application configuration from file and
// environment variables via viper.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Data      DataConfig      `mapstructure:"data"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// StoreConfig holds the parsed-dictionary/template cache configuration.
type StoreConfig struct {
	Path         string `mapstructure:"path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// RateLimitConfig holds rate limiting configuration for the REST surface.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// DataConfig names the on-disk source directories the host's loaders
// (internal/sourcedata) read from: raw rhyme-dictionary and cipai
// template files, parsed at startup or by the cipaictl load command.
type DataConfig struct {
	RhymeDir string `mapstructure:"rhyme_dir"`
	CipaiDir string `mapstructure:"cipai_dir"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyConnectionPoolDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("store.path", "data/cipai.db")
	v.SetDefault("store.max_open_conns", 0)
	v.SetDefault("store.max_idle_conns", 0)
	v.SetDefault("data.rhyme_dir", "data/rhyme")
	v.SetDefault("data.cipai_dir", "data/cipai")
}

func bindEnvVars(v *viper.Viper) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			v.Set("server.port", p)
		}
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		v.Set("server.mode", mode)
	}

	if enabled := os.Getenv("RATE_LIMIT_ENABLED"); enabled != "" {
		v.Set("rate_limit.enabled", enabled == "true")
	}
	if rps := os.Getenv("RATE_LIMIT_RPS"); rps != "" {
		if r, err := strconv.ParseFloat(rps, 64); err == nil {
			v.Set("rate_limit.requests_per_second", r)
		}
	}
	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		if b, err := strconv.Atoi(burst); err == nil {
			v.Set("rate_limit.burst", b)
		}
	}

	if path := os.Getenv("STORE_PATH"); path != "" {
		v.Set("store.path", path)
	}
	if rhymeDir := os.Getenv("RHYME_DIR"); rhymeDir != "" {
		v.Set("data.rhyme_dir", rhymeDir)
	}
	if cipaiDir := os.Getenv("CIPAI_DIR"); cipaiDir != "" {
		v.Set("data.cipai_dir", cipaiDir)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" && c.Server.Mode != "test" {
		return fmt.Errorf("invalid server mode: %s (must be 'debug', 'release', or 'test')", c.Server.Mode)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store path cannot be empty")
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit requests_per_second must be positive")
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}
	return nil
}

// applyConnectionPoolDefaults sets intelligent defaults for the store's
// connection pool based on CPU cores.
func (c *Config) applyConnectionPoolDefaults() {
	numCPU := runtime.NumCPU()

	if c.Store.MaxOpenConns <= 0 {
		if numCPU > 4 {
			c.Store.MaxOpenConns = min(numCPU, 50)
		} else {
			c.Store.MaxOpenConns = min(numCPU*2, 50)
		}
	}

	if c.Store.MaxIdleConns <= 0 {
		c.Store.MaxIdleConns = max(c.Store.MaxOpenConns/2, 1)
	}
}
