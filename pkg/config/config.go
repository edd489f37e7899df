// Package config loads the bandslicer TOML configuration file.
//
// The file is optional. Its default location is
// $XDG_CONFIG_HOME/bandslicer/config.toml (~/.config/bandslicer/config.toml
// when XDG_CONFIG_HOME is unset):
//
//	[slice]
//	direction = [0.0, 0.0, 1.0]
//	prefix = "slice"
//
//	[cache]
//	backend = "file"          # file, redis or none
//	dir = "/var/cache/bandslicer"
//	redis_addr = "localhost:6379"
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override values from the file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bandslicer/pkg/errors"
)

const appName = "bandslicer"

// Cache backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Slice  SliceConfig  `toml:"slice"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// SliceConfig holds defaults for slicing runs.
type SliceConfig struct {
	Direction []float64 `toml:"direction"`
	Prefix    string    `toml:"prefix"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	TTL       string `toml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Slice:  SliceConfig{Direction: []float64{0, 0, 1}, Prefix: "slice"},
		Cache:  CacheConfig{Backend: BackendFile, RedisAddr: "localhost:6379", TTL: "168h"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the XDG cache directory for file caches.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the config file at path over the defaults. An empty path means
// [DefaultPath], and a missing default file is not an error; a missing
// explicit path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return Default(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that TOML decoding cannot.
func (c *Config) Validate() error {
	if len(c.Slice.Direction) != 3 {
		return errors.New(errors.ErrCodeInvalidDirection, "slice.direction needs 3 components, got %d", len(c.Slice.Direction))
	}
	if err := errors.ValidateDirection([3]float64(c.Slice.Direction)); err != nil {
		return err
	}
	if err := errors.ValidatePrefix(c.Slice.Prefix); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	return nil
}

// TTLDuration parses the ttl string. An empty ttl means entries never expire.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "cache.ttl")
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return d, nil
}

// CacheDir returns the configured cache directory or the XDG default.
func (c CacheConfig) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	return DefaultCacheDir()
}
