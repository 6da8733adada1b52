// Package config loads arbor's TOML configuration. Everything a command
// needs travels in an explicit Config value; there is no process-wide
// default server connection.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arborlabs/arbor/pkg/cache"
)

// DefaultSomaRadius is the node radius in nm above which a node is
// treated as a soma candidate.
const DefaultSomaRadius = 1000.0

// Config is the full configuration for one invocation.
type Config struct {
	Server Server `toml:"server"`
	Cache  Cache  `toml:"cache"`
	Morpho Morpho `toml:"morpho"`
}

// Server describes the CATMAID instance to fetch from.
type Server struct {
	// URL is the server base URL, e.g. https://catmaid.example.org.
	URL string `toml:"url"`
	// Token is the CATMAID API token. Takes precedence over basic auth.
	Token string `toml:"token"`
	// User and Password enable HTTP basic auth.
	User     string `toml:"user"`
	Password string `toml:"password"`
	// Project is the CATMAID project id.
	Project int64 `toml:"project"`
}

// Cache selects the response cache backend.
type Cache struct {
	// Backend is one of none, file, redis. Empty means none.
	Backend cache.Backend `toml:"backend"`
	// Dir is the cache directory for the file backend. Empty means
	// ~/.config/arbor/cache.
	Dir string `toml:"dir"`
	// Addr is the redis address (host:port) for the redis backend.
	Addr string `toml:"addr"`
	// TTL is the entry lifetime. Zero means entries never expire.
	TTL duration `toml:"ttl"`
}

// Morpho holds tunables for morphology operations.
type Morpho struct {
	// SomaRadius is the radius threshold in nm for soma detection.
	// Zero means DefaultSomaRadius.
	SomaRadius float64 `toml:"soma_radius"`
}

// duration lets TOML carry values like "12h" or "30m".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// CacheTTL returns the configured entry lifetime as a time.Duration.
func (c Cache) CacheTTL() time.Duration { return time.Duration(c.TTL) }

// SomaRadius returns the configured threshold, falling back to the
// default when unset.
func (m Morpho) Radius() float64 {
	if m.SomaRadius > 0 {
		return m.SomaRadius
	}
	return DefaultSomaRadius
}

// DefaultPath returns the standard config location,
// ~/.config/arbor/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "arbor", "config.toml"), nil
}

// Load reads the config file at path. An empty path means DefaultPath,
// and a missing file at the default location yields the zero Config
// rather than an error, so the CLI works without any setup.
func Load(path string) (Config, error) {
	var cfg Config

	fallback := path == ""
	if fallback {
		var err error
		if path, err = DefaultPath(); err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && fallback {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// OpenCache constructs the configured cache backend.
func (c Cache) Open() (cache.Cache, error) {
	switch c.Backend {
	case cache.BackendFile:
		dir := c.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("get home dir: %w", err)
			}
			dir = filepath.Join(home, ".config", "arbor", "cache")
		}
		return cache.Open(cache.BackendFile, dir)
	case cache.BackendRedis:
		return cache.Open(cache.BackendRedis, c.Addr)
	default:
		return cache.Open(c.Backend, "")
	}
}
