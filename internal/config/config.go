// Package config loads burrow's TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mhollis/burrow/pkg/client"
	"github.com/mhollis/burrow/pkg/errors"
	"github.com/mhollis/burrow/pkg/transport"
)

// Config is the full application configuration.
type Config struct {
	Gopher  GopherConfig  `toml:"gopher"`
	Cache   CacheConfig   `toml:"cache"`
	Browser BrowserConfig `toml:"browser"`
}

// GopherConfig holds protocol-level settings.
type GopherConfig struct {
	// DefaultServer is the locator opened when none is given.
	DefaultServer string `toml:"default_server"`
	// TimeoutSeconds bounds each network exchange.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// UseSSL makes plain gopher:// locators connect over TLS.
	UseSSL bool `toml:"use_ssl"`
	// IPVersion is "auto", "ipv4", or "ipv6".
	IPVersion string `toml:"ip_version"`
}

// CacheConfig holds settings for the response cache.
type CacheConfig struct {
	Enabled       bool   `toml:"enabled"`
	Directory     string `toml:"directory"`
	TTLSeconds    int    `toml:"ttl_seconds"`
	MemoryEntries int    `toml:"memory_entries"`
}

// BrowserConfig holds settings for the interactive commands.
type BrowserConfig struct {
	BookmarksFile string `toml:"bookmarks_file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Gopher: GopherConfig{
			DefaultServer:  "gopher://gopher.floodgap.com",
			TimeoutSeconds: 30,
			IPVersion:      "auto",
		},
		Cache: CacheConfig{
			Enabled:       true,
			Directory:     "~/.cache/burrow",
			TTLSeconds:    3600,
			MemoryEntries: 100,
		},
		Browser: BrowserConfig{
			BookmarksFile: "~/.config/burrow/bookmarks.json",
		},
	}
}

// DefaultPath returns the standard config file location,
// ~/.config/burrow/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "burrow", "config.toml"), nil
}

// Load reads the configuration file at path, overlaying values on the
// defaults. A missing file is not an error: the defaults are returned.
// If path is empty the standard location is used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, cfg.Validate()
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for values that cannot be used.
func (c Config) Validate() error {
	if c.Gopher.TimeoutSeconds <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gopher.timeout_seconds must be positive")
	}
	if _, err := transport.ParseIPVersion(c.Gopher.IPVersion); err != nil {
		return err
	}
	if c.Cache.TTLSeconds < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl_seconds must not be negative")
	}
	if c.Cache.MemoryEntries < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.memory_entries must not be negative")
	}
	return nil
}

// ClientConfig converts the file settings into a client configuration.
func (c Config) ClientConfig() (client.Config, error) {
	ipv, err := transport.ParseIPVersion(c.Gopher.IPVersion)
	if err != nil {
		return client.Config{}, err
	}

	cc := client.Config{
		Timeout:            time.Duration(c.Gopher.TimeoutSeconds) * time.Second,
		IPVersion:          ipv,
		MemoryCacheEntries: c.Cache.MemoryEntries,
	}
	if c.Cache.Enabled {
		cc.CacheDir = ExpandPath(c.Cache.Directory)
		cc.CacheTTL = time.Duration(c.Cache.TTLSeconds) * time.Second
	}
	return cc, nil
}

// BookmarksPath returns the bookmarks file location with the tilde
// expanded.
func (c Config) BookmarksPath() string {
	return ExpandPath(c.Browser.BookmarksFile)
}

// ExpandPath expands a leading "~/" to the user's home directory. Paths
// without the prefix are returned unchanged, as is everything when the
// home directory cannot be resolved.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
