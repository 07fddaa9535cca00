// Package config loads server settings from defaults, an optional TOML file
// and environment variables, in that order of precedence (env wins).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Maps    MapsConfig    `toml:"maps"`
	Cache   CacheConfig   `toml:"cache"`
	Share   ShareConfig   `toml:"share"`
}

type ServerConfig struct {
	Port       int    `toml:"port"`
	StaticPath string `toml:"static_path"`
}

type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// MapsConfig configures Google Maps. Distance lookup is disabled when APIKey is empty.
type MapsConfig struct {
	APIKey   string `toml:"api_key"`
	Language string `toml:"language"`
	Region   string `toml:"region"`
}

// CacheConfig configures the Redis distance cache. Caching is disabled when RedisAddr is empty.
type CacheConfig struct {
	RedisAddr string `toml:"redis_addr"`
	TTL       string `toml:"ttl"`
}

type ShareConfig struct {
	// Secret signs share tokens. When empty the server generates one at startup.
	Secret        string `toml:"secret"`
	TokenDuration string `toml:"token_duration"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:       8080,
			StaticPath: "./static",
		},
		Storage: StorageConfig{DBPath: "./data/rides.db"},
		Log:     LogConfig{Level: "info"},
		Maps: MapsConfig{
			Language: "pt-BR",
			Region:   "br",
		},
		Cache: CacheConfig{TTL: "720h"},
		Share: ShareConfig{TokenDuration: "2160h"},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	setString(&c.Server.StaticPath, "STATIC_PATH")
	setString(&c.Storage.DBPath, "DB_PATH")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Maps.APIKey, "GOOGLE_MAPS_API_KEY")
	setString(&c.Cache.RedisAddr, "REDIS_ADDR")
	setString(&c.Share.Secret, "SHARE_SECRET")
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks ranges and duration syntax.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache ttl %q: %w", c.Cache.TTL, err)
	}
	if _, err := time.ParseDuration(c.Share.TokenDuration); err != nil {
		return fmt.Errorf("invalid share token_duration %q: %w", c.Share.TokenDuration, err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// CacheTTL returns the parsed cache TTL. Call Validate first.
func (c Config) CacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}

// ShareTokenDuration returns the parsed share token lifetime. Zero means tokens never expire.
func (c Config) ShareTokenDuration() time.Duration {
	d, _ := time.ParseDuration(c.Share.TokenDuration)
	return d
}
