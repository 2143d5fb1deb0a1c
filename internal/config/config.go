// Package config loads the gitfolio server configuration from an optional
// TOML file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds everything the serve command needs.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `toml:"addr"`

	// GitHubToken enables the GraphQL profile path and raises REST rate
	// limits. Optional: without it only the REST path is used.
	GitHubToken string `toml:"github_token"`

	// IPHashSecret keys the HMAC used for IP deduplication. Must be at
	// least 32 characters wherever the IP-dedup layer is reachable; the
	// length is enforced at the point of first use, not here.
	IPHashSecret string `toml:"ip_hash_secret"`

	// Redis locates the durable view-count store. An empty Addr puts the
	// view counter into local mock mode.
	Redis RedisConfig `toml:"redis"`
}

// RedisConfig locates the durable key-value store.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func defaults() Config {
	return Config{
		Addr: ":8080",
	}
}

// Load reads the TOML file at path (skipped when path is empty or the file
// does not exist) and then applies environment overrides: GITFOLIO_ADDR,
// GITHUB_TOKEN, IP_HASH_SECRET, REDIS_ADDR, REDIS_PASSWORD, REDIS_DB.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Addr, "GITFOLIO_ADDR")
	setString(&cfg.GitHubToken, "GITHUB_TOKEN")
	setString(&cfg.IPHashSecret, "IP_HASH_SECRET")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
