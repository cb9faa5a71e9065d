// Package config loads server configuration from the environment.
package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/crawlforge/dungeon-api/internal/errors"
)

// Config holds all server settings. Every field has a sane default so
// a bare `dungeon-api server` starts against a local Redis.
type Config struct {
	// HTTPPort is the port the API listens on
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// RedisAddr is the address of the Redis instance backing all stores
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// HeroServiceURL is the base URL of the external hero service
	HeroServiceURL string `env:"HERO_SERVICE_URL" envDefault:"http://localhost:8081"`

	// EventChannel is the Redis pub/sub channel game events are published to
	EventChannel string `env:"EVENT_CHANNEL" envDefault:"game.events"`

	// CatalogPath optionally points at a YAML room-type catalog; empty
	// means the built-in defaults
	CatalogPath string `env:"CATALOG_PATH"`
}

// Load parses configuration from DUNGEON_API_-prefixed environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "DUNGEON_API_"}); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	return cfg, nil
}
