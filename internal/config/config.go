// Package config loads the gateway configuration from an optional YAML file
// layered under LEGIS_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Storage   StorageConfig   `koanf:"storage"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type UpstreamConfig struct {
	// APIKey is the static credential forwarded on every upstream call.
	APIKey string `koanf:"apikey"`

	// BaseURL is the upstream API base path.
	BaseURL string `koanf:"baseurl"`

	// TimeoutSeconds is the fixed per-call deadline.
	TimeoutSeconds int `koanf:"timeoutseconds"`
}

type RateLimitConfig struct {
	// MaxRequests is the number of calls admitted per window.
	MaxRequests int `koanf:"maxrequests"`

	// WindowHours is the rolling window length.
	WindowHours int `koanf:"windowhours"`

	// RetryBackoff is accepted for compatibility with existing deployments
	// but no backoff is implemented; throttled calls fail immediately.
	RetryBackoff bool `koanf:"retrybackoff"`
}

type StorageConfig struct {
	// Type selects the admission store: memory or redis.
	Type  string      `koanf:"type"`
	Redis RedisConfig `koanf:"redis"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Timeout returns the per-call deadline as a duration.
func (c UpstreamConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Window returns the admission window as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowHours) * time.Hour
}

// Load reads configuration. A YAML file at path is optional; environment
// variables with the LEGIS_ prefix override it (LEGIS_UPSTREAM_APIKEY maps
// to upstream.apikey, and so on).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Defaults
	k.Set("server.port", 8080)
	k.Set("upstream.baseurl", "https://api.congress.gov/v3")
	k.Set("upstream.timeoutseconds", 30)
	k.Set("ratelimit.maxrequests", 5000)
	k.Set("ratelimit.windowhours", 1)
	k.Set("storage.type", "memory")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("LEGIS_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "LEGIS_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Upstream.APIKey == "" {
		return nil, fmt.Errorf("upstream api key is required (set LEGIS_UPSTREAM_APIKEY)")
	}
	if cfg.RateLimit.MaxRequests <= 0 || cfg.RateLimit.WindowHours <= 0 {
		return nil, fmt.Errorf("rate limit budget must have positive values")
	}
	if cfg.Storage.Type != "memory" && cfg.Storage.Type != "redis" {
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}

	return &cfg, nil
}
