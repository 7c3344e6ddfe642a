// Package config loads gateway configuration from an optional YAML file and
// CAPGATE_-prefixed environment variables, env taking precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Backend BackendConfig `koanf:"backend"`
	Storage StorageConfig `koanf:"storage"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type BackendConfig struct {
	// BaseURL is the orchestration backend root, e.g. https://orch.internal.
	BaseURL string `koanf:"base_url"`
	// Timeout bounds each outbound call. There is no retry.
	Timeout time.Duration `koanf:"timeout"`
}

type StorageConfig struct {
	// Path enables the SQLite access store when non-empty.
	Path string `koanf:"path"`
}

// Load reads configuration. path names an optional YAML file; pass "" to use
// environment variables only. Env vars use double underscores as section
// separators: CAPGATE_BACKEND__BASE_URL sets backend.base_url.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("CAPGATE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "CAPGATE_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("backend.timeout") {
		k.Set("backend.timeout", "30s")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url is required")
	}
	cfg.Backend.BaseURL = strings.TrimSuffix(cfg.Backend.BaseURL, "/")

	return &cfg, nil
}
