// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"strings"

	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SHIPPING_"

// Config holds the runtime knobs of the shipping binary.
type Config struct {
	// HTTPAddr is the listen address of the HTTP server.
	HTTPAddr string `koanf:"http_addr"`
	// ZipkinURL is the zipkin collector endpoint; tracing is disabled when
	// empty.
	ZipkinURL string `koanf:"zipkin_url"`
}

// Load reads configuration from SHIPPING_* environment variables, e.g.
// SHIPPING_HTTP_ADDR and SHIPPING_ZIPKIN_URL.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := Config{
		HTTPAddr: ":8080",
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}
