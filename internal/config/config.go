package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LEARNHUB_*). Nested keys use a
// double underscore: LEARNHUB_AUTH__API_KEY -> auth.api_key.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("LEARNHUB_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "LEARNHUB_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must be non-negative")
	}
	if c.SkeletonCount < 0 {
		return fmt.Errorf("skeleton_count must be non-negative")
	}
	if c.Limits.Courses <= 0 {
		return fmt.Errorf("limits.courses must be positive")
	}
	if c.Limits.Assignments <= 0 {
		return fmt.Errorf("limits.assignments must be positive")
	}

	urls := map[string]string{
		"auth.base_url":         c.Auth.BaseURL,
		"upstreams.catalog_url": c.Upstreams.CatalogURL,
		"upstreams.todos_url":   c.Upstreams.TodosURL,
		"upstreams.profile_url": c.Upstreams.ProfileURL,
		"upstreams.echo_url":    c.Upstreams.EchoURL,
	}
	for name, raw := range urls {
		if raw == "" {
			return fmt.Errorf("%s is required", name)
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s %q: must be an absolute URL", name, raw)
		}
	}

	return nil
}
