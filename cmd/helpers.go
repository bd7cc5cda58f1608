package cmd

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/ziadkadry99/learnhub/internal/config"
	"github.com/ziadkadry99/learnhub/internal/remote"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `learnhub init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newClient creates the upstream client from config.
func newClient(cfg *config.Config) *remote.Client {
	return remote.NewClient(remote.Endpoints{
		Auth:    cfg.Auth.BaseURL,
		Catalog: cfg.Upstreams.CatalogURL,
		Todos:   cfg.Upstreams.TodosURL,
		Profile: cfg.Upstreams.ProfileURL,
		Echo:    cfg.Upstreams.EchoURL,
	}, cfg.Auth.APIKey, cfg.HTTPTimeout)
}

// cookieSecret returns the configured visitor-cookie secret, or a random
// one that lasts until the process exits.
func cookieSecret(cfg *config.Config) ([]byte, error) {
	if cfg.CookieSecret != "" {
		return []byte(cfg.CookieSecret), nil
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generating cookie secret: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Warning: cookie_secret is not set; visitors will be forgotten on restart.")
	return secret, nil
}
