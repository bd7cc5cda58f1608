package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Limits.Courses != 9 {
		t.Errorf("expected default course limit 9, got %d", cfg.Limits.Courses)
	}
	if cfg.Limits.Assignments != 12 {
		t.Errorf("expected default assignment limit 12, got %d", cfg.Limits.Assignments)
	}
	if cfg.SkeletonCount != 6 {
		t.Errorf("expected default skeleton_count 6, got %d", cfg.SkeletonCount)
	}
	if !cfg.Auth.SignupAutoLogin {
		t.Error("expected signup_auto_login to default to true")
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("expected no http timeout by default, got %s", cfg.HTTPTimeout)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.learnhub.yml")

	original := DefaultConfig()
	original.Port = 9191
	original.DataDir = "var/learnhub"
	original.Auth.APIKey = "reqres-free-v1"
	original.Auth.SignupAutoLogin = false
	original.Upstreams.CatalogURL = "http://catalog.internal"
	original.Limits.Courses = 3
	original.HTTPTimeout = 15 * time.Second

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if loaded.Auth.APIKey != original.Auth.APIKey {
		t.Errorf("auth.api_key: got %q, want %q", loaded.Auth.APIKey, original.Auth.APIKey)
	}
	if loaded.Auth.SignupAutoLogin {
		t.Error("auth.signup_auto_login: got true, want false")
	}
	if loaded.Upstreams.CatalogURL != original.Upstreams.CatalogURL {
		t.Errorf("catalog_url: got %q, want %q", loaded.Upstreams.CatalogURL, original.Upstreams.CatalogURL)
	}
	if loaded.Limits.Courses != 3 {
		t.Errorf("limits.courses: got %d, want 3", loaded.Limits.Courses)
	}
	if loaded.HTTPTimeout != original.HTTPTimeout {
		t.Errorf("http_timeout: got %s, want %s", loaded.HTTPTimeout, original.HTTPTimeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Auth.BaseURL != "https://reqres.in" {
		t.Errorf("expected default auth base url, got %q", cfg.Auth.BaseURL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("LEARNHUB_PORT", "7070")
	t.Setenv("LEARNHUB_AUTH__API_KEY", "from-env")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 7070 {
		t.Errorf("env override failed: got %d, want 7070", loaded.Port)
	}
	if loaded.Auth.APIKey != "from-env" {
		t.Errorf("nested env override failed: got %q, want %q", loaded.Auth.APIKey, "from-env")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"negative timeout", func(c *Config) { c.HTTPTimeout = -time.Second }},
		{"negative skeletons", func(c *Config) { c.SkeletonCount = -2 }},
		{"zero course limit", func(c *Config) { c.Limits.Courses = 0 }},
		{"zero assignment limit", func(c *Config) { c.Limits.Assignments = 0 }},
		{"empty auth url", func(c *Config) { c.Auth.BaseURL = "" }},
		{"relative catalog url", func(c *Config) { c.Upstreams.CatalogURL = "/products" }},
		{"schemeless profile url", func(c *Config) { c.Upstreams.ProfileURL = "randomuser.me" }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"8080", false},
		{"0", false},
		{"65535", false},
		{"65536", true},
		{"-1", true},
		{"http", true},
	}
	for _, tt := range tests {
		err := validatePort(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("validatePort(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestSaveRestrictsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.yml")
	cfg := DefaultConfig()
	cfg.CookieSecret = "s3cr3t"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Errorf("config file mode = %o, want no group/other access", perm)
	}
}
