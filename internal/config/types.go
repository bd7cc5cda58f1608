package config

import "time"

// Config is the top-level learnhub configuration, corresponding to .learnhub.yml.
type Config struct {
	Port          int            `yaml:"port" koanf:"port"`
	DataDir       string         `yaml:"data_dir" koanf:"data_dir"`
	AllowAll      bool           `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	CookieSecret  string         `yaml:"cookie_secret" koanf:"cookie_secret"`
	HTTPTimeout   time.Duration  `yaml:"http_timeout" koanf:"http_timeout"`
	SkeletonCount int            `yaml:"skeleton_count" koanf:"skeleton_count"`
	Auth          AuthConfig     `yaml:"auth" koanf:"auth"`
	Upstreams     UpstreamConfig `yaml:"upstreams" koanf:"upstreams"`
	Limits        LimitConfig    `yaml:"limits" koanf:"limits"`
}

// AuthConfig controls the login/signup collaborator.
type AuthConfig struct {
	BaseURL         string `yaml:"base_url" koanf:"base_url"`
	APIKey          string `yaml:"api_key" koanf:"api_key"`
	SignupAutoLogin bool   `yaml:"signup_auto_login" koanf:"signup_auto_login"`
}

// UpstreamConfig holds the base URLs of the demo data APIs.
type UpstreamConfig struct {
	CatalogURL string `yaml:"catalog_url" koanf:"catalog_url"`
	TodosURL   string `yaml:"todos_url" koanf:"todos_url"`
	ProfileURL string `yaml:"profile_url" koanf:"profile_url"`
	EchoURL    string `yaml:"echo_url" koanf:"echo_url"`
}

// LimitConfig holds the fixed slice sizes of each pane.
type LimitConfig struct {
	Courses     int `yaml:"courses" koanf:"courses"`
	Assignments int `yaml:"assignments" koanf:"assignments"`
}
