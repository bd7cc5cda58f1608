package config

// DefaultFile is the config file read when --config is not given.
const DefaultFile = ".learnhub.yml"

// DefaultConfig returns a Config pointing at the public demo APIs.
func DefaultConfig() *Config {
	return &Config{
		Port:          8080,
		DataDir:       "data",
		SkeletonCount: 6,
		Auth: AuthConfig{
			BaseURL:         "https://reqres.in",
			SignupAutoLogin: true,
		},
		Upstreams: UpstreamConfig{
			CatalogURL: "https://fakestoreapi.com",
			TodosURL:   "https://jsonplaceholder.typicode.com",
			ProfileURL: "https://randomuser.me",
			EchoURL:    "https://jsonplaceholder.typicode.com",
		},
		Limits: LimitConfig{
			Courses:     9,
			Assignments: 12,
		},
	}
}
