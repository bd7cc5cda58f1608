package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to learnhub! Let's configure the portal.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port to listen on",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory for the visitor database",
		Default: cfg.DataDir,
	}
	cfg.DataDir, err = dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 3. Upstream preset.
	presetPrompt := promptui.Select{
		Label: "Select upstream APIs",
		Items: []string{
			"public: reqres.in, fakestoreapi.com, jsonplaceholder, randomuser.me",
			"custom: enter each base URL",
		},
	}
	presetIdx, _, err := presetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("upstream selection: %w", err)
	}
	if presetIdx == 1 {
		fields := []struct {
			label string
			dst   *string
		}{
			{"Auth base URL", &cfg.Auth.BaseURL},
			{"Catalog base URL", &cfg.Upstreams.CatalogURL},
			{"Todos base URL", &cfg.Upstreams.TodosURL},
			{"Profile base URL", &cfg.Upstreams.ProfileURL},
			{"Echo base URL", &cfg.Upstreams.EchoURL},
		}
		for _, f := range fields {
			p := promptui.Prompt{Label: f.label, Default: *f.dst}
			v, err := p.Run()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.label, err)
			}
			*f.dst = v
		}
	}

	// 4. Auth API key (reqres.in requires one for unauthenticated clients).
	keyPrompt := promptui.Prompt{
		Label:   "Auth API key (leave blank for none)",
		Default: "",
		Mask:    '*',
	}
	cfg.Auth.APIKey, err = keyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("api key: %w", err)
	}

	// 5. Signup behaviour.
	signupPrompt := promptui.Select{
		Label: "After a successful signup",
		Items: []string{"sign the visitor in", "ask the visitor to sign in"},
	}
	signupIdx, _, err := signupPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("signup behaviour: %w", err)
	}
	cfg.Auth.SignupAutoLogin = signupIdx == 0

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Println("Set cookie_secret (or LEARNHUB_COOKIE_SECRET) before running in production.")
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 0 || n > 65535 {
		return fmt.Errorf("port must be between 0 and 65535")
	}
	return nil
}
