// Package config loads server configuration from the environment and an
// optional config file. Credentials are required; everything else has
// defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Zendesk ZendeskConfig `mapstructure:"zendesk"`
}

// ZendeskConfig carries the backend credentials and the fixed per-call
// timeout, supplied once at startup.
type ZendeskConfig struct {
	Subdomain string        `mapstructure:"subdomain"`
	Email     string        `mapstructure:"email"`
	APIToken  string        `mapstructure:"api_token"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from the given file (optional; pass "" to use
// environment variables only) and the ZENDESK_* environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("zendesk.timeout", 30*time.Second)

	// Same variable names the original deployment scripts export.
	v.BindEnv("zendesk.subdomain", "ZENDESK_SUBDOMAIN")
	v.BindEnv("zendesk.email", "ZENDESK_EMAIL")
	v.BindEnv("zendesk.api_token", "ZENDESK_API_KEY")
	v.BindEnv("zendesk.timeout", "ZENDESK_TIMEOUT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the credentials needed to reach Zendesk are present.
func (c *Config) Validate() error {
	if c.Zendesk.Subdomain == "" {
		return fmt.Errorf("zendesk subdomain is required (set ZENDESK_SUBDOMAIN)")
	}
	if c.Zendesk.Email == "" {
		return fmt.Errorf("zendesk account email is required (set ZENDESK_EMAIL)")
	}
	if c.Zendesk.APIToken == "" {
		return fmt.Errorf("zendesk API token is required (set ZENDESK_API_KEY)")
	}
	if c.Zendesk.Timeout <= 0 {
		return fmt.Errorf("zendesk timeout must be positive, got %s", c.Zendesk.Timeout)
	}
	return nil
}
