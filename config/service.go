package config

import (
	"fmt"
	"time"

	"github.com/tmm22/speechkit/logger"
	"github.com/tmm22/speechkit/server"
	"github.com/tmm22/speechkit/util"
	"github.com/tmm22/speechkit/validation"
)

// ProviderConfig holds per-provider overrides. Zero values fall back to
// each adapter's hosted defaults.
type ProviderConfig struct {
	// BaseURL overrides the provider's endpoint. Required only for the
	// openai-compatible provider, which has no hosted default.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" json:"base_url" validate:"omitempty,url"`
	// Timeout overrides the per-request HTTP timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" json:"timeout"`
	// APIKeyEnv overrides the environment variable holding the secret.
	APIKeyEnv string `yaml:"api_key_env" mapstructure:"api_key_env" json:"api_key_env"`
}

// Config is the speechkitd service configuration.
type Config struct {
	Name        string        `yaml:"name" mapstructure:"name" json:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment" json:"environment" validate:"omitempty,oneof=development staging production"`
	Debug       bool          `yaml:"debug" mapstructure:"debug" json:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging" json:"logging"`

	Server server.Config `yaml:"server" mapstructure:"server" json:"server"`

	// Language is the default preference: "auto" or an ISO-like code.
	Language string `yaml:"language" mapstructure:"language" json:"language"`
	// DictionaryPath points at the custom vocabulary JSON file.
	DictionaryPath string `yaml:"dictionary_path" mapstructure:"dictionary_path" json:"dictionary_path"`

	// Providers holds per-provider overrides keyed by provider tag.
	Providers map[string]ProviderConfig `yaml:"providers" mapstructure:"providers" json:"providers"`
}

// ApplyDefaults fills zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.Name = util.Coalesce(c.Name, "speechkitd")
	c.Environment = util.Coalesce(c.Environment, "development")
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Language = util.Coalesce(c.Language, "auto")
	c.Server.ApplyDefaults()
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration, including struct tags.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	for tag, pc := range c.Providers {
		if err := validation.Validate(pc); err != nil {
			return fmt.Errorf("config.providers.%s: %w", tag, err)
		}
	}
	return nil
}

// Endpoints returns the configured base URL overrides keyed by tag.
func (c *Config) Endpoints() map[string]string {
	out := make(map[string]string)
	for tag, pc := range c.Providers {
		if pc.BaseURL != "" {
			out[tag] = pc.BaseURL
		}
	}
	return out
}

// Timeouts returns the configured timeout overrides keyed by tag.
func (c *Config) Timeouts() map[string]time.Duration {
	out := make(map[string]time.Duration)
	for tag, pc := range c.Providers {
		if pc.Timeout > 0 {
			out[tag] = pc.Timeout
		}
	}
	return out
}

// CredentialEnvOverrides returns the env var name overrides keyed by tag.
func (c *Config) CredentialEnvOverrides() map[string]string {
	out := make(map[string]string)
	for tag, pc := range c.Providers {
		if pc.APIKeyEnv != "" {
			out[tag] = pc.APIKeyEnv
		}
	}
	return out
}
