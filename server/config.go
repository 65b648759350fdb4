package server

import (
	"fmt"
	"time"

	"github.com/tmm22/speechkit/util"
)

// Config holds HTTP server configuration.
type Config struct {
	Addr         string        `yaml:"addr" mapstructure:"addr" json:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" json:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout" json:"idle_timeout"`
	// MaxBodySize caps the size of an uploaded audio file, e.g. "100MB".
	MaxBodySize string `yaml:"max_body_size" mapstructure:"max_body_size" json:"max_body_size"`
}

const defaultMaxBodyBytes = 100 << 20

// MaxBodyBytes returns the configured upload cap in bytes.
func (c *Config) MaxBodyBytes() int64 {
	return util.ParseSize(c.MaxBodySize, defaultMaxBodyBytes)
}

// ApplyDefaults sets sensible default values for unset fields. The write
// timeout is generous because job-polling providers can hold a request
// open for minutes.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 5 * time.Minute
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "100MB"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be non-negative (got: %s)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must be non-negative (got: %s)", c.WriteTimeout)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be non-negative (got: %s)", c.IdleTimeout)
	}
	return nil
}
