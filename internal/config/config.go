// Package config loads server and CLI settings from WOC_ environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/olgasafonova/whatsonchain-mcp-server/internal/logging"
	"github.com/olgasafonova/whatsonchain-mcp-server/woc"
)

// Prefix is prepended to every variable name, e.g. WOC_API_KEY
const Prefix = "WOC"

// Config holds settings read from the environment
type Config struct {
	// Client
	Network     string        `envconfig:"NETWORK" default:"main"`
	APIKey      string        `envconfig:"API_KEY"`
	UserAgent   string        `envconfig:"USER_AGENT"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"30s"`
	EnableCache bool          `envconfig:"ENABLE_CACHE" default:"true"`
	Profile     string        `envconfig:"PROFILE" default:"current"`

	// Logging
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile       string `envconfig:"LOG_FILE"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`

	// HTTP transport
	HTTPAddr    string `envconfig:"HTTP_ADDR"`
	AuthToken   string `envconfig:"AUTH_TOKEN"`
	RateLimit   int    `envconfig:"RATE_LIMIT" default:"60"`
	MaxBodySize int64  `envconfig:"MAX_BODY_SIZE" default:"1048576"`
}

// Load reads the WOC_ variables and validates the result
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can run with
func (c *Config) Validate() error {
	if _, err := woc.ParseProfile(c.Profile); err != nil {
		return fmt.Errorf("WOC_PROFILE: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("WOC_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("WOC_RATE_LIMIT must not be negative, got %d", c.RateLimit)
	}
	if c.MaxBodySize <= 0 {
		return fmt.Errorf("WOC_MAX_BODY_SIZE must be positive, got %d", c.MaxBodySize)
	}
	return nil
}

// ClientConfig converts the client settings. Unknown network aliases are
// kept as-is and resolve to stn, matching woc.ParseNetwork.
func (c *Config) ClientConfig() woc.Config {
	profile, err := woc.ParseProfile(c.Profile)
	if err != nil {
		profile = woc.ProfileCurrent
	}
	return woc.Config{
		Network:     woc.ParseNetwork(c.Network),
		Timeout:     c.Timeout,
		UserAgent:   c.UserAgent,
		APIKey:      c.APIKey,
		EnableCache: c.EnableCache,
		Profile:     profile,
	}
}

// LoggingConfig converts the logging settings
func (c *Config) LoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.LogLevel
	lc.FilePath = c.LogFile
	if c.LogMaxSizeMB > 0 {
		lc.MaxSizeMB = c.LogMaxSizeMB
	}
	if c.LogMaxBackups > 0 {
		lc.MaxBackups = c.LogMaxBackups
	}
	return lc
}

// HTTPMode reports whether the server should listen on HTTP instead of stdio
func (c *Config) HTTPMode() bool {
	return c.HTTPAddr != ""
}
