package config

import (
	"strings"
	"time"
)

const defaultAPITimeout = 10 * time.Second

// APIConfig configures the users API client.
type APIConfig struct {
	BaseURL   string        `env:"BASE_URL"   envDefault:"http://localhost:8055"`
	Token     string        `env:"TOKEN"`
	Timeout   time.Duration `env:"TIMEOUT"    envDefault:"10s"`
	UserAgent string        `env:"USER_AGENT" envDefault:"mmk-usersession"`
}

// Sanitize trims values and restores a usable timeout.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.Token = strings.TrimSpace(c.Token)
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	if c.Timeout <= 0 {
		c.Timeout = defaultAPITimeout
	}
}
