package config

import (
	"errors"
	"fmt"
	"strings"
)

// DevStore selects the backing store of the development users API.
type DevStore string

const (
	DevStoreMemory DevStore = "memory"
	DevStoreRedis  DevStore = "redis"
)

// DevAPIConfig configures the development users API server.
type DevAPIConfig struct {
	Addr  string   `env:"ADDR"  envDefault:":8055"`
	Store DevStore `env:"STORE" envDefault:"memory"`

	// Tokens maps bearer tokens to user ids, e.g. "tok-a=<uuid>;tok-s=share:abc".
	// A value prefixed with "share:" is answered as a share session.
	Tokens map[string]string `env:"TOKENS" envSeparator:";" envKeyValSeparator:"="`

	// ShareRoleID is the role id reported for share sessions.
	ShareRoleID string `env:"SHARE_ROLE_ID"`

	// Seed inserts demo users on startup.
	Seed bool `env:"SEED" envDefault:"true"`

	// KeyPrefix namespaces profiles in Redis.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"usersession:profile:"`
}

// Sanitize normalises the store name and drops blank token entries.
func (c *DevAPIConfig) Sanitize() {
	c.Addr = strings.TrimSpace(c.Addr)
	c.Store = DevStore(strings.ToLower(strings.TrimSpace(string(c.Store))))
	if c.Store == "" {
		c.Store = DevStoreMemory
	}
	c.ShareRoleID = strings.TrimSpace(c.ShareRoleID)
	c.KeyPrefix = strings.TrimSpace(c.KeyPrefix)

	clean := make(map[string]string, len(c.Tokens))
	for k, v := range c.Tokens {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		clean[k] = v
	}
	c.Tokens = clean
}

// Validate reports settings the server cannot start with.
func (c *DevAPIConfig) Validate() error {
	switch c.Store {
	case DevStoreMemory, DevStoreRedis:
	default:
		return fmt.Errorf("unsupported DEV_API_STORE %q (want memory or redis)", c.Store)
	}
	if c.Addr == "" {
		return errors.New("DEV_API_ADDR is required")
	}
	return nil
}
