package server

import (
	"fmt"
	"time"
)

const (
	MaxSecretSize = 64
	MinSecretSize = 32
)

// Config configures an nmmsd daemon. It is the daemon-scoped counterpart
// to persist.Config (which covers listen address/base file/reasoner
// tuning); Config covers the HTTP/auth layer, the same split tunaq draws
// between its world config and its server Config.
type Config struct {
	// TokenSecret is the secret used for signing JWTs. Must be between
	// MinSecretSize and MaxSecretSize bytes.
	TokenSecret []byte

	// AdminUser is the single bootstrap account's username. The daemon
	// has no user registry: tell is gated on this one credential, not a
	// DAO of accounts the way tunaq's server is.
	AdminUser string

	// AdminPasswordHash is the bcrypt hash of the bootstrap account's
	// password.
	AdminPasswordHash []byte

	// UnauthDelayMillis is the additional time to wait, in milliseconds,
	// before responding to a failed authentication attempt. Set negative
	// to disable.
	UnauthDelayMillis int
}

// UnauthDelay returns the configured delay as a time.Duration.
func (cfg Config) UnauthDelay() time.Duration {
	if cfg.UnauthDelayMillis < 1 {
		var dur time.Duration
		return dur
	}
	return time.Millisecond * time.Duration(cfg.UnauthDelayMillis)
}

// FillDefaults returns a copy of cfg with unset fields given their
// defaults.
func (cfg Config) FillDefaults() Config {
	newCfg := cfg
	if newCfg.UnauthDelayMillis == 0 {
		newCfg.UnauthDelayMillis = 1000
	}
	return newCfg
}

// Validate returns an error if cfg has invalid or missing required
// fields.
func (cfg Config) Validate() error {
	if len(cfg.TokenSecret) < MinSecretSize {
		return fmt.Errorf("token secret: must be at least %d bytes, but is %d", MinSecretSize, len(cfg.TokenSecret))
	}
	if len(cfg.TokenSecret) > MaxSecretSize {
		return fmt.Errorf("token secret: must be no more than %d bytes, but is %d", MaxSecretSize, len(cfg.TokenSecret))
	}
	if cfg.AdminUser == "" {
		return fmt.Errorf("admin user: must not be empty")
	}
	if len(cfg.AdminPasswordHash) == 0 {
		return fmt.Errorf("admin password hash: must not be empty")
	}
	return nil
}
