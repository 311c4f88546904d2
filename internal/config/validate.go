package config

import (
	"errors"
	"fmt"
)

// Validate checks cross-field constraints that tags cannot express.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return errors.New("auth.jwt_secret must be at least 32 characters")
	}
	if len(c.Blob.SigningSecret) < 32 {
		return errors.New("blob.signing_secret must be at least 32 characters")
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost out of range: %d", c.Auth.PasswordHashCost)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Blob.GrantTTL <= 0 {
		return errors.New("blob.grant_ttl must be positive")
	}
	if c.Cache.MaxAge <= 0 || c.Cache.GCInterval <= 0 {
		return errors.New("cache.max_age and cache.gc_interval must be positive")
	}
	return nil
}
