package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"storefront/pkg/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is the single operator account, configured rather than stored.
type Credentials struct {
	Username     string
	PasswordHash string
}

func CredentialsFromConfig(cfg utils.AuthConfig) Credentials {
	return Credentials{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash}
}

// Enabled is false when no password hash is configured; login is then refused.
func (c Credentials) Enabled() bool {
	return c.Username != "" && c.PasswordHash != ""
}

func (c Credentials) Verify(username, password string) error {
	if !c.Enabled() {
		return ErrInvalidCredentials
	}
	username = strings.TrimSpace(username)
	if subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) != 1 {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a value for auth.admin_password_hash.
func HashPassword(password string) (string, error) {
	if len(password) < 8 || len(password) > 72 {
		return "", errors.New("password must be 8-72 chars")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
