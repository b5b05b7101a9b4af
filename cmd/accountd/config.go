package main

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"

	accounts "github.com/accountkit/go-accounts"
)

// AppConfig is populated from the environment. It satisfies the
// accounts.Config contract consumed by the service wiring.
type AppConfig struct {
	SigningKey      string        `env:"ACCOUNTS_SIGNING_KEY"`
	TokenExpiration time.Duration `env:"ACCOUNTS_TOKEN_EXPIRATION" envDefault:"1h"`
	ContextKey      string        `env:"ACCOUNTS_CONTEXT_KEY" envDefault:"session"`
	AuthScheme      string        `env:"ACCOUNTS_AUTH_SCHEME" envDefault:"Bearer"`
	HTTPAddr        string        `env:"ACCOUNTS_HTTP_ADDR" envDefault:":3000"`
	DatabaseDSN     string        `env:"ACCOUNTS_DATABASE_DSN" envDefault:"file:accounts.db?cache=shared&_pragma=foreign_keys(1)"`
	Debug           bool          `env:"ACCOUNTS_DEBUG" envDefault:"false"`
}

var _ accounts.Config = (*AppConfig)(nil)

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse environment configuration")
	}

	if cfg.SigningKey == "" {
		return nil, errors.New("ACCOUNTS_SIGNING_KEY is required", errors.CategoryBadInput)
	}

	return cfg, nil
}

func (c *AppConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *AppConfig) GetTokenExpiration() time.Duration {
	return c.TokenExpiration
}

func (c *AppConfig) GetContextKey() string {
	return c.ContextKey
}

func (c *AppConfig) GetAuthScheme() string {
	return c.AuthScheme
}

func (c *AppConfig) GetHTTPAddr() string {
	return c.HTTPAddr
}

func (c *AppConfig) GetDatabaseDSN() string {
	return c.DatabaseDSN
}
