package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	CorsConfig
	StorageConfig
	OAuthConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type OAuthConfig interface {
	GetOAuthConfigFile() string
	GetClientCredentials() string
	GetSweepInterval() time.Duration
}

type mainConfig struct {
	*EnvVars
	Cors
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv parses and validates the process environment without touching .env.
func FromEnv() (Config, error) {
	vars := &EnvVars{}
	if err := env.Parse(vars); err != nil {
		return nil, fmt.Errorf("[config.Load] parsing environment: %w", err)
	}
	if err := vars.validate(); err != nil {
		return nil, fmt.Errorf("[config.Load] %w", err)
	}
	return mainConfig{
		EnvVars: vars,
		Cors:    NewCors(vars.AllowedOrigins),
	}, nil
}
