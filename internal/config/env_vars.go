package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverRedis  = "redis"
)

var storageDrivers = []string{DriverMemory, DriverSQLite, DriverBolt, DriverRedis}

// EnvVars is the process configuration read from the environment.
type EnvVars struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	AppName        string        `env:"APP_NAME" envDefault:"Go OAuth Tokens"`
	Env            string        `env:"ENV" envDefault:"DEV"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	StorageDriver  string        `env:"STORAGE_DRIVER" envDefault:"memory"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"./data/tokens.db"`
	BoltPath       string        `env:"BOLT_PATH" envDefault:"./data/tokens.bolt"`
	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string        `env:"REDIS_KEY_PREFIX" envDefault:"oauth:"`
	OAuthFile      string        `env:"OAUTH_CONFIG_FILE"`
	OAuthClients   string        `env:"OAUTH_CLIENTS"`
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL" envDefault:"10m"`
}

var _ EnvConfig = (*EnvVars)(nil)

func (e *EnvVars) validate() error {
	e.StorageDriver = strings.ToLower(strings.TrimSpace(e.StorageDriver))
	if !slices.Contains(storageDrivers, e.StorageDriver) {
		return fmt.Errorf("STORAGE_DRIVER must be one of %s", strings.Join(storageDrivers, ", "))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(e.LogLevel)); err != nil {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", e.LogLevel)
	}
	if e.SweepInterval < 0 {
		return errors.New("SWEEP_INTERVAL cannot be negative")
	}
	switch e.StorageDriver {
	case DriverSQLite:
		if e.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverBolt:
		if e.BoltPath == "" {
			return errors.New("BOLT_PATH is required for the bolt driver")
		}
	case DriverRedis:
		if e.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis driver")
		}
	}
	return nil
}

func (e *EnvVars) GetPort() string {
	port := strings.TrimSpace(e.Port)
	if port != "" && port[0] != ':' {
		port = ":" + port
	}
	return port
}

func (e *EnvVars) GetAppName() string {
	return e.AppName
}

func (e *EnvVars) GetEnv() string {
	return e.Env
}

func (e *EnvVars) GetLogLevel() string {
	return e.LogLevel
}

func (e *EnvVars) GetOAuthConfigFile() string {
	return e.OAuthFile
}

// GetClientCredentials returns the raw id:secret seed list.
func (e *EnvVars) GetClientCredentials() string {
	return e.OAuthClients
}

// GetSweepInterval is the delay between expired-token sweeps. Zero disables
// the background sweeper.
func (e *EnvVars) GetSweepInterval() time.Duration {
	return e.SweepInterval
}
