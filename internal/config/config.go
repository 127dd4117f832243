// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types and validates that
// required values are present so the rest of the application can rely on them.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional blocks (auth tuning, observability).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: a `.env` file, if it exists, is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

/*
	Env vars are read with the JOBLY_ prefix. The prefix is stripped and the
	remainder lowercased; "." in the variable name is the nesting delimiter:

		JOBLY_DATABASE.HOST        -> database.host        -> Config.Database.Host
		JOBLY_AUTH.SECRET_KEY      -> auth.secret_key      -> Config.Auth.SecretKey
		JOBLY_SERVER.CORS_ALLOWED_ORIGINS=a,b -> []string{"a", "b"}
*/

const envPrefix = "JOBLY_"

const (
	// DefaultBcryptWorkFactor is used when auth.bcrypt_work_factor is not set.
	DefaultBcryptWorkFactor = 12

	// DefaultTokenTTL is used when auth.token_ttl is not set.
	DefaultTokenTTL = 24 * time.Hour
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment
// ("local", "development", "production").
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains the Redis address ("host:port") used by the health
// check and the background job queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig holds the token signing secret and password hashing tuning.
type AuthConfig struct {
	// SecretKey signs and verifies bearer tokens (HS256).
	SecretKey string `koanf:"secret_key" validate:"required"`

	// BcryptWorkFactor is the bcrypt cost used when hashing passwords.
	// Zero means DefaultBcryptWorkFactor.
	BcryptWorkFactor int `koanf:"bcrypt_work_factor" validate:"omitempty,min=4,max=31"`

	// TokenTTL is how long an issued token stays valid, e.g. "24h".
	// Zero means DefaultTokenTTL.
	TokenTTL time.Duration `koanf:"token_ttl"`
}

// IntegrationConfig stores credentials of third-party services.
// Every field is optional; an empty key disables the integration.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
}

// ApplyDefaults fills zero-valued optional auth settings.
func (a *AuthConfig) ApplyDefaults() {
	if a.BcryptWorkFactor == 0 {
		a.BcryptWorkFactor = DefaultBcryptWorkFactor
	}
	if a.TokenTTL == 0 {
		a.TokenTTL = DefaultTokenTTL
	}
}

// DSN builds the postgres URL for the configured database.
func (d DatabaseConfig) DSN() string {
	return buildDSN(d)
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config, validates it, applies defaults and returns the result.
//
// It logs fatally (and exits) when env loading, unmarshalling or validation fails,
// since the process cannot do anything useful with a broken configuration.
func LoadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load initial env variables")
	}

	mainConfig := &Config{}

	if err = k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal main config")
	}

	validate := validator.New()

	if err = validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}

	mainConfig.Auth.ApplyDefaults()

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are not user-configurable so that every
	// log line and trace is tagged consistently.
	mainConfig.Observability.ServiceName = "jobly"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}

// String hides secrets so the config can be logged safely.
func (a AuthConfig) String() string {
	return fmt.Sprintf("AuthConfig{SecretKey: [redacted], BcryptWorkFactor: %d, TokenTTL: %s}", a.BcryptWorkFactor, a.TokenTTL)
}
