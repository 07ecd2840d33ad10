// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
// A .env file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "APP"

// Config holds all application configuration.
// Values are loaded from environment variables with the prefix "APP".
// Example: APP_PORT=8080, APP_DB_HOST=db, APP_LOG_LEVEL=debug
type Config struct {
	// Server configuration (embedded to flatten env vars)
	Server ServerConfig

	// Database configuration (embedded to flatten env vars)
	Database DatabaseConfig

	// Logging configuration (embedded to flatten env vars)
	Log LogConfig

	Security SecurityConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// Host is the HTTP server host (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 10s)
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response (default: 30s)
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// URL, when set, is used as the connection string and the discrete
	// host/port/user fields are ignored.
	URL string `envconfig:"DB_URL"`

	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"vagrant"`
	Password string `envconfig:"DB_PASSWORD" default:"123"`
	Name     string `envconfig:"DB_NAME" default:"lightbnb"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// MaxOpenConns is the maximum number of open connections (default: 25)
	MaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`

	// MaxIdleConns is the number of connections kept open while idle (default: 5)
	MaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`

	// ConnMaxLifetime is the maximum lifetime of a connection (default: 5m)
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`

	// QueryTimeout bounds every repository statement (default: 5s)
	QueryTimeout time.Duration `envconfig:"DB_QUERY_TIMEOUT" default:"5s"`

	// SlowQueryThreshold makes the query tracer log at warn level (default: 200ms)
	SlowQueryThreshold time.Duration `envconfig:"DB_SLOW_QUERY" default:"200ms"`

	// MigrateOnStart applies pending migrations before serving (default: false)
	MigrateOnStart bool `envconfig:"DB_MIGRATE_ON_START" default:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: plain, text, json (default: json)
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// SecurityConfig holds password hashing settings.
type SecurityConfig struct {
	// BcryptCost is the bcrypt work factor (default: 10)
	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`
}

// DSN returns the PostgreSQL connection string. The password is URL-escaped.
// An explicit URL takes precedence.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Load reads configuration from environment variables.
// It returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	var cfg Config

	// Load each config section separately to flatten env var names
	// This allows env vars like APP_PORT instead of APP_SERVER_PORT
	if err := envconfig.Process(Prefix, &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := envconfig.Process(Prefix, &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	if err := envconfig.Process(Prefix, &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}
	if err := envconfig.Process(Prefix, &cfg.Security); err != nil {
		return nil, fmt.Errorf("failed to load security config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("APP_DB_QUERY_TIMEOUT must be positive, got %s", c.Database.QueryTimeout)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("APP_DB_MAX_OPEN_CONNS must be positive, got %d", c.Database.MaxOpenConns)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("APP_DB_MAX_IDLE_CONNS (%d) exceeds APP_DB_MAX_OPEN_CONNS (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	return nil
}
