package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MySQL     MySQLConfig
	Auth      AuthConfig
	Limits    LimitsConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// MySQLConfig holds MySQL configuration for the news schema
type MySQLConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	MaxOpenConns   int           `mapstructure:"max_open_conns"`
	MaxIdleConns   int           `mapstructure:"max_idle_conns"`
}

// AuthConfig holds bearer token verification configuration
type AuthConfig struct {
	Secret         string   `mapstructure:"secret"`
	Issuer         string   `mapstructure:"issuer"`
	Audience       string   `mapstructure:"audience"`
	RequiredScopes []string `mapstructure:"required_scopes"`
}

// LimitsConfig bounds repository reads
type LimitsConfig struct {
	// MaxRows caps the per-query row count; requested limits clamp to it
	MaxRows int `mapstructure:"max_rows"`
	// MaxScanSymbols caps how many symbol tables one search call touches
	MaxScanSymbols int `mapstructure:"max_scan_symbols"`
	// DefaultListLimit is the symbol listing default when no limit is given
	DefaultListLimit int `mapstructure:"default_list_limit"`
	// DefaultQueryLimit is the symbol news and search default when no limit
	// is given
	DefaultQueryLimit int `mapstructure:"default_query_limit"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Max     int           `mapstructure:"max"`
	Window  time.Duration `mapstructure:"window"`
}

// RedisConfig holds Redis configuration (used by the rate limiter)
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IsDevelopment returns true if running in development mode
func (c Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c Config) IsProduction() bool {
	return c.Server.Env == "production"
}
