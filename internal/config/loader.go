package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Optionally read from config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tickerwire")

	// Ignore error if config file not found
	_ = v.ReadInConfig()

	var cfg Config

	// Server
	cfg.Server.Host = v.GetString("server_host")
	cfg.Server.Port = v.GetInt("server_port")
	cfg.Server.Env = v.GetString("server_env")

	// MySQL
	cfg.MySQL.Host = v.GetString("mysql_host")
	cfg.MySQL.Port = v.GetInt("mysql_port")
	cfg.MySQL.User = v.GetString("mysql_user")
	cfg.MySQL.Password = v.GetString("mysql_password")
	cfg.MySQL.Database = v.GetString("mysql_database")
	cfg.MySQL.ConnectTimeout = time.Duration(v.GetInt("mysql_connect_timeout")) * time.Second
	cfg.MySQL.ReadTimeout = time.Duration(v.GetInt("mysql_read_timeout")) * time.Second
	cfg.MySQL.MaxOpenConns = v.GetInt("mysql_max_open_conns")
	cfg.MySQL.MaxIdleConns = v.GetInt("mysql_max_idle_conns")

	// Auth
	cfg.Auth.Secret = v.GetString("auth_secret")
	cfg.Auth.Issuer = v.GetString("auth_issuer")
	cfg.Auth.Audience = v.GetString("auth_audience")
	cfg.Auth.RequiredScopes = splitCSV(v.GetString("auth_required_scopes"))

	// Limits
	cfg.Limits.MaxRows = v.GetInt("max_rows")
	cfg.Limits.MaxScanSymbols = v.GetInt("max_scan_symbols")
	cfg.Limits.DefaultListLimit = v.GetInt("default_list_limit")
	cfg.Limits.DefaultQueryLimit = v.GetInt("default_query_limit")

	// Rate Limiting
	cfg.RateLimit.Enabled = v.GetBool("rate_limit_enabled")
	cfg.RateLimit.Max = v.GetInt("rate_limit_max")
	cfg.RateLimit.Window = time.Duration(v.GetInt("rate_limit_window_seconds")) * time.Second

	// Redis
	cfg.Redis.Host = v.GetString("redis_host")
	cfg.Redis.Port = v.GetInt("redis_port")
	cfg.Redis.Password = v.GetString("redis_password")
	cfg.Redis.DB = v.GetInt("redis_db")

	// Logging
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	// Validate required fields
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 8080)
	v.SetDefault("server_env", "development")

	// MySQL defaults
	v.SetDefault("mysql_host", "127.0.0.1")
	v.SetDefault("mysql_port", 3306)
	v.SetDefault("mysql_user", "root")
	v.SetDefault("mysql_password", "")
	v.SetDefault("mysql_database", "news")
	v.SetDefault("mysql_connect_timeout", 8)
	v.SetDefault("mysql_read_timeout", 15)
	v.SetDefault("mysql_max_open_conns", 25)
	v.SetDefault("mysql_max_idle_conns", 5)

	// Auth defaults
	v.SetDefault("auth_secret", "change-me-in-production")
	v.SetDefault("auth_issuer", "https://auth.tickerwire.local")
	v.SetDefault("auth_audience", "tickerwire-api")
	v.SetDefault("auth_required_scopes", "news.read")

	// Limit defaults
	v.SetDefault("max_rows", 200)
	v.SetDefault("max_scan_symbols", 50)
	v.SetDefault("default_list_limit", 500)
	v.SetDefault("default_query_limit", 50)

	// Rate limiting defaults
	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_max", 100)
	v.SetDefault("rate_limit_window_seconds", 60)

	// Redis defaults
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

func validate(cfg *Config) error {
	if cfg.IsProduction() {
		if cfg.Auth.Secret == "change-me-in-production" {
			return fmt.Errorf("auth secret must be changed in production")
		}
		if cfg.MySQL.Password == "" {
			return fmt.Errorf("mysql password is required in production")
		}
	}
	if cfg.Limits.MaxRows <= 0 {
		return fmt.Errorf("max_rows must be greater than zero")
	}
	if cfg.Limits.MaxScanSymbols <= 0 {
		return fmt.Errorf("max_scan_symbols must be greater than zero")
	}
	return nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
