package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Session   SessionConfig   `mapstructure:"session"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
	Log       LogConfig       `mapstructure:"log"`
	Seed      SeedConfig      `mapstructure:"seed"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port    string    `mapstructure:"port"`
	BaseURL string    `mapstructure:"baseURL"` // used for absolute links in the sitemap
	TLS     TLSConfig `mapstructure:"tls"`
}

// TLSConfig holds TLS-specific configuration.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// DBConfig holds database-specific configuration.
// Driver is either "sqlite3" or "mysql". MySQL DSNs need parseTime=true and
// multiStatements=true for the migrations to run.
type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// SessionConfig holds the per-visitor session expiry policy.
type SessionConfig struct {
	CookieName      string        `mapstructure:"cookieName"`
	Lifetime        time.Duration `mapstructure:"lifetime"`
	IdleTimeout     time.Duration `mapstructure:"idleTimeout"`
	CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
}

// CacheConfig holds configuration for the SQLite summary cache.
type CacheConfig struct {
	FilePath string        `mapstructure:"filePath"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig limits form submissions per client IP.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// SeedConfig controls loading of demo content into an empty database.
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.baseURL", "http://localhost:8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "sites.db")
	v.SetDefault("session.cookieName", "sites_session")
	v.SetDefault("session.lifetime", 24*time.Hour)
	v.SetDefault("session.idleTimeout", 2*time.Hour)
	v.SetDefault("session.cleanupInterval", 5*time.Minute)
	v.SetDefault("cache.filePath", "cache.db")
	v.SetDefault("cache.ttl", time.Minute)
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requests", 20)
	v.SetDefault("rateLimit.window", time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("seed.enabled", false)

	// Set up viper to read from config file
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/go-mini-sites/")
	v.AddConfigPath("$HOME/.go-mini-sites")

	// Attempt to read the config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	v.SetEnvPrefix("SITES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
