// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront client
type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Search   SearchConfig
	Session  SessionConfig
	Redis    RedisConfig
	Server   ServerConfig
	Security SecurityConfig
	Receipt  ReceiptConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// BackendConfig describes the storefront REST backend the client talks to
type BackendConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// SearchConfig contains search input coalescing settings
type SearchConfig struct {
	DebounceWindow time.Duration
}

// SessionConfig selects where the credential and display name are persisted
type SessionConfig struct {
	Store    string // file, redis or sql
	File     string
	Secret   string
	DBDriver string // sqlite or postgres
	DBDSN    string
	TTL      time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// ServerConfig contains the local view server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SecurityConfig contains view server CORS settings
type SecurityConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
}

// ReceiptConfig contains the shop details printed on checkout receipts
type ReceiptConfig struct {
	ShopName    string
	ShopAddress string
	ShopEmail   string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "QKart Storefront"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", false),
		},
		Backend: BackendConfig{
			Endpoint: strings.TrimRight(getEnv("BACKEND_ENDPOINT", "http://localhost:8082/api/v1"), "/"),
			Timeout:  getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
		},
		Search: SearchConfig{
			DebounceWindow: getEnvAsDuration("SEARCH_DEBOUNCE", 800*time.Millisecond),
		},
		Session: SessionConfig{
			Store:    strings.ToLower(getEnv("SESSION_STORE", "file")),
			File:     getEnv("SESSION_FILE", defaultSessionFile()),
			Secret:   getEnv("SESSION_SECRET", ""),
			DBDriver: strings.ToLower(getEnv("SESSION_DB_DRIVER", "sqlite")),
			DBDSN:    getEnv("SESSION_DB_DSN", "storefront.db"),
			TTL:      getEnvAsDuration("SESSION_TTL", 0),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8081"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Security: SecurityConfig{
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept"}),
		},
		Receipt: ReceiptConfig{
			ShopName:    getEnv("RECEIPT_SHOP_NAME", "QKart"),
			ShopAddress: getEnv("RECEIPT_SHOP_ADDRESS", ""),
			ShopEmail:   getEnv("RECEIPT_SHOP_EMAIL", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.Endpoint == "" {
		return fmt.Errorf("BACKEND_ENDPOINT is required")
	}
	if !strings.HasPrefix(c.Backend.Endpoint, "http://") && !strings.HasPrefix(c.Backend.Endpoint, "https://") {
		return fmt.Errorf("BACKEND_ENDPOINT must be an http(s) URL")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}
	if c.Search.DebounceWindow < 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE cannot be negative")
	}

	switch c.Session.Store {
	case "file":
		if c.Session.File == "" {
			return fmt.Errorf("SESSION_FILE is required for the file session store")
		}
		if c.Session.Secret != "" && len(c.Session.Secret) < 16 {
			return fmt.Errorf("SESSION_SECRET must be at least 16 characters long")
		}
	case "redis":
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis session store")
		}
	case "sql":
		if c.Session.DBDriver != "sqlite" && c.Session.DBDriver != "postgres" {
			return fmt.Errorf("SESSION_DB_DRIVER must be sqlite or postgres, got %q", c.Session.DBDriver)
		}
		if c.Session.DBDSN == "" {
			return fmt.Errorf("SESSION_DB_DSN is required for the sql session store")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront-session.json"
	}
	return filepath.Join(dir, "storefront", "session.json")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
