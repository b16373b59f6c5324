package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	S3       S3Config
	SMTP     SMTPConfig
	Reminder ReminderConfig
	Redis    RedisConfig
	LogLevel string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	ConnTimeout  time.Duration
}

// AuthConfig holds token signing configuration. Both secrets are required:
// the codec cannot operate without them, so absence is a startup failure.
type AuthConfig struct {
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// S3Config holds object storage configuration
type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool

	// PublicBaseURL overrides the generated public URL prefix (useful for
	// MinIO or a CDN). When empty the standard AWS S3 URL form is used.
	PublicBaseURL string
}

// SMTPConfig holds email transport configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// ReminderConfig holds the release-reminder scheduler configuration
type ReminderConfig struct {
	Enabled  bool
	Schedule string
}

// RedisConfig holds the optional redis-backed rate limiter configuration.
// Rate limiting is disabled when Addr is empty.
type RedisConfig struct {
	Addr              string
	Password          string
	DB                int
	RequestsPerWindow int
	WindowDuration    time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("CINEVAULT_HOST", "0.0.0.0"),
			Port:            getEnv("CINEVAULT_PORT", "8080"),
			ReadTimeout:     getEnvDuration("CINEVAULT_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("CINEVAULT_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("CINEVAULT_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("CINEVAULT_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			MaxOpenConns: getEnvInt("CINEVAULT_DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("CINEVAULT_DB_MAX_IDLE_CONNS", 5),
			ConnTimeout:  getEnvDuration("CINEVAULT_DB_CONN_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			AccessSecret:    getEnv("JWT_SECRET", ""),
			RefreshSecret:   getEnv("JWT_REFRESH_SECRET", ""),
			AccessTokenTTL:  getEnvDuration("JWT_EXPIRES_IN", 15*time.Minute),
			RefreshTokenTTL: getEnvDuration("JWT_REFRESH_EXPIRES_IN", 168*time.Hour),
		},
		S3: S3Config{
			Endpoint:      getEnv("CINEVAULT_S3_ENDPOINT", ""),
			Region:        getEnv("CINEVAULT_S3_REGION", "us-east-1"),
			Bucket:        getEnv("CINEVAULT_S3_BUCKET", ""),
			AccessKey:     getEnv("CINEVAULT_S3_ACCESS_KEY", ""),
			SecretKey:     getEnv("CINEVAULT_S3_SECRET_KEY", ""),
			UsePathStyle:  getEnvBool("CINEVAULT_S3_USE_PATH_STYLE", false),
			PublicBaseURL: getEnv("CINEVAULT_S3_PUBLIC_BASE_URL", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("EMAIL_HOST", "localhost"),
			Port:     getEnvInt("EMAIL_PORT", 1025),
			Username: getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
			From:     getEnv("EMAIL_FROM", "noreply@cinevault.local"),
		},
		Reminder: ReminderConfig{
			Enabled:  getEnvBool("CINEVAULT_REMINDER_ENABLED", true),
			Schedule: getEnv("CINEVAULT_REMINDER_SCHEDULE", "0 9 * * *"),
		},
		Redis: RedisConfig{
			Addr:              getEnv("CINEVAULT_REDIS_ADDR", ""),
			Password:          getEnv("CINEVAULT_REDIS_PASSWORD", ""),
			DB:                getEnvInt("CINEVAULT_REDIS_DB", 0),
			RequestsPerWindow: getEnvInt("CINEVAULT_RATE_LIMIT_REQUESTS", 100),
			WindowDuration:    getEnvDuration("CINEVAULT_RATE_LIMIT_WINDOW", time.Minute),
		},
		LogLevel: getEnv("CINEVAULT_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.RefreshSecret == "" {
		return fmt.Errorf("JWT_REFRESH_SECRET is required")
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}

	// S3 is optional: no bucket means the upload routes stay unregistered.
	if c.S3.Bucket == "" && (c.S3.AccessKey != "" || c.S3.SecretKey != "") {
		return fmt.Errorf("CINEVAULT_S3_BUCKET is required when S3 credentials are set")
	}

	if c.Reminder.Enabled && c.Reminder.Schedule == "" {
		return fmt.Errorf("reminder schedule is required when the reminder is enabled")
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
