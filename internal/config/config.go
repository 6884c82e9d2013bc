package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Mail      MailConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
	PublicBaseURL  string // used in password-reset links
	FrontendURL    string // reset-link redirect target
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// SessionConfig holds cookie-session settings
type SessionConfig struct {
	CookieName string
	Secret     string
	Lifetime   time.Duration
}

// AuthConfig holds password hashing and lockout settings
type AuthConfig struct {
	BcryptCost       int
	MaxLoginAttempts int
	LockTime         time.Duration
	ResetTokenTTL    time.Duration
}

// RateLimitConfig holds per-IP rate limiting settings
type RateLimitConfig struct {
	Window time.Duration
	Max    int
	Burst  int
}

// MailConfig holds SMTP settings for outbound email
type MailConfig struct {
	Host             string
	Port             int
	Sender           string
	Password         string
	ContactRecipient string
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file is honored when present (development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
			FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "homegame"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESS_NAME", "homegame.sid"),
			Secret:     getEnv("SESS_SECRET", ""),
			Lifetime:   getDurationEnv("SESS_LIFETIME", 24*time.Hour),
		},
		Auth: AuthConfig{
			BcryptCost:       getIntEnv("SALT_WORK_FACTOR", 12),
			MaxLoginAttempts: getIntEnv("MAX_LOGIN_ATTEMPTS", 5),
			LockTime:         getDurationEnv("LOCK_TIME", 15*time.Minute),
			ResetTokenTTL:    getDurationEnv("RESET_TOKEN_TTL", time.Hour),
		},
		RateLimit: RateLimitConfig{
			Window: getDurationEnv("RATE_LIMIT_WINDOW", 15*time.Minute),
			Max:    getIntEnv("RATE_LIMIT_MAX", 100),
			Burst:  getIntEnv("RATE_LIMIT_BURST", 20),
		},
		Mail: MailConfig{
			Host:             getEnv("MAIL_HOST", "smtp.gmail.com"),
			Port:             getIntEnv("MAIL_PORT", 587),
			Sender:           getEnv("MAIL_SENDER", ""),
			Password:         getEnv("MAIL_PASSWORD", ""),
			ContactRecipient: getEnv("MAIL_CONTACT_RECIPIENT", ""),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// Session validation - every authenticated route depends on the secret
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("SESS_NAME is required"))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESS_SECRET is required"))
	} else if c.IsProduction() && len(c.Session.Secret) < 32 {
		errs = append(errs, errors.New("SESS_SECRET must be at least 32 bytes in production"))
	}
	if c.Session.Lifetime <= 0 {
		errs = append(errs, errors.New("SESS_LIFETIME must be positive"))
	}

	// Auth validation
	if c.Auth.BcryptCost < 10 || c.Auth.BcryptCost > 20 {
		errs = append(errs, fmt.Errorf("SALT_WORK_FACTOR must be between 10 and 20, got %d", c.Auth.BcryptCost))
	}
	if c.Auth.MaxLoginAttempts <= 0 {
		errs = append(errs, errors.New("MAX_LOGIN_ATTEMPTS must be positive"))
	}
	if c.Auth.LockTime <= 0 {
		errs = append(errs, errors.New("LOCK_TIME must be positive"))
	}
	if c.Auth.ResetTokenTTL <= 0 {
		errs = append(errs, errors.New("RESET_TOKEN_TTL must be positive"))
	}

	// Rate limit validation
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.RateLimit.Max <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX must be positive"))
	}

	// Mail validation - required in production for password resets
	if c.IsProduction() {
		if c.Mail.Host == "" {
			errs = append(errs, errors.New("MAIL_HOST is required in production"))
		}
		if c.Mail.Sender == "" {
			errs = append(errs, errors.New("MAIL_SENDER is required in production"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
