package config

import (
	"strings"
	"testing"
	"time"
)

func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "homegame",
			Database:  "main",
		},
		Session: SessionConfig{
			CookieName: "homegame.sid",
			Secret:     "test-secret",
			Lifetime:   24 * time.Hour,
		},
		Auth: AuthConfig{
			BcryptCost:       12,
			MaxLoginAttempts: 5,
			LockTime:         15 * time.Minute,
			ResetTokenTTL:    time.Hour,
		},
		RateLimit: RateLimitConfig{
			Window: 15 * time.Minute,
			Max:    100,
			Burst:  20,
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingSessionSecret(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Session.Secret = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing SESS_SECRET")
	}
	if !strings.Contains(err.Error(), "SESS_SECRET") {
		t.Errorf("expected error to mention SESS_SECRET, got: %v", err)
	}
}

func TestConfig_Validate_ShortSecretAllowedInDev(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Session.Secret = "short"

	if err := cfg.Validate(); err != nil {
		t.Errorf("short secret should be allowed outside production, got: %v", err)
	}
}

func TestConfig_Validate_ShortSecretRejectedInProd(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "production"
	cfg.Session.Secret = "short"
	cfg.Mail.Host = "smtp.example.com"
	cfg.Mail.Sender = "homegame@example.com"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for short SESS_SECRET in production")
	}
}

func TestConfig_Validate_BcryptCostBounds(t *testing.T) {
	for _, cost := range []int{0, 9, 21} {
		cfg := validBaseConfig()
		cfg.Auth.BcryptCost = cost

		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for SALT_WORK_FACTOR=%d", cost)
		}
	}
}

func TestConfig_Validate_AggregatesErrors(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""
	cfg.Database.Host = ""
	cfg.Auth.MaxLoginAttempts = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"SERVER_PORT", "DB_HOST", "MAX_LOGIN_ATTEMPTS"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected aggregated error to mention %s, got: %v", want, err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Server.Port == "" {
		t.Error("expected default SERVER_PORT")
	}
	if cfg.Auth.MaxLoginAttempts <= 0 {
		t.Error("expected positive default MAX_LOGIN_ATTEMPTS")
	}
	if cfg.Session.Lifetime <= 0 {
		t.Error("expected positive default SESS_LIFETIME")
	}
}
