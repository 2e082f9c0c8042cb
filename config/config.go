package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	AllowedOrigins string        `env:"ALLOWED_ORIGINS" envDefault:"*"`
	JWTSecretHex   string        `env:"JWT_SECRET"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	RulesFile      string        `env:"RULES_FILE"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`

	// JWTSecret is decoded from JWTSecretHex, or generated when it is unset.
	JWTSecret []byte
	// GeneratedSecret reports that JWTSecret was generated for this process.
	GeneratedSecret bool
}

// Load reads the process configuration from the environment. It does not
// log, so callers can install their logger from the result first.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if cfg.JWTSecretHex != "" {
		secret, err := hex.DecodeString(cfg.JWTSecretHex)
		if err != nil {
			return nil, fmt.Errorf("config: JWT_SECRET must be hex-encoded: %w", err)
		}
		cfg.JWTSecret = secret
	} else {
		secret, err := generateSecret()
		if err != nil {
			return nil, fmt.Errorf("config: generate JWT secret: %w", err)
		}
		cfg.JWTSecret = secret
		cfg.GeneratedSecret = true
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ParseLogLevel maps a LOG_LEVEL value to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func generateSecret() ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return secret, nil
}
