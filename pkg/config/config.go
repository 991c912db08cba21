package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	Port         string
	IsProduction bool

	JWTSecret            string
	JWTExpiryMinutes     int
	JWTIssuer            string
	RefreshTokenSecret   string
	RefreshExpiryMinutes int

	CORSAllowedOrigins []string
	AuthRateLimit      string
}

// AccessTokenDuration returns the configured access token lifetime.
func (c *Config) AccessTokenDuration() time.Duration {
	return time.Duration(c.JWTExpiryMinutes) * time.Minute
}

// RefreshTokenDuration returns the configured refresh token lifetime.
func (c *Config) RefreshTokenDuration() time.Duration {
	return time.Duration(c.RefreshExpiryMinutes) * time.Minute
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_EXPIRY_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "plantao_backend")
	v.SetDefault("REFRESH_EXPIRY_MINUTES", 10080)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("AUTH_RATE_LIMIT", "10-M")

	dbURL := v.GetString("PGSQL_URL")
	if dbURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	refreshSecret := v.GetString("REFRESH_TOKEN_SECRET")
	if refreshSecret == "" {
		return nil, fmt.Errorf("REFRESH_TOKEN_SECRET environment variable is required")
	}

	return &Config{
		DatabaseURL:          dbURL,
		RedisURL:             v.GetString("REDIS_URL"),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		JWTSecret:            jwtSecret,
		JWTExpiryMinutes:     v.GetInt("JWT_EXPIRY_MINUTES"),
		JWTIssuer:            v.GetString("JWT_ISSUER"),
		RefreshTokenSecret:   refreshSecret,
		RefreshExpiryMinutes: v.GetInt("REFRESH_EXPIRY_MINUTES"),
		CORSAllowedOrigins:   splitAndTrim(v.GetString("CORS_ALLOWED_ORIGINS")),
		AuthRateLimit:        v.GetString("AUTH_RATE_LIMIT"),
	}, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
