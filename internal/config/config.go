package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "corvus-session"

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	SessionTTL   time.Duration
	CookieSecure bool

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "corvus"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SessionTTL:   parseDuration(getEnv("SESSION_TTL", "168h")),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 168 * time.Hour
	}
	return d
}
