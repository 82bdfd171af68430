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

const defaultTokenExpiry = 90 * 24 * time.Hour

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// JWT
	JWTSecret    string
	JWTExpiresIn time.Duration
	jwtExpiryErr error

	// Admin
	AdminEmails string

	// Logging
	LogRetentionDays int

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string
	SentryDSN   string
}

// Load reads the process environment, after merging in a .env file when one
// exists in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	expiry, expiryErr := parseExpiry(getEnv("JWT_EXPIRES_IN", "90d"))

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "tours_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "data/tours.db"),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiresIn: expiry,
		jwtExpiryErr: expiryErr,

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "development"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
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

// IsAdminEmail reports whether email is listed in ADMIN_EMAILS.
func (c *Config) IsAdminEmail(email string) bool {
	for _, e := range strings.Split(c.AdminEmails, ",") {
		if e = strings.TrimSpace(e); e != "" && strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Validate reports settings the server must not start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable is required"))
	}
	if c.jwtExpiryErr != nil {
		errs = append(errs, c.jwtExpiryErr)
	}
	return errors.Join(errs...)
}

// parseExpiry accepts Go durations ("12h", "30m") and a day suffix ("90d").
// Empty means the default; anything else unparsable or not positive is an
// error, reported with the default as the fallback value.
func parseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultTokenExpiry, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return defaultTokenExpiry, fmt.Errorf("invalid JWT_EXPIRES_IN %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultTokenExpiry, fmt.Errorf("invalid JWT_EXPIRES_IN %q", s)
	}
	return d, nil
}
