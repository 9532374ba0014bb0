package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session
	SessionSecret string
	SessionExpiry time.Duration
	CookieName    string

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	// S3 image storage
	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // optional, for MinIO-compatible storage

	// Admin
	AdminEmails string

	// Logging
	LogRetention time.Duration

	// Server
	Port        string
	Env         string
	CORSOrigins string
	FrontendURL string
	ClientDir   string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "linkdeck"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionExpiry: parseDuration(getEnv("SESSION_EXPIRY", "720h")),
		CookieName:    getEnv("SESSION_COOKIE_NAME", "linkdeck_session"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:8080/api/auth/google/callback"),

		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3AccessKey: getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h")),

		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		FrontendURL: getEnv("FRONTEND_URL", ""),
		ClientDir:   getEnv("CLIENT_DIR", "./dist/client"),
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

// IsProduction reports whether the app runs with production error handling
// and secure session cookies.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
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
		return 30 * 24 * time.Hour
	}
	return d
}
