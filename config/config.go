package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// Email Configuration (Resend)
	ResendAPIKey    string
	ResendFromEmail string // Verified sender address
	ResendFromName  string
	ContactEmailTo  string // Practitioner inbox, receives every submission
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	// Admin Configuration
	AdminJWTSecret string
	// Localization
	DefaultLanguage string
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Email Configuration
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		ResendFromEmail: getEnv("RESEND_FROM_EMAIL", "contact@sophro-shiatsu.fr"), // Must be verified in Resend
		ResendFromName:  getEnv("RESEND_FROM_NAME", "Cabinet Sophrologie & Shiatsu"),
		ContactEmailTo:  getEnv("CONTACT_EMAIL_TO", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 600), // 10 minute window
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		// Admin Configuration
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		// Localization
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "fr"),
	}

	if cfg.ResendAPIKey == "" || cfg.ContactEmailTo == "" {
		log.Println("WARNING: RESEND_API_KEY or CONTACT_EMAIL_TO is missing. Contact form will be unavailable.")
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Submissions will not be archived.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// EmailConfigured reports whether the dispatch pipeline has everything it
// needs to deliver both emails.
func (c *Config) EmailConfigured() bool {
	return c.ResendAPIKey != "" && c.ResendFromEmail != "" && c.ContactEmailTo != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
