package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/scrapdesk/admin-api/internal/imageurl"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	// Upstream scrap-collection backend, including the /api/v1 prefix.
	BackendAPIURL  string
	BackendTimeout time.Duration

	SessionSecret string
	SessionExpiry time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	backendTimeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "30s"))
	if err != nil {
		backendTimeout = 30 * time.Second
	}

	sessionExpiry, err := time.ParseDuration(getEnv("SESSION_EXPIRY", "168h"))
	if err != nil {
		sessionExpiry = 168 * time.Hour
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		BackendAPIURL:  getEnv("BACKEND_API_URL", "http://localhost:5001/api/v1"),
		BackendTimeout: backendTimeout,

		SessionSecret: getEnvOrPanic("SESSION_SECRET"),
		SessionExpiry: sessionExpiry,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UploadsBaseURL is the origin uploaded files are served from: the backend API
// URL with any /api suffix stripped. Root-relative image paths produced by the
// normalizer resolve against it.
func (c *Config) UploadsBaseURL() string {
	return imageurl.BaseURL(c.BackendAPIURL)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
