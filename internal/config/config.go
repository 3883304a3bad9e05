package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is everything the process needs from the environment, read once at
// startup and passed down explicitly. No package reads os.Getenv after Load.
type Config struct {
	Port          string
	CORSOrigin    string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	RedisPassword string

	SessionCookie string
	SessionTTL    time.Duration

	// Admin credentials are injected, never hardcoded. The password arrives
	// pre-hashed so the plaintext never touches the environment.
	AdminEmail        string
	AdminPasswordHash string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	CloudinaryURL string
}

// Load reads the environment into a Config. It fails on the values the
// process cannot run without; optional collaborators (SMTP, Cloudinary)
// may be left unset and are replaced by no-op implementations in main.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getenv("API_PORT", "8080"),
		CORSOrigin:        getenv("CORS_ORIGIN", "http://localhost:3000"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDatabase:     os.Getenv("MONGO_DATABASE"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		SessionCookie:     getenv("SESSION_COOKIE", "clinic_session"),
		SessionTTL:        24 * time.Hour,
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          587,
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:          getenv("SMTP_FROM", os.Getenv("SMTP_USER")),
		CloudinaryURL:     os.Getenv("CLOUDINARY_URL"),
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
		}
		cfg.SessionTTL = d
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", port, err)
		}
		cfg.SMTPPort = n
	}

	for key, val := range map[string]string{
		"MONGO_URI":           cfg.MongoURI,
		"MONGO_DATABASE":      cfg.MongoDatabase,
		"REDIS_ADDR":          cfg.RedisAddr,
		"ADMIN_EMAIL":         cfg.AdminEmail,
		"ADMIN_PASSWORD_HASH": cfg.AdminPasswordHash,
	} {
		if val == "" {
			return nil, fmt.Errorf("required environment variable %s is not set", key)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
