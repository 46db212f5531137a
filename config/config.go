package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting, loaded once at startup.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	// JWTSecret has no default; startup fails when it is absent so the
	// server can never run with a known key.
	JWTSecret string
	TokenTTL  time.Duration

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	ClientURL string
	AppName   string
}

// Load reads configuration from the environment. Call godotenv.Load first
// in development.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set in env")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URI not set in env")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		return nil, fmt.Errorf("MONGO_DB not set in env")
	}

	cfg := &Config{
		Port:      getenv("PORT", "8080"),
		MongoURI:  uri,
		MongoDB:   dbName,
		JWTSecret: secret,
		TokenTTL:  24 * time.Hour,
		SMTPHost:  os.Getenv("SMTP_HOST"),
		SMTPPort:  587,
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		ClientURL: getenv("CLIENT_URL", "http://localhost:3000"),
		AppName:   getenv("APP_NAME", "Event Planner"),
	}

	if val := os.Getenv("JWT_EXP_HOURS"); val != "" {
		hours, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXP_HOURS %q: %w", val, err)
		}
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", val, err)
		}
		cfg.SMTPPort = port
	}

	return cfg, nil
}

// MailConfigured reports whether SMTP credentials are present. Without
// them the mailer logs messages instead of sending.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
