package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "eventplanner")
	for _, k := range []string{"PORT", "JWT_EXP_HOURS", "SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("default port: got %s", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("default token ttl: got %v", cfg.TokenTTL)
	}
	if cfg.MailConfigured() {
		t.Error("mail must be unconfigured without SMTP env")
	}
}

func TestLoad_FailsWithoutSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load must fail fast when JWT_SECRET is absent")
	}
}

func TestLoad_FailsWithoutMongo(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGO_URI", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load must fail without MONGO_URI")
	}

	setRequired(t)
	t.Setenv("MONGO_DB", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load must fail without MONGO_DB")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXP_HOURS", "48")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASS", "hunter2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.TokenTTL != 48*time.Hour || cfg.SMTPPort != 2525 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if !cfg.MailConfigured() {
		t.Error("mail should be configured")
	}

	t.Setenv("JWT_EXP_HOURS", "nope")
	if _, err := Load(); err == nil {
		t.Error("invalid JWT_EXP_HOURS must fail")
	}
}
