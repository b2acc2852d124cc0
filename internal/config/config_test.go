package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "CORS_ALLOW_ORIGINS", "UPLOAD_DIR", "DATA_DIR",
		"GROQ_API_KEY", "GROQ_MODEL", "GROQ_BASE_URL",
		"SMTP_HOST", "SMTP_PORT", "EMAIL_USER", "EMAIL_PASSWORD", "EMAIL_FROM",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected default env dev, got %s", cfg.Env)
	}
	if !reflect.DeepEqual(cfg.CORSAllowOrigins, []string{"http://localhost:3000"}) {
		t.Fatalf("unexpected default CORS origins: %v", cfg.CORSAllowOrigins)
	}
	if cfg.GroqModel != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected default model: %s", cfg.GroqModel)
	}
	if cfg.GroqBaseURL != "https://api.groq.com/openai/v1" {
		t.Fatalf("unexpected default base URL: %s", cfg.GroqBaseURL)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("expected default SMTP port 587, got %d", cfg.SMTPPort)
	}
	if cfg.SMTPConfigured() {
		t.Fatalf("SMTP must not be considered configured without credentials")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "PROD")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.example.com , https://admin.example.com,")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("EMAIL_USER", "sender@example.com")
	t.Setenv("EMAIL_PASSWORD", "secret")
	t.Setenv("EMAIL_FROM", "")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env production, got %s", cfg.Env)
	}
	want := []string{"https://app.example.com", "https://admin.example.com"}
	if !reflect.DeepEqual(cfg.CORSAllowOrigins, want) {
		t.Fatalf("expected origins %v, got %v", want, cfg.CORSAllowOrigins)
	}
	if cfg.SMTPPort != 2525 {
		t.Fatalf("expected SMTP port 2525, got %d", cfg.SMTPPort)
	}
	if !cfg.SMTPConfigured() {
		t.Fatalf("expected SMTP configured with host and credentials")
	}
	if cfg.EmailFrom != "sender@example.com" {
		t.Fatalf("expected from address to fall back to the SMTP user, got %s", cfg.EmailFrom)
	}
}

func TestLoadInvalidSMTPPort(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	cfg := Load()
	if cfg.SMTPPort != 587 {
		t.Fatalf("expected invalid port to fall back to 587, got %d", cfg.SMTPPort)
	}
}
