package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// MaxUploadBytes caps the size of a single uploaded document.
const MaxUploadBytes = 10 << 20 // 10MB

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	CORSAllowOrigins []string
	UploadDir        string
	DataDir          string
	GroqAPIKey       string
	GroqModel        string
	GroqBaseURL      string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFrom        string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of a local env file for dev convenience.
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigins: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
		DataDir:          getEnv("DATA_DIR", "./data/analyses"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GroqModel:        getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqBaseURL:      getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUsername:     os.Getenv("EMAIL_USER"),
		SMTPPassword:     os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.SMTPUsername
	}
	return cfg
}

// SMTPConfigured reports whether enough mail settings are present to send email.
func (c Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != ""
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}
