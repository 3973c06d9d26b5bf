package config

import (
	"os"
	"strings"
	"time"
)

// Config holds all configuration for the intake service
type Config struct {
	// Server configuration
	Port string

	// Capability provider configuration
	LLMProvider   string
	LLMTimeout    time.Duration
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string

	// Tracking sheet configuration
	SheetBaseURL string
	SheetID      string
	SheetTimeout time.Duration

	// Workflow webhook configuration
	WebhookURL     string
	WebhookTimeout time.Duration

	// Email dispatch configuration
	MailerooAPIKey   string
	MailerooEndpoint string
	EmailTimeout     time.Duration
	EmailFromAddress string
	EmailFromName    string

	// CORS
	AllowedOrigins []string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	config := &Config{
		// Server defaults
		Port: getEnv("PORT", "8080"),

		// Capability provider defaults
		LLMProvider:  getEnv("LLM_PROVIDER", "gemini"),
		LLMTimeout:   getDurationEnv("LLM_TIMEOUT", 30*time.Second),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),

		// Tracking sheet defaults
		SheetBaseURL: getEnv("SHEET_BASE_URL", ""),
		SheetID:      getEnv("SHEET_ID", ""),
		SheetTimeout: getDurationEnv("SHEET_TIMEOUT", 10*time.Second),

		// Webhook defaults (5 seconds, matching the workflow intake contract)
		WebhookURL:     getEnv("WEBHOOK_URL", ""),
		WebhookTimeout: getDurationEnv("WEBHOOK_TIMEOUT", 5*time.Second),

		// Email defaults
		MailerooAPIKey:   getEnv("MAILEROO_API_KEY", ""),
		MailerooEndpoint: getEnv("MAILEROO_ENDPOINT", "https://smtp.maileroo.com/api/v2/emails"),
		EmailTimeout:     getDurationEnv("EMAIL_TIMEOUT", 10*time.Second),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", "no-reply@cityguardian.example"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "CityGuardian"),

		// CORS defaults
		AllowedOrigins: getStringSliceEnv("ALLOWED_ORIGINS", "http://127.0.0.1:5500"),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getStringSliceEnv gets a comma-separated string environment variable and returns it as a string slice
func getStringSliceEnv(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	if value == "" {
		return []string{}
	}

	parts := strings.Split(value, ",")
	var values []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
