// Package config reads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the process needs to start.
type Config struct {
	Port string

	// Telegram
	BotToken    string
	PublicURL   string // base URL for webhook registration, may be empty
	SecretToken string // webhook shared secret, may be empty

	// OpenAI
	OpenAIKey   string
	OpenAIModel string // empty = client default
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		BotToken:    strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		PublicURL:   strings.TrimRight(strings.TrimSpace(os.Getenv("PUBLIC_URL")), "/"),
		SecretToken: strings.TrimSpace(os.Getenv("TELEGRAM_SECRET_TOKEN")),
		OpenAIKey:   strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel: strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that required credentials are present.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	if c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
