package config

import (
	"fmt"
	"os"
)

// Config holds the configuration for the application.
type Config struct {
	// CatalogBaseURL is the recipe API endpoint.
	CatalogBaseURL string
	// DataDir holds the file-based snapshot slots.
	DataDir string
	// DBPath, when set, switches persistence and metrics to SQLite.
	DBPath string

	// GeminiAPIKey enables the plan suggestion feature.
	GeminiAPIKey string

	// Telegram Config (only required for the bot binary)
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
}

// NewFromEnv creates a new Config object from environment variables,
// applying defaults for everything optional.
func NewFromEnv() *Config {
	cfg := &Config{
		CatalogBaseURL:     os.Getenv("MEALDB_API_URL"),
		DataDir:            os.Getenv("MEALDEX_DATA_DIR"),
		DBPath:             os.Getenv("MEALDEX_DB_PATH"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	if idStr := os.Getenv("TELEGRAM_ALLOW_USER_ID"); idStr != "" {
		fmt.Sscanf(idStr, "%d", &cfg.TelegramAllowUserID)
	}

	return cfg
}

// RequireTelegram validates the settings the bot binary needs.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}

// RequireGemini validates the settings the plan suggester needs.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	return nil
}
