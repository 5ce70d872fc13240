package config

import "testing"

func TestNewFromEnv_Defaults(t *testing.T) {
	t.Setenv("MEALDB_API_URL", "")
	t.Setenv("MEALDEX_DATA_DIR", "")
	t.Setenv("TELEGRAM_ALLOW_USER_ID", "")

	cfg := NewFromEnv()
	if cfg.DataDir != "data" {
		t.Errorf("Expected default data dir 'data', got %q", cfg.DataDir)
	}
	if cfg.CatalogBaseURL != "" {
		t.Errorf("Expected empty catalog URL (client applies its own default), got %q", cfg.CatalogBaseURL)
	}
}

func TestNewFromEnv_AllowUserID(t *testing.T) {
	t.Setenv("TELEGRAM_ALLOW_USER_ID", "123456789")

	cfg := NewFromEnv()
	if cfg.TelegramAllowUserID != 123456789 {
		t.Errorf("Expected allow user id 123456789, got %d", cfg.TelegramAllowUserID)
	}
}

func TestRequireTelegram(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_WEBHOOK_URL", "")

	cfg := NewFromEnv()
	if err := cfg.RequireTelegram(); err == nil {
		t.Error("Expected an error without bot settings")
	}

	cfg.TelegramBotToken = "token"
	cfg.TelegramWebhookURL = "https://bot.example.test/webhook"
	if err := cfg.RequireTelegram(); err != nil {
		t.Errorf("Expected no error with bot settings, got %v", err)
	}
}
