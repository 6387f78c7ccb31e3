package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
		Database: DatabaseConfig{Path: "./test.db"},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run_mode = %q, expected longpoll default", cfg.Telegram.RunMode)
	}
	if cfg.Database.MigrationsDir != "migrations" {
		t.Fatalf("migrations_dir = %q, expected default", cfg.Database.MigrationsDir)
	}
	if cfg.Gemini.Model == "" {
		t.Fatal("expected default gemini model")
	}
	if cfg.Gemini.HistoryTurns != defaultHistoryTurns {
		t.Fatalf("history_turns = %d, expected %d", cfg.Gemini.HistoryTurns, defaultHistoryTurns)
	}
}

func TestNormalizePollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run_mode = %q, expected longpoll", cfg.Telegram.RunMode)
	}
}

func TestNormalizeMissingToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	err := Normalize(cfg)
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if !strings.Contains(err.Error(), "token") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeMissingDatabasePath(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Path = "  "
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for missing database path")
	}
}

func TestNormalizeWebhookRequiresURL(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	cfg.Webhook = WebhookConfig{Listen: "0.0.0.0", Port: 8443}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for webhook mode without url")
	}
	cfg.Webhook.URL = "https://example.org/bot"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != UpdateCallback {
		t.Fatalf("exclusion not normalized: %q", cfg.RateLimit.ExcludeUpdates[0])
	}

	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unsupported exclusion")
	}
}

func TestNormalizeGeminiBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Gemini.Temperature = 3
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for out-of-range temperature")
	}
	cfg.Gemini.Temperature = 0.7
	cfg.Gemini.MaxOutputTokens = -1
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for negative max_output_tokens")
	}
}
