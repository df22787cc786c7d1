package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
chat:
  message_max_length: 500
  rate_per_minute: 12
feed:
  candidate_limit: 25
cleanup:
  interval: 2h
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Chat.MessageMaxLength != 500 {
		t.Fatalf("unexpected chat message_max_length: %d", cfg.Chat.MessageMaxLength)
	}
	if cfg.Chat.RatePerMinute != 12 {
		t.Fatalf("unexpected chat rate_per_minute: %d", cfg.Chat.RatePerMinute)
	}
	if cfg.Feed.CandidateLimit != 25 {
		t.Fatalf("unexpected feed candidate_limit: %d", cfg.Feed.CandidateLimit)
	}
	if cfg.Cleanup.Interval != 2*time.Hour {
		t.Fatalf("unexpected cleanup interval: %s", cfg.Cleanup.Interval)
	}

	// Untouched sections keep their defaults.
	if cfg.Chat.RatePer10Sec != 8 {
		t.Fatalf("chat rate_per_10sec default should stay 8, got %d", cfg.Chat.RatePer10Sec)
	}
	if cfg.HTTP.ReadTimeout != 5*time.Second {
		t.Fatalf("http read_timeout default should stay 5s, got %s", cfg.HTTP.ReadTimeout)
	}
	if cfg.Auth.JWTAccessTTL != 15*time.Minute {
		t.Fatalf("auth jwt_access_ttl default should stay 15m, got %s", cfg.Auth.JWTAccessTTL)
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Chat.MessageMaxLength != 2000 {
		t.Fatalf("unexpected default chat message_max_length: %d", cfg.Chat.MessageMaxLength)
	}
	if cfg.Feed.CandidateLimit != 50 {
		t.Fatalf("unexpected default feed candidate_limit: %d", cfg.Feed.CandidateLimit)
	}
	if cfg.Cleanup.Interval != 6*time.Hour {
		t.Fatalf("unexpected default cleanup interval: %s", cfg.Cleanup.Interval)
	}
}

func TestEnvOverridesBeatYAML(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("CHAT_RATE_PER_MINUTE", "3")
	t.Setenv("CLEANUP_INTERVAL", "30m")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
chat:
  rate_per_minute: 12
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("env override lost: %s", cfg.HTTP.Addr)
	}
	if cfg.Chat.RatePerMinute != 3 {
		t.Fatalf("env override lost: %d", cfg.Chat.RatePerMinute)
	}
	if cfg.Cleanup.Interval != 30*time.Minute {
		t.Fatalf("env override lost: %s", cfg.Cleanup.Interval)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"S3_ENDPOINT",
		"S3_ACCESS_KEY",
		"S3_SECRET_KEY",
		"S3_BUCKET",
		"S3_USE_SSL",
		"JWT_SECRET",
		"JWT_ACCESS_TTL",
		"REFRESH_TTL",
		"CHAT_MESSAGE_MAX_LENGTH",
		"CHAT_RATE_PER_MINUTE",
		"CHAT_RATE_PER_10SEC",
		"FEED_CANDIDATE_LIMIT",
		"CLEANUP_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}
