// ABOUTME: Unit tests for configuration loading
// ABOUTME: Covers defaults, YAML overlay, env overrides, and validation
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points ASKINSIGHT_CONFIG away from any real file and clears the
// env vars the loader consults.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ASKINSIGHT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	for _, key := range []string{
		"ASKINSIGHT_ADDR", "ASKINSIGHT_CORPUS", "OPENAI_API_KEY",
		"ASKINSIGHT_EMBEDDING_MODEL", "ASKINSIGHT_EMBEDDING_BASE_URL",
		"GROQ_API_KEY", "ASKINSIGHT_CHAT_MODEL", "ASKINSIGHT_CHAT_BASE_URL",
		"ASKINSIGHT_MAX_TOKENS", "ASKINSIGHT_TOP_K", "ASKINSIGHT_RATE_LIMIT",
		"ASKINSIGHT_RATE_WINDOW", "ASKINSIGHT_TIMEOUT", "ASKINSIGHT_MAX_RETRIES",
		"ASKINSIGHT_RETRY_DELAY", "ASKINSIGHT_OUTBOUND_RPS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.TopK)
	}
	if cfg.RateLimit != 20 {
		t.Errorf("RateLimit = %d, want 20", cfg.RateLimit)
	}
	if cfg.RateWindow != time.Hour {
		t.Errorf("RateWindow = %s, want 1h", cfg.RateWindow)
	}
	if cfg.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0 (no retry by default)", cfg.MaxRetries)
	}
	if cfg.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want 512", cfg.MaxTokens)
	}
	if cfg.ChatModel != "llama-3.1-8b-instant" {
		t.Errorf("ChatModel = %q", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ASKINSIGHT_TOP_K", "5")
	t.Setenv("ASKINSIGHT_RATE_WINDOW", "30m")
	t.Setenv("ASKINSIGHT_RATE_LIMIT", "7")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ASKINSIGHT_OUTBOUND_RPS", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.RateWindow != 30*time.Minute {
		t.Errorf("RateWindow = %s, want 30m", cfg.RateWindow)
	}
	if cfg.RateLimit != 7 {
		t.Errorf("RateLimit = %d, want 7", cfg.RateLimit)
	}
	if cfg.EmbeddingKey != "sk-test" {
		t.Errorf("EmbeddingKey = %q", cfg.EmbeddingKey)
	}
	if cfg.OutboundRPS != 0.5 {
		t.Errorf("OutboundRPS = %v, want 0.5", cfg.OutboundRPS)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "askinsight.yaml")
	content := `
listen_addr: ":9000"
top_k: 4
rate_window: 15m
chat_model: mixtral-8x7b
max_retries: 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("ASKINSIGHT_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q, want :9000", cfg.ListenAddr)
	}
	if cfg.TopK != 4 {
		t.Errorf("TopK = %d, want 4", cfg.TopK)
	}
	if cfg.RateWindow != 15*time.Minute {
		t.Errorf("RateWindow = %s, want 15m", cfg.RateWindow)
	}
	if cfg.ChatModel != "mixtral-8x7b" {
		t.Errorf("ChatModel = %q", cfg.ChatModel)
	}
	if cfg.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", cfg.MaxRetries)
	}
	// Untouched values keep their defaults
	if cfg.RateLimit != 20 {
		t.Errorf("RateLimit = %d, want default 20", cfg.RateLimit)
	}
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "askinsight.yaml")
	if err := os.WriteFile(path, []byte("top_k: 4\n"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("ASKINSIGHT_CONFIG", path)
	t.Setenv("ASKINSIGHT_TOP_K", "9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.TopK != 9 {
		t.Errorf("TopK = %d, want env value 9", cfg.TopK)
	}
}

func TestLoad_BadDurationInFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "askinsight.yaml")
	if err := os.WriteFile(path, []byte("rate_window: soonish\n"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("ASKINSIGHT_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Error("Load() accepted an unparseable duration")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero top-k", "ASKINSIGHT_TOP_K", "0"},
		{"zero ceiling", "ASKINSIGHT_RATE_LIMIT", "0"},
		{"negative window", "ASKINSIGHT_RATE_WINDOW", "-1h"},
		{"excessive retries", "ASKINSIGHT_MAX_RETRIES", "11"},
		{"zero max tokens", "ASKINSIGHT_MAX_TOKENS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() accepted %s=%s", tt.key, tt.value)
			}
		})
	}
}
