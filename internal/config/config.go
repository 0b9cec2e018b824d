// ABOUTME: Centralized configuration for the askinsight service
// ABOUTME: Defaults, optional YAML file, then environment variable overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is consulted when ASKINSIGHT_CONFIG is not set
const DefaultConfigPath = "askinsight.yaml"

// Config holds all configuration for the question-answering service
type Config struct {
	// HTTP settings
	ListenAddr string

	// Corpus settings
	CorpusPath string

	// Embedding provider (OpenAI-compatible)
	EmbeddingKey     string
	EmbeddingModel   string
	EmbeddingBaseURL string

	// Generation provider (OpenAI-compatible, Groq by default)
	GenerationKey     string
	ChatModel         string
	GenerationBaseURL string
	MaxTokens         int

	// Retrieval settings
	TopK int

	// Per-identity fixed-window rate limit
	RateLimit  int
	RateWindow time.Duration

	// Outbound call settings
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	OutboundRPS float64
}

// fileOverlay is the YAML shape of the optional config file. Durations are
// strings in time.ParseDuration form ("1h", "30s"). Credentials never come
// from the file.
type fileOverlay struct {
	ListenAddr        string  `yaml:"listen_addr"`
	CorpusPath        string  `yaml:"corpus_path"`
	EmbeddingModel    string  `yaml:"embedding_model"`
	EmbeddingBaseURL  string  `yaml:"embedding_base_url"`
	ChatModel         string  `yaml:"chat_model"`
	GenerationBaseURL string  `yaml:"generation_base_url"`
	MaxTokens         int     `yaml:"max_tokens"`
	TopK              int     `yaml:"top_k"`
	RateLimit         int     `yaml:"rate_limit"`
	RateWindow        string  `yaml:"rate_window"`
	Timeout           string  `yaml:"timeout"`
	MaxRetries        *int    `yaml:"max_retries"`
	RetryDelay        string  `yaml:"retry_delay"`
	OutboundRPS       float64 `yaml:"outbound_rps"`
}

// Load builds the configuration: defaults, then the optional YAML file,
// then environment variables. Environment always wins.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:        ":8080",
		CorpusPath:        "data/embeddings.json",
		EmbeddingModel:    "text-embedding-3-small",
		EmbeddingBaseURL:  "https://api.openai.com/v1",
		ChatModel:         "llama-3.1-8b-instant",
		GenerationBaseURL: "https://api.groq.com/openai/v1",
		MaxTokens:         512,
		TopK:              3,
		RateLimit:         20,
		RateWindow:        time.Hour,
		Timeout:           30 * time.Second,
		MaxRetries:        0,
		RetryDelay:        2 * time.Second,
		OutboundRPS:       2.0,
	}

	path := getEnv("ASKINSIGHT_CONFIG", DefaultConfigPath)
	if err := loadFile(cfg, path); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg.ListenAddr = getEnv("ASKINSIGHT_ADDR", cfg.ListenAddr)
	cfg.CorpusPath = getEnv("ASKINSIGHT_CORPUS", cfg.CorpusPath)
	cfg.EmbeddingKey = os.Getenv("OPENAI_API_KEY")
	cfg.EmbeddingModel = getEnv("ASKINSIGHT_EMBEDDING_MODEL", cfg.EmbeddingModel)
	cfg.EmbeddingBaseURL = getEnv("ASKINSIGHT_EMBEDDING_BASE_URL", cfg.EmbeddingBaseURL)
	cfg.GenerationKey = os.Getenv("GROQ_API_KEY")
	cfg.ChatModel = getEnv("ASKINSIGHT_CHAT_MODEL", cfg.ChatModel)
	cfg.GenerationBaseURL = getEnv("ASKINSIGHT_CHAT_BASE_URL", cfg.GenerationBaseURL)
	cfg.MaxTokens = getEnvInt("ASKINSIGHT_MAX_TOKENS", cfg.MaxTokens)
	cfg.TopK = getEnvInt("ASKINSIGHT_TOP_K", cfg.TopK)
	cfg.RateLimit = getEnvInt("ASKINSIGHT_RATE_LIMIT", cfg.RateLimit)
	cfg.RateWindow = getEnvDuration("ASKINSIGHT_RATE_WINDOW", cfg.RateWindow)
	cfg.Timeout = getEnvDuration("ASKINSIGHT_TIMEOUT", cfg.Timeout)
	cfg.MaxRetries = getEnvInt("ASKINSIGHT_MAX_RETRIES", cfg.MaxRetries)
	cfg.RetryDelay = getEnvDuration("ASKINSIGHT_RETRY_DELAY", cfg.RetryDelay)
	cfg.OutboundRPS = getEnvFloat("ASKINSIGHT_OUTBOUND_RPS", cfg.OutboundRPS)

	return cfg, cfg.Validate()
}

// loadFile overlays YAML values onto cfg. A missing file is not an error.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var f fileOverlay
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}

	if f.ListenAddr != "" {
		cfg.ListenAddr = f.ListenAddr
	}
	if f.CorpusPath != "" {
		cfg.CorpusPath = f.CorpusPath
	}
	if f.EmbeddingModel != "" {
		cfg.EmbeddingModel = f.EmbeddingModel
	}
	if f.EmbeddingBaseURL != "" {
		cfg.EmbeddingBaseURL = f.EmbeddingBaseURL
	}
	if f.ChatModel != "" {
		cfg.ChatModel = f.ChatModel
	}
	if f.GenerationBaseURL != "" {
		cfg.GenerationBaseURL = f.GenerationBaseURL
	}
	if f.MaxTokens != 0 {
		cfg.MaxTokens = f.MaxTokens
	}
	if f.TopK != 0 {
		cfg.TopK = f.TopK
	}
	if f.RateLimit != 0 {
		cfg.RateLimit = f.RateLimit
	}
	if f.MaxRetries != nil {
		cfg.MaxRetries = *f.MaxRetries
	}
	if f.OutboundRPS != 0 {
		cfg.OutboundRPS = f.OutboundRPS
	}

	for _, d := range []struct {
		raw  string
		dst  *time.Duration
		name string
	}{
		{f.RateWindow, &cfg.RateWindow, "rate_window"},
		{f.Timeout, &cfg.Timeout, "timeout"},
		{f.RetryDelay, &cfg.RetryDelay, "retry_delay"},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", d.name, err)
		}
		*d.dst = parsed
	}

	return nil
}

func (c *Config) Validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("ASKINSIGHT_TOP_K must be >= 1, got %d", c.TopK)
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("ASKINSIGHT_RATE_LIMIT must be >= 1, got %d", c.RateLimit)
	}
	if c.RateWindow <= 0 {
		return fmt.Errorf("ASKINSIGHT_RATE_WINDOW must be positive, got %s", c.RateWindow)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("ASKINSIGHT_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("ASKINSIGHT_MAX_TOKENS must be >= 1, got %d", c.MaxTokens)
	}
	if c.OutboundRPS <= 0 {
		return fmt.Errorf("ASKINSIGHT_OUTBOUND_RPS must be positive, got %f", c.OutboundRPS)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
