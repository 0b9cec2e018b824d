// ABOUTME: OpenAI-compatible client for embeddings and answer generation
// ABOUTME: Separate providers per concern; shared outbound throttle
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/ashishsinghal/askinsight/internal/config"
	"github.com/ashishsinghal/askinsight/internal/util"
)

// Client talks to two OpenAI-compatible endpoints: one for embeddings and
// one for chat completions. The generation side defaults to Groq, which
// speaks the same wire protocol behind a different base URL.
type Client struct {
	embedding  *openai.Client
	generation *openai.Client

	embeddingModel string
	chatModel      string
	maxTokens      int

	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration

	// Proactive throttle shared by both outbound endpoints; the paid
	// providers sit behind it regardless of per-identity limits.
	throttle *rate.Limiter
}

// NewClient builds a client from the service configuration. Both API keys
// are required.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.EmbeddingKey == "" {
		return nil, fmt.Errorf("embedding API key is required (OPENAI_API_KEY)")
	}
	if cfg.GenerationKey == "" {
		return nil, fmt.Errorf("generation API key is required (GROQ_API_KEY)")
	}

	embedCfg := openai.DefaultConfig(cfg.EmbeddingKey)
	embedCfg.BaseURL = cfg.EmbeddingBaseURL

	genCfg := openai.DefaultConfig(cfg.GenerationKey)
	genCfg.BaseURL = cfg.GenerationBaseURL

	return &Client{
		embedding:      openai.NewClientWithConfig(embedCfg),
		generation:     openai.NewClientWithConfig(genCfg),
		embeddingModel: cfg.EmbeddingModel,
		chatModel:      cfg.ChatModel,
		maxTokens:      cfg.MaxTokens,
		timeout:        cfg.Timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
		throttle:       rate.NewLimiter(rate.Limit(cfg.OutboundRPS), 1),
	}, nil
}

// Embed converts text into a dense vector in the corpus embedding space.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}
		if err := c.throttle.Wait(ctx); err != nil {
			return nil, fmt.Errorf("embedding throttle: %w", err)
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.embedding.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: openai.EmbeddingModel(c.embeddingModel),
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}
		return embedding64, nil
	}

	return nil, fmt.Errorf("embedding service failed after %d attempt(s): %w", c.maxRetries+1, lastErr)
}

// Complete sends a fully built prompt to the generation provider and
// returns the raw answer text, bounded by the configured token ceiling.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}
		if err := c.throttle.Wait(ctx); err != nil {
			return "", fmt.Errorf("generation throttle: %w", err)
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.generation.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model:     c.chatModel,
			MaxTokens: c.maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("generation service failed after %d attempt(s): %w", c.maxRetries+1, lastErr)
}
