// ABOUTME: Engine orchestrates the question-answering pipeline
// ABOUTME: Gate, embed, rank, synthesize, deduplicate citations
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ashishsinghal/askinsight/internal/models"
	"github.com/ashishsinghal/askinsight/internal/rank"
)

// Sentinel errors mapped to specific responses at the transport boundary.
// Everything else collapses to an opaque internal error there.
var (
	ErrNoQuestion  = errors.New("no question provided")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Embedder converts text into a vector in the corpus embedding space.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Completer generates answer text from a fully built prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Gatekeeper bounds the per-identity request rate.
type Gatekeeper interface {
	Allow(identity string) bool
}

// CorpusLoader supplies the read-only chunk set.
type CorpusLoader interface {
	Load() ([]models.Chunk, error)
}

// Engine sequences one question through the retrieval pipeline. It holds
// no request-scoped state; a single Engine serves concurrent requests.
type Engine struct {
	corpus   CorpusLoader
	embedder Embedder
	complete Completer
	gate     Gatekeeper
	topK     int
}

// NewEngine wires the pipeline. gate may be nil for trusted surfaces
// (local CLI, stdio MCP) that have no client identity to meter.
func NewEngine(corpus CorpusLoader, embedder Embedder, completer Completer, gate Gatekeeper, topK int) *Engine {
	return &Engine{
		corpus:   corpus,
		embedder: embedder,
		complete: completer,
		gate:     gate,
		topK:     topK,
	}
}

// Ask answers a question from the corpus. Validation and rate-limit
// failures return sentinel errors before any provider call is made.
func (e *Engine) Ask(ctx context.Context, identity, question string) (*models.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrNoQuestion
	}

	if e.gate != nil && !e.gate.Allow(identity) {
		return nil, ErrRateLimited
	}

	chunks, err := e.corpus.Load()
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	queryVec, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	top := rank.TopK(queryVec, chunks, e.topK)

	text, err := e.complete.Complete(ctx, BuildPrompt(question, top))
	if err != nil {
		return nil, fmt.Errorf("synthesizing answer: %w", err)
	}

	return &models.Answer{
		Text:    text,
		Sources: dedupSources(top),
	}, nil
}

// dedupSources collects citations in rank order, keeping the first
// occurrence of each URL. Only chunks that went into the prompt can
// appear here, so citations never outrun the supplied context.
func dedupSources(chunks []models.ScoredChunk) []models.Source {
	seen := make(map[string]bool, len(chunks))
	sources := make([]models.Source, 0, len(chunks))
	for _, c := range chunks {
		if seen[c.Source.URL] {
			continue
		}
		seen[c.Source.URL] = true
		sources = append(sources, c.Source)
	}
	return sources
}
