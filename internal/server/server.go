// ABOUTME: HTTP server exposing the question-answering API
// ABOUTME: Routes, request-ID logging, and graceful shutdown
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ashishsinghal/askinsight/internal/models"
	"github.com/ashishsinghal/askinsight/internal/rag"
)

const shutdownTimeout = 10 * time.Second

// Asker answers one question for one client identity.
type Asker interface {
	Ask(ctx context.Context, identity, question string) (*models.Answer, error)
}

// Server serves the ask API over HTTP.
type Server struct {
	engine Asker
	corpus rag.CorpusLoader
	addr   string
}

// New creates a server around the engine. corpus is consulted by the
// health endpoint and checked before serving starts.
func New(engine Asker, corpus rag.CorpusLoader, addr string) *Server {
	return &Server{engine: engine, corpus: corpus, addr: addr}
}

// Handler builds the route table with logging middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ask", s.handleAsk)
	mux.HandleFunc("/healthz", s.handleHealth)
	return s.withRequestLog(mux)
}

// Run serves until ctx is canceled, then drains connections. A corpus
// that fails to load is fatal before the listener ever opens.
func (s *Server) Run(ctx context.Context) error {
	chunks, err := s.corpus.Load()
	if err != nil {
		return fmt.Errorf("refusing to serve: %w", err)
	}
	log.Printf("corpus loaded: %d chunks", len(chunks))

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()[:8]
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r.WithContext(withRequestID(r.Context(), id)))

		log.Printf("[%s] %s %s -> %d (%s)",
			id, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// requestID returns the log-correlation id for the request, if any.
func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return "-"
}
