// ABOUTME: HTTP handlers for the ask and health endpoints
// ABOUTME: Maps engine errors to the stable external JSON contract
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/ashishsinghal/askinsight/internal/rag"
)

type askRequest struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleAsk answers POST /api/ask. Upstream provider detail never reaches
// the client; it goes to the server log under the request id.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	answer, err := s.engine.Ask(r.Context(), clientIdentity(r), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrNoQuestion):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No question provided"})
		case errors.Is(err, rag.ErrRateLimited):
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests. Please try again in an hour."})
		default:
			log.Printf("[%s] ask failed: %v", requestID(r.Context()), err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Something went wrong"})
		}
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// handleHealth reports readiness. The corpus is memoized, so this is a
// cache hit after the first call.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	chunks, err := s.corpus.Load()
	if err != nil {
		log.Printf("[%s] health check failed: %v", requestID(r.Context()), err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "corpus not loaded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"chunks": len(chunks),
	})
}

// clientIdentity derives the rate-limit key from the forwarded address:
// first value of X-Forwarded-For, else the sentinel "unknown".
func clientIdentity(r *http.Request) string {
	fwd := r.Header.Get("X-Forwarded-For")
	if fwd == "" {
		return "unknown"
	}
	identity := strings.TrimSpace(strings.Split(fwd, ",")[0])
	if identity == "" {
		return "unknown"
	}
	return identity
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encoding response: %v", err)
	}
}
