// ABOUTME: Read-only corpus store loaded once from the embeddings artifact
// ABOUTME: Memoizes the chunk set for the process lifetime via sync.Once
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/ashishsinghal/askinsight/internal/models"
)

// Store provides read-only access to the embedded corpus. The backing
// artifact is read at most once per Store; concurrent first loads share a
// single read via sync.Once.
type Store struct {
	path string

	once   sync.Once
	chunks []models.Chunk
	err    error
}

// NewStore creates a store over the embeddings artifact at path. Nothing
// is read until Load is called.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the full chunk set, reading and validating the artifact on
// the first call only. A load failure is sticky: every later call returns
// the same error, since a missing or malformed corpus is a deployment
// problem, not a per-request one.
func (s *Store) Load() ([]models.Chunk, error) {
	s.once.Do(func() {
		s.chunks, s.err = readArtifact(s.path)
	})
	return s.chunks, s.err
}

func readArtifact(path string) ([]models.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus unavailable: %w", err)
	}

	var chunks []models.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("corpus unavailable: parsing %s: %w", path, err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("corpus unavailable: %s contains no chunks", path)
	}

	// All chunks must share one embedding space
	dim := len(chunks[0].Embedding)
	if dim == 0 {
		return nil, fmt.Errorf("corpus unavailable: chunk 0 has an empty embedding")
	}
	for i, c := range chunks {
		if len(c.Embedding) != dim {
			return nil, fmt.Errorf("corpus unavailable: chunk %d has dimension %d, expected %d",
				i, len(c.Embedding), dim)
		}
	}

	return chunks, nil
}
