// ABOUTME: Brute-force cosine similarity ranking over the corpus
// ABOUTME: Scores every chunk against a query vector and keeps the top K
package rank

import (
	"math"
	"sort"

	"github.com/ashishsinghal/askinsight/internal/models"
)

// TopK scores every corpus chunk against the query vector and returns the
// min(k, len(corpus)) highest-scoring chunks in descending score order.
// Equal scores keep corpus order. The scan is O(n); at a few hundred to a
// few thousand chunks this beats carrying a vector index.
func TopK(query []float64, chunks []models.Chunk, k int) []models.ScoredChunk {
	if k <= 0 || len(chunks) == 0 {
		return nil
	}

	scored := make([]models.ScoredChunk, len(chunks))
	for i, c := range chunks {
		scored[i] = models.ScoredChunk{
			Chunk: c,
			Score: CosineSimilarity(query, c.Embedding),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// CosineSimilarity returns the normalized dot product of a and b. Length
// mismatches and zero-norm vectors score 0 rather than propagating NaN.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
