// ABOUTME: Chunk represents an embedded passage of blog content
// ABOUTME: Mirrors the record shape of the offline embeddings artifact
package models

// Source identifies the article a chunk was extracted from
type Source struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// Chunk is one embedded passage from the corpus. The passage text lives
// under the "chunk" key to stay compatible with the ingestion artifact.
type Chunk struct {
	Text      string    `json:"chunk"`
	Embedding []float64 `json:"embedding"`
	Source    Source    `json:"source"`
}

// ScoredChunk is a chunk paired with its similarity to a query vector
type ScoredChunk struct {
	Chunk
	Score float64 `json:"score"`
}
