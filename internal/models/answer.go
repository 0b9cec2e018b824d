// ABOUTME: Answer is the externally visible result of one question
// ABOUTME: Pairs generated text with deduplicated source citations
package models

// Answer holds the synthesized text plus the cited sources, deduplicated
// by URL in rank order (first occurrence wins).
type Answer struct {
	Text    string   `json:"answer"`
	Sources []Source `json:"sources"`
}
