// ABOUTME: Grounded prompt construction for answer synthesis
// ABOUTME: Persona framing, context-only instruction, labeled source blocks
package rag

import (
	"fmt"
	"strings"

	"github.com/ashishsinghal/askinsight/internal/models"
)

// FallbackSentence is what the model is told to say when the retrieved
// context does not contain the answer.
const FallbackSentence = "I don't have information on that in my articles yet."

// BuildPrompt assembles the single-message synthesis prompt: persona, the
// grounding instruction, each retrieved chunk labeled by article title,
// then the question.
func BuildPrompt(question string, chunks []models.ScoredChunk) string {
	blocks := make([]string, len(chunks))
	for i, c := range chunks {
		blocks[i] = fmt.Sprintf("From %q:\n%s", c.Source.Title, c.Text)
	}
	context := strings.Join(blocks, "\n\n---\n\n")

	return fmt.Sprintf(`You are a helpful assistant for a technical blog by Ashish Singhal, an AI and backend engineer.

Answer the question using ONLY the context provided below. Be concise and practical.
If the answer is not in the context, say %q.

Context:
%s

Question: %s

Answer:`, FallbackSentence, context, question)
}
