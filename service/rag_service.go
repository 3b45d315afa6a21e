package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/convoai/convo-be/database"
	"github.com/convoai/convo-be/types"
)

const (
	// FallbackAnswer is returned whenever the retrieval or generation path
	// fails; query failures never surface raw error detail to the user.
	FallbackAnswer = "I'm sorry, I cannot answer right now."

	// NoContextAnswer is returned when retrieval finds nothing to ground an
	// answer on, e.g. before any document has been ingested.
	NoContextAnswer = "I'm sorry, I do not have a recipe for that."
)

const ragSystemPromptFormat = "You are a helpful food assistant. Answer the user using ONLY the following context:\n\n%s\n\nIf the context does not support an answer, apologize and say that you do not have a recipe for that."

// RAGService answers food queries by similarity retrieval over the indexed
// chunks, grounding generation on the retrieved text.
type RAGService struct {
	embedder  Embedder
	index     database.VectorIndex
	generator Generator
	topK      int
}

func NewRAGService(embedder Embedder, index database.VectorIndex, generator Generator, topK int) *RAGService {
	if topK <= 0 {
		topK = 3
	}
	return &RAGService{
		embedder:  embedder,
		index:     index,
		generator: generator,
		topK:      topK,
	}
}

// Answer produces a grounded answer for the query. Every failure on this
// path degrades to a fixed fallback string; the cause is logged, never
// returned to the user.
func (s *RAGService) Answer(ctx context.Context, query string) string {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("RAG query embedding failed: %v", err)
		return FallbackAnswer
	}

	matches, err := s.index.Query(ctx, vector, s.topK)
	if err != nil {
		log.Printf("RAG retrieval failed: %v", err)
		return FallbackAnswer
	}
	if len(matches) == 0 {
		log.Printf("RAG retrieval returned no matches")
		return NoContextAnswer
	}

	contextText := assembleContext(matches)
	system := fmt.Sprintf(ragSystemPromptFormat, contextText)

	answer, err := s.generator.Generate(ctx, system, query)
	if err != nil {
		log.Printf("RAG generation failed: %v", err)
		return FallbackAnswer
	}
	return answer
}

// assembleContext concatenates the retrieved chunk texts in retrieval-rank
// order, separated by a blank line.
func assembleContext(matches []types.QueryMatch) string {
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, m.Metadata.ChunkText)
	}
	return strings.Join(parts, "\n\n")
}
