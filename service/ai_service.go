package service

import (
	"context"

	"github.com/convoai/convo-be/types"
)

// Generator is an answer-producing LLM. Implementations wrap failures in
// GenerationError; callers on the query path degrade to a fixed fallback
// instead of surfacing the error to the user.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Classifier decides which answer strategy a user message gets.
type Classifier interface {
	Classify(ctx context.Context, content string) (types.Intent, error)
}
