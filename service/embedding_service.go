package service

import (
	"context"
	"errors"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/convoai/convo-be/config"
	"github.com/convoai/convo-be/types"
)

// Embedder converts text into a fixed-length vector. Failures surface as
// EmbeddingError and abort the enclosing step; a zero vector is never
// substituted because it would corrupt similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIEmbedder calls the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIEmbedder(cfg config.OpenAIConfig, timeout time.Duration) *OpenAIEmbedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIEmbedder{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.EmbeddingModel,
		timeout: timeout,
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, &types.EmbeddingError{Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &types.EmbeddingError{Err: errors.New("no embedding returned")}
	}
	return resp.Data[0].Embedding, nil
}
