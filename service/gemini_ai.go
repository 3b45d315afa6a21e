package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/convoai/convo-be/types"
)

// GeminiService is the Gemini-backed Generator. It rotates through the
// configured API keys when a call fails, which spreads quota across keys.
type GeminiService struct {
	apiKeys    []string
	currentKey int
	modelName  string
	timeout    time.Duration
	client     *genai.Client
	model      *genai.GenerativeModel
	mu         sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string, timeout time.Duration) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	service := &GeminiService{
		apiKeys:   apiKeys,
		modelName: modelName,
		timeout:   timeout,
	}
	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiService) initClient() error {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}
	if s.client != nil {
		s.client.Close()
	}
	s.client = client
	s.model = client.GenerativeModel(s.modelName)
	return nil
}

func (s *GeminiService) rotateKey() error {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	return s.initClient()
}

func (s *GeminiService) Generate(ctx context.Context, system, user string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}
	resp, err := s.model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		if rotateErr := s.rotateKey(); rotateErr != nil {
			return "", &types.GenerationError{Err: rotateErr}
		}
		return "", &types.GenerationError{Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &types.GenerationError{Err: errors.New("no response generated")}
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), nil
		}
	}
	return "", &types.GenerationError{Err: errors.New("no text part in response")}
}
