package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/convoai/convo-be/types"
)

// OpenAIService is a Generator on any OpenAI-compatible chat endpoint.
// Groq is reached the same way by pointing baseURL at its OpenAI-compatible
// API, so the food and deflection answers run on the configured Groq model
// while the weather summary runs on OpenAI proper.
type OpenAIService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIService(baseURL, apiKey, model string, timeout time.Duration) *OpenAIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIService{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

func (s *OpenAIService) Generate(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		},
	)
	if err != nil {
		return "", &types.GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &types.GenerationError{Err: errors.New("no response generated")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

const classifierSystemPrompt = "You are a classifier that categorizes user queries into 'food' or 'weather' or 'other'. Just return one of those words depending on what the user wants."

// OpenAIClassifier labels a message as food, weather or other. Any label
// outside that set, and any API failure, maps to IntentOther so the router
// has a single explicit default.
type OpenAIClassifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIClassifier(baseURL, apiKey, model string, timeout time.Duration) *OpenAIClassifier {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClassifier{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, content string) (types.Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: classifierSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: content},
			},
			MaxTokens:   5,
			Temperature: 0,
		},
	)
	if err != nil {
		return types.IntentOther, err
	}
	if len(resp.Choices) == 0 {
		return types.IntentOther, errors.New("no classification returned")
	}
	label := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	return types.ParseIntent(label), nil
}
