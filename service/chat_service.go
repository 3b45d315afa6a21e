package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/convoai/convo-be/repository"
	"github.com/convoai/convo-be/types"
)

const (
	// WeatherFetchFallback is returned when the observation cannot be fetched.
	WeatherFetchFallback = "I'm sorry, I can't fetch the weather right now."

	// WeatherSummaryFallback is returned when the summary generation fails.
	WeatherSummaryFallback = "I'm sorry, I cannot provide the weather details right now."
)

const deflectionSystemPromptFormat = "You are a polite assistant. The user asked something outside your scope. Briefly explain that you can only answer questions about the weather in %s or about food, and invite them to ask about one of those."

// ChatService routes each user message to one of three answer strategies
// based on its classified intent, and persists both sides of the exchange.
type ChatService struct {
	messages   repository.MessageRepo
	classifier Classifier
	rag        *RAGService
	weather    WeatherProvider
	weatherGen Generator
	generator  Generator
	city       string
}

func NewChatService(
	messages repository.MessageRepo,
	classifier Classifier,
	rag *RAGService,
	weather WeatherProvider,
	weatherGen Generator,
	generator Generator,
	city string,
) *ChatService {
	return &ChatService{
		messages:   messages,
		classifier: classifier,
		rag:        rag,
		weather:    weather,
		weatherGen: weatherGen,
		generator:  generator,
		city:       city,
	}
}

// Respond handles one user message end to end: persist it, classify it,
// produce an answer by the matching strategy, persist and return the reply.
// The reply is always a usable string; failures degrade to fixed fallbacks.
func (s *ChatService) Respond(ctx context.Context, content string) (*types.Message, error) {
	userMsg := &types.Message{
		IsAI:      false,
		Content:   content,
		Timestamp: time.Now().Unix(),
	}
	if err := s.messages.CreateMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("store user message: %w", err)
	}

	intent, err := s.classifier.Classify(ctx, content)
	if err != nil {
		log.Printf("classification failed, defaulting to other: %v", err)
		intent = types.IntentOther
	}

	var answer string
	switch intent {
	case types.IntentFood:
		answer = s.rag.Answer(ctx, content)
	case types.IntentWeather:
		answer = s.weatherAnswer(ctx)
	default:
		answer = s.deflect(ctx, content)
	}

	aiMsg := &types.Message{
		IsAI:      true,
		Content:   answer,
		Timestamp: time.Now().Unix(),
	}
	if err := s.messages.CreateMessage(ctx, aiMsg); err != nil {
		return nil, fmt.Errorf("store AI message: %w", err)
	}
	return aiMsg, nil
}

// History returns the most recent messages in chronological order.
func (s *ChatService) History(ctx context.Context, limit int64) ([]*types.Message, error) {
	return s.messages.ListMessages(ctx, limit)
}

func (s *ChatService) weatherAnswer(ctx context.Context) string {
	obs, err := s.weather.Current(ctx)
	if err != nil {
		log.Printf("weather fetch failed: %v", err)
		return WeatherFetchFallback
	}

	system := fmt.Sprintf("You are a helpful weather assistant. Summarize this weather data for %s in a helpful, natural way.", obs.City)
	answer, err := s.weatherGen.Generate(ctx, system, FormatObservation(obs))
	if err != nil {
		log.Printf("weather summary generation failed: %v", err)
		return WeatherSummaryFallback
	}
	return answer
}

func (s *ChatService) deflect(ctx context.Context, content string) string {
	system := fmt.Sprintf(deflectionSystemPromptFormat, s.city)
	answer, err := s.generator.Generate(ctx, system, content)
	if err != nil {
		log.Printf("deflection generation failed: %v", err)
		return FallbackAnswer
	}
	return answer
}
