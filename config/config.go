package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string         `mapstructure:"port"`
	UploadDir       string         `mapstructure:"upload_dir"`
	MaxChunkLength  int            `mapstructure:"max_chunk_length"`
	RetrievalTopK   int            `mapstructure:"retrieval_top_k"`
	ExternalTimeout time.Duration  `mapstructure:"external_timeout"`
	Mongo           MongoConfig    `mapstructure:"mongo"`
	Weaviate        WeaviateConfig `mapstructure:"weaviate"`
	OpenAI          OpenAIConfig   `mapstructure:"openai"`
	Generator       GenConfig      `mapstructure:"generator"`
	Gemini          GeminiConfig   `mapstructure:"gemini"`
	Weather         WeatherConfig  `mapstructure:"weather"`
}

type MongoConfig struct {
	URI      string `mapstructure:"MONGODB_URI"`
	Database string `mapstructure:"database"`
}

type WeaviateConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"`
	Class  string `mapstructure:"class"`
}

type OpenAIConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	APIKey          string `mapstructure:"OPENAI_API_KEY"`
	EmbeddingModel  string `mapstructure:"embedding_model"`
	ClassifierModel string `mapstructure:"classifier_model"`
	WeatherModel    string `mapstructure:"weather_model"`
}

// GenConfig selects the answer generator. Provider "groq" runs through the
// OpenAI-compatible endpoint, "gemini" through the Google SDK.
type GenConfig struct {
	Provider string `mapstructure:"provider"`
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"GROQ_API_KEY"`
	Model    string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
	Model   string   `mapstructure:"model"`
}

type WeatherConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"WEATHER_API_KEY"`
	City    string `mapstructure:"city"`
	Units   string `mapstructure:"units"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables for secrets
	v.BindEnv("mongo.MONGODB_URI", "MONGODB_URI")
	v.BindEnv("weaviate.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")
	v.BindEnv("openai.OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("generator.GROQ_API_KEY", "GROQ_API_KEY")
	v.BindEnv("weather.WEATHER_API_KEY", "WEATHER_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Port == "" {
		c.Port = "8000"
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploaded_docs"
	}
	if c.MaxChunkLength <= 0 {
		c.MaxChunkLength = 1000
	}
	if c.RetrievalTopK <= 0 {
		c.RetrievalTopK = 3
	}
	if c.ExternalTimeout <= 0 {
		c.ExternalTimeout = 30 * time.Second
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "convo"
	}
	if c.Weaviate.Class == "" {
		c.Weaviate.Class = "DocumentChunk"
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAI.EmbeddingModel == "" {
		c.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}
	if c.OpenAI.ClassifierModel == "" {
		c.OpenAI.ClassifierModel = "gpt-3.5-turbo"
	}
	if c.OpenAI.WeatherModel == "" {
		c.OpenAI.WeatherModel = "gpt-4o"
	}
	if c.Generator.Provider == "" {
		c.Generator.Provider = "groq"
	}
	if c.Generator.BaseURL == "" {
		c.Generator.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Generator.Model == "" {
		c.Generator.Model = "llama-3.1-70b-versatile"
	}
	if c.Weather.BaseURL == "" {
		c.Weather.BaseURL = "https://api.openweathermap.org/data/2.5/weather"
	}
	if c.Weather.City == "" {
		c.Weather.City = "New York"
	}
	if c.Weather.Units == "" {
		c.Weather.Units = "metric"
	}
}
