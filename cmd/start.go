/*
Copyright © 2025 convoai
*/
package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/convoai/convo-be/config"
	"github.com/convoai/convo-be/database"
	"github.com/convoai/convo-be/handler"
	"github.com/convoai/convo-be/repository"
	"github.com/convoai/convo-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chat server",
	Long:  `Starts the HTTP and websocket server that handles chat and document ingestion`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx := context.Background()

		mongoClient, err := database.NewMongoClient(ctx, cfg.Mongo.URI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		mongoDb := mongoClient.Database(cfg.Mongo.Database)

		vectorIndex, err := database.NewWeaviateStore(cfg.Weaviate, cfg.ExternalTimeout)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		documentRepo := repository.NewDocumentRepo(mongoDb)
		messageRepo := repository.NewMessageRepo(mongoDb)

		generator, err := newGenerator(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize generator: %v", err)
		}
		weatherGen := service.NewOpenAIService(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.WeatherModel, cfg.ExternalTimeout)
		classifier := service.NewOpenAIClassifier(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.ClassifierModel, cfg.ExternalTimeout)
		embedder := service.NewOpenAIEmbedder(cfg.OpenAI, cfg.ExternalTimeout)

		ingestService := service.NewIngestService(
			service.NewPDFExtractService(cfg.ExternalTimeout),
			service.NewChunkService(cfg.MaxChunkLength),
			embedder,
			vectorIndex,
			documentRepo,
		)
		fileService := service.NewFileService(cfg.UploadDir, documentRepo, ingestService)
		ragService := service.NewRAGService(embedder, vectorIndex, generator, cfg.RetrievalTopK)
		weatherService := service.NewOpenWeatherService(cfg.Weather, cfg.ExternalTimeout)
		chatService := service.NewChatService(messageRepo, classifier, ragService, weatherService, weatherGen, generator, cfg.Weather.City)
		wsService := service.NewWebSocketService(chatService)

		corsHandler := handler.NewCorsHandler()
		messageHandler := handler.NewMessageHandler(chatService)
		documentHandler := handler.NewDocumentHandler(fileService, documentRepo)

		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/messages", messageHandler.HandleMessage)
			apiV1.GET("/messages", messageHandler.ListMessages)
			apiV1.POST("/documents/upload", documentHandler.UploadDocument)
			apiV1.GET("/documents", documentHandler.ListDocuments)
			apiV1.GET("/documents/:id", documentHandler.GetDocument)
			apiV1.GET("/documents/:id/file", documentHandler.ServeDocument)
		}
		router.GET("/ws", func(c *gin.Context) {
			wsService.HandleChat(c.Writer, c.Request)
		})

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func newGenerator(cfg *config.Config) (service.Generator, error) {
	if cfg.Generator.Provider == "gemini" {
		return service.NewGeminiService(cfg.Gemini.APIKeys, cfg.Gemini.Model, cfg.ExternalTimeout)
	}
	return service.NewOpenAIService(cfg.Generator.BaseURL, cfg.Generator.APIKey, cfg.Generator.Model, cfg.ExternalTimeout), nil
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
