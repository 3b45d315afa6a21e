/*
Copyright © 2025 convoai
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/convoai/convo-be/config"
	"github.com/convoai/convo-be/database"
	"github.com/convoai/convo-be/repository"
	"github.com/convoai/convo-be/service"
)

// uploadDocumentCmd represents the upload-document command
var uploadDocumentCmd = &cobra.Command{
	Use:   "upload-document",
	Short: "Ingest local PDF files into the document index",
	Long: `Registers each given PDF, extracts and chunks its pages, embeds the
chunks and writes them to the vector index. Exits non-zero if any file
fails to ingest.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		title, _ := cmd.Flags().GetString("title")

		ctx := context.Background()

		mongoClient, err := database.NewMongoClient(ctx, cfg.Mongo.URI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoClient.Disconnect(ctx)
		mongoDb := mongoClient.Database(cfg.Mongo.Database)

		vectorIndex, err := database.NewWeaviateStore(cfg.Weaviate, cfg.ExternalTimeout)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		documentRepo := repository.NewDocumentRepo(mongoDb)
		ingestService := service.NewIngestService(
			service.NewPDFExtractService(cfg.ExternalTimeout),
			service.NewChunkService(cfg.MaxChunkLength),
			service.NewOpenAIEmbedder(cfg.OpenAI, cfg.ExternalTimeout),
			vectorIndex,
			documentRepo,
		)
		fileService := service.NewFileService(cfg.UploadDir, documentRepo, ingestService)

		if title != "" && len(args) > 1 {
			log.Fatal("--title only applies to a single file")
		}
		for _, path := range args {
			doc, err := fileService.IngestLocal(ctx, path, title)
			if err != nil {
				log.Fatalf("Failed to ingest %s: %v", path, err)
			}
			log.Printf("Ingested %s as document %d (%s)", path, doc.ID, doc.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(uploadDocumentCmd)
	uploadDocumentCmd.Flags().StringP("title", "t", "", "Title for the document (defaults to the file name)")
}
