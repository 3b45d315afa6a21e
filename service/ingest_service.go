package service

import (
	"context"
	"fmt"
	"log"

	"github.com/convoai/convo-be/database"
	"github.com/convoai/convo-be/repository"
	"github.com/convoai/convo-be/types"
)

// IngestService runs a document through extraction, chunking, embedding and
// indexing. Pages are processed in ascending page order and chunks in
// ascending index order; the processed flag is set only after every chunk of
// every page has been indexed.
//
// Semantics are at-least-once: a failure aborts the document but does not
// roll back pages and vectors written earlier in the same run. Reprocessing
// a failed document rewrites page records; vector records overwrite in place
// because their keys are deterministic.
type IngestService struct {
	extractor Extractor
	chunker   *ChunkService
	embedder  Embedder
	index     database.VectorIndex
	documents repository.DocumentRepo
}

func NewIngestService(
	extractor Extractor,
	chunker *ChunkService,
	embedder Embedder,
	index database.VectorIndex,
	documents repository.DocumentRepo,
) *IngestService {
	return &IngestService{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		index:     index,
		documents: documents,
	}
}

// ProcessDocument ingests one document. On success doc.IsProcessed is true
// both in the store and on the passed struct.
func (s *IngestService) ProcessDocument(ctx context.Context, doc *types.Document) error {
	log.Printf("Processing document %d (%s)", doc.ID, doc.Title)

	pages, err := s.extractor.Extract(ctx, doc.FilePath)
	if err != nil {
		return fmt.Errorf("document %d: %w", doc.ID, err)
	}
	log.Printf("Extracted %d pages from document %d", len(pages), doc.ID)

	indexed := 0
	for _, page := range pages {
		pageRec := &types.DocumentPage{
			DocumentID: doc.ID,
			PageNumber: page.Number,
			Content:    page.Text,
		}
		if err := s.documents.CreatePage(ctx, pageRec); err != nil {
			return fmt.Errorf("document %d: failed to store page %d: %w", doc.ID, page.Number, err)
		}

		chunks := s.chunker.Split(page.Text)
		for i, chunk := range chunks {
			vector, err := s.embedder.Embed(ctx, chunk)
			if err != nil {
				return fmt.Errorf("document %d page %d chunk %d: %w", doc.ID, page.Number, i, err)
			}
			meta := types.VectorMetadata{
				DocumentID: doc.ID,
				PageNumber: page.Number,
				ChunkIndex: i,
				Title:      doc.Title,
				ChunkText:  chunk,
			}
			if err := s.index.Put(ctx, meta, vector); err != nil {
				return fmt.Errorf("document %d page %d chunk %d: %w", doc.ID, page.Number, i, err)
			}
			indexed++
		}
	}

	if err := s.documents.MarkProcessed(ctx, doc.ID); err != nil {
		return fmt.Errorf("document %d: failed to mark processed: %w", doc.ID, err)
	}
	doc.IsProcessed = true
	log.Printf("Document %d processed: %d pages, %d vectors indexed", doc.ID, len(pages), indexed)
	return nil
}
