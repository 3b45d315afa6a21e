package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/convoai/convo-be/types"
)

type fakeExtractor struct {
	pages []types.Page
	err   error
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) ([]types.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

type fakeEmbedder struct {
	calls   int
	failOn  int // 1-based call number to fail on, 0 means never
	lastErr error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failOn > 0 && f.calls >= f.failOn {
		f.lastErr = &types.EmbeddingError{Err: errors.New("quota exceeded")}
		return nil, f.lastErr
	}
	return []float32{float32(len(text)), 1, 2}, nil
}

type fakeIndex struct {
	puts    map[string]types.VectorMetadata
	queries []types.QueryMatch
	putErr  error
	qErr    error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{puts: map[string]types.VectorMetadata{}}
}

func (f *fakeIndex) Put(ctx context.Context, meta types.VectorMetadata, vector []float32) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts[meta.Key()] = meta
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, vector []float32, k int) ([]types.QueryMatch, error) {
	if f.qErr != nil {
		return nil, f.qErr
	}
	if len(f.queries) > k {
		return f.queries[:k], nil
	}
	return f.queries, nil
}

type fakeDocumentRepo struct {
	nextID    int64
	pages     []*types.DocumentPage
	processed map[int64]bool
	pageErr   error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{processed: map[int64]bool{}}
}

func (f *fakeDocumentRepo) CreateDocument(ctx context.Context, doc *types.Document) error {
	f.nextID++
	doc.ID = f.nextID
	return nil
}

func (f *fakeDocumentRepo) GetDocument(ctx context.Context, id int64) (*types.Document, error) {
	return nil, errors.New("not found")
}

func (f *fakeDocumentRepo) ListDocuments(ctx context.Context) ([]*types.Document, error) {
	return nil, nil
}

func (f *fakeDocumentRepo) MarkProcessed(ctx context.Context, id int64) error {
	f.processed[id] = true
	return nil
}

func (f *fakeDocumentRepo) CreatePage(ctx context.Context, page *types.DocumentPage) error {
	if f.pageErr != nil {
		return f.pageErr
	}
	f.pages = append(f.pages, page)
	return nil
}

func (f *fakeDocumentRepo) ListPages(ctx context.Context, documentID int64) ([]*types.DocumentPage, error) {
	return f.pages, nil
}

func TestProcessDocumentIndexesEveryChunk(t *testing.T) {
	// Two pages, small chunk limit so each page splits into several chunks.
	extractor := &fakeExtractor{pages: []types.Page{
		{Number: 1, Text: "tomato soup with fresh basil and cream"},
		{Number: 2, Text: "bake the bread at high heat"},
	}}
	embedder := &fakeEmbedder{}
	index := newFakeIndex()
	repo := newFakeDocumentRepo()
	svc := NewIngestService(extractor, NewChunkService(12), embedder, index, repo)

	doc := &types.Document{ID: 7, Title: "Cookbook", FilePath: "cookbook.pdf"}
	if err := svc.ProcessDocument(context.Background(), doc); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}

	chunker := NewChunkService(12)
	want := 0
	for _, p := range extractor.pages {
		want += len(chunker.Split(p.Text))
	}
	if len(index.puts) != want {
		t.Errorf("indexed %d records, want %d", len(index.puts), want)
	}
	if embedder.calls != want {
		t.Errorf("embedder called %d times, want %d", embedder.calls, want)
	}
	if len(repo.pages) != 2 {
		t.Errorf("stored %d pages, want 2", len(repo.pages))
	}
	if !repo.processed[7] || !doc.IsProcessed {
		t.Error("document not marked processed")
	}
}

func TestProcessDocumentRecordKeys(t *testing.T) {
	extractor := &fakeExtractor{pages: []types.Page{
		{Number: 1, Text: "one two three four"},
	}}
	index := newFakeIndex()
	svc := NewIngestService(extractor, NewChunkService(9), &fakeEmbedder{}, index, newFakeDocumentRepo())

	doc := &types.Document{ID: 3, Title: "Recipes", FilePath: "r.pdf"}
	if err := svc.ProcessDocument(context.Background(), doc); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}

	for key, meta := range index.puts {
		wantKey := fmt.Sprintf("doc3_p1_c%d", meta.ChunkIndex)
		if key != wantKey {
			t.Errorf("record key = %q, want %q", key, wantKey)
		}
		if meta.Title != "Recipes" {
			t.Errorf("meta.Title = %q, want Recipes", meta.Title)
		}
		if meta.ChunkText == "" {
			t.Errorf("record %s has empty chunk text", key)
		}
	}
}

func TestProcessDocumentEmptyPageProducesNoVectors(t *testing.T) {
	extractor := &fakeExtractor{pages: []types.Page{
		{Number: 1, Text: ""},
		{Number: 2, Text: "stir well"},
	}}
	index := newFakeIndex()
	repo := newFakeDocumentRepo()
	svc := NewIngestService(extractor, NewChunkService(100), &fakeEmbedder{}, index, repo)

	doc := &types.Document{ID: 1, Title: "T", FilePath: "t.pdf"}
	if err := svc.ProcessDocument(context.Background(), doc); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}

	// The empty page is still persisted but contributes no vector records.
	if len(repo.pages) != 2 {
		t.Errorf("stored %d pages, want 2", len(repo.pages))
	}
	if len(index.puts) != 1 {
		t.Errorf("indexed %d records, want 1", len(index.puts))
	}
	if _, ok := index.puts["doc1_p2_c0"]; !ok {
		t.Error("missing record doc1_p2_c0")
	}
}

func TestProcessDocumentEmbeddingFailureAbortsWithoutRollback(t *testing.T) {
	extractor := &fakeExtractor{pages: []types.Page{
		{Number: 1, Text: "first page"},
		{Number: 2, Text: "second page"},
		{Number: 3, Text: "third page"},
	}}
	// First page embeds, the second page's chunk fails.
	embedder := &fakeEmbedder{failOn: 2}
	index := newFakeIndex()
	repo := newFakeDocumentRepo()
	svc := NewIngestService(extractor, NewChunkService(100), embedder, index, repo)

	doc := &types.Document{ID: 5, Title: "T", FilePath: "t.pdf"}
	err := svc.ProcessDocument(context.Background(), doc)
	if err == nil {
		t.Fatal("expected error")
	}
	if !types.IsEmbeddingError(err) {
		t.Errorf("error %v does not wrap EmbeddingError", err)
	}
	if !strings.Contains(err.Error(), "page 2") {
		t.Errorf("error %q does not name the failing page", err)
	}

	// Page 1's vector stays indexed; the document stays unprocessed.
	if len(index.puts) != 1 {
		t.Errorf("indexed %d records, want 1", len(index.puts))
	}
	if repo.processed[5] || doc.IsProcessed {
		t.Error("failed document must not be marked processed")
	}
}

func TestProcessDocumentExtractionFailureIsFatal(t *testing.T) {
	extractor := &fakeExtractor{err: &types.ExtractionError{Source: "bad.pdf", Err: errors.New("not a PDF")}}
	index := newFakeIndex()
	repo := newFakeDocumentRepo()
	svc := NewIngestService(extractor, NewChunkService(100), &fakeEmbedder{}, index, repo)

	err := svc.ProcessDocument(context.Background(), &types.Document{ID: 9, FilePath: "bad.pdf"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !types.IsExtractionError(err) {
		t.Errorf("error %v does not wrap ExtractionError", err)
	}
	if len(index.puts) != 0 || len(repo.pages) != 0 {
		t.Error("nothing should be written when extraction fails")
	}
}
