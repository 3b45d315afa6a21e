package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/convoai/convo-be/config"
	"github.com/convoai/convo-be/types"
)

// chunkNamespace scopes the deterministic object UUIDs derived from chunk keys.
var chunkNamespace = uuid.MustParse("8ec64c5f-6a74-4f2e-9f3b-21d1c4b6a0d7")

func documentChunkClass(name string) *models.Class {
	return &models.Class{
		Class: name,
		Properties: []*models.Property{
			{Name: "chunkKey", DataType: []string{"text"}},
			{Name: "documentId", DataType: []string{"int"}},
			{Name: "pageNumber", DataType: []string{"int"}},
			{Name: "chunkIndex", DataType: []string{"int"}},
			{Name: "title", DataType: []string{"text"}},
			{Name: "chunkText", DataType: []string{"text"}},
		},
		// Vectors are computed by the embedding service and pushed in.
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
	}
}

// WeaviateStore implements VectorIndex on a Weaviate instance. Similarity is
// cosine distance as reported by Weaviate's nearVector search.
type WeaviateStore struct {
	client  *weaviate.Client
	class   string
	timeout time.Duration
}

func NewWeaviateStore(cfg config.WeaviateConfig, timeout time.Duration) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	clientCfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		clientCfg.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
	}
	client, err := weaviate.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	store := &WeaviateStore{
		client:  client,
		class:   cfg.Class,
		timeout: timeout,
	}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *WeaviateStore) ensureSchema(ctx context.Context) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema: %w", err)
	}
	for _, class := range schema.Classes {
		if class.Class == s.class {
			return nil
		}
	}
	err = s.client.Schema().ClassCreator().WithClass(documentChunkClass(s.class)).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create %s class: %w", s.class, err)
	}
	return nil
}

// ChunkObjectID folds the stable record key into a deterministic object UUID,
// so a second put of the same key replaces the first object instead of
// creating a duplicate.
func ChunkObjectID(key string) strfmt.UUID {
	return strfmt.UUID(uuid.NewSHA1(chunkNamespace, []byte(key)).String())
}

func (s *WeaviateStore) Put(ctx context.Context, meta types.VectorMetadata, vector []float32) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := meta.Key()
	obj := &models.Object{
		Class:      s.class,
		ID:         ChunkObjectID(key),
		Vector:     vector,
		Properties: chunkProperties(meta),
	}

	// The batcher upserts by object ID, which makes Put idempotent per key.
	resp, err := s.client.Batch().ObjectsBatcher().WithObjects(obj).Do(ctx)
	if err != nil {
		return &types.IndexError{Op: "put", Key: key, Err: err}
	}
	for _, r := range resp {
		if r.Result != nil && r.Result.Errors != nil && len(r.Result.Errors.Error) > 0 {
			return &types.IndexError{Op: "put", Key: key, Err: fmt.Errorf("%s", r.Result.Errors.Error[0].Message)}
		}
	}
	return nil
}

func (s *WeaviateStore) Query(ctx context.Context, vector []float32, k int) ([]types.QueryMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fields := []graphql.Field{
		{Name: "chunkKey"},
		{Name: "documentId"},
		{Name: "pageNumber"},
		{Name: "chunkIndex"},
		{Name: "title"},
		{Name: "chunkText"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
	}
	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

	result, err := s.client.GraphQL().Get().
		WithClassName(s.class).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, &types.IndexError{Op: "query", Err: err}
	}
	if result.Errors != nil {
		return nil, &types.IndexError{Op: "query", Err: fmt.Errorf("%s", result.Errors[0].Message)}
	}

	matches := make([]types.QueryMatch, 0, k)
	getData, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return matches, nil
	}
	data, ok := getData[s.class].([]interface{})
	if !ok {
		return matches, nil
	}
	for _, item := range data {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		match := types.QueryMatch{Metadata: parseChunkMetadata(obj)}
		if additional, ok := obj["_additional"].(map[string]interface{}); ok {
			if d, ok := additional["distance"].(float64); ok {
				match.Distance = float32(d)
				match.Score = 1 - float32(d)
			}
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func chunkProperties(meta types.VectorMetadata) map[string]interface{} {
	return map[string]interface{}{
		"chunkKey":   meta.Key(),
		"documentId": meta.DocumentID,
		"pageNumber": meta.PageNumber,
		"chunkIndex": meta.ChunkIndex,
		"title":      meta.Title,
		"chunkText":  meta.ChunkText,
	}
}

func parseChunkMetadata(obj map[string]interface{}) types.VectorMetadata {
	meta := types.VectorMetadata{}
	if v, ok := obj["documentId"].(float64); ok {
		meta.DocumentID = int64(v)
	}
	if v, ok := obj["pageNumber"].(float64); ok {
		meta.PageNumber = int(v)
	}
	if v, ok := obj["chunkIndex"].(float64); ok {
		meta.ChunkIndex = int(v)
	}
	if v, ok := obj["title"].(string); ok {
		meta.Title = v
	}
	if v, ok := obj["chunkText"].(string); ok {
		meta.ChunkText = v
	}
	return meta
}
