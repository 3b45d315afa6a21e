package database

import (
	"context"

	"github.com/convoai/convo-be/types"
)

// VectorIndex is the durable similarity store for chunk embeddings.
type VectorIndex interface {
	// Put writes one (key, vector, metadata) record. Writing the same key
	// twice overwrites in place, so re-ingestion cannot corrupt the index.
	Put(ctx context.Context, meta types.VectorMetadata, vector []float32) error

	// Query returns up to k records ranked by ascending cosine distance.
	// An empty index yields an empty slice, not an error.
	Query(ctx context.Context, vector []float32, k int) ([]types.QueryMatch, error)
}
