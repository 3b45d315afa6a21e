package types

import (
	"errors"
	"fmt"
)

// ExtractionError reports a source document that could not be opened or
// parsed at all. It is fatal to that document's ingestion.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EmbeddingError reports a failed embedding model call. It aborts the
// enclosing ingestion step or query; it is never defaulted to a zero vector.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// IndexError reports a vector store read or write failure.
type IndexError struct {
	Op  string // "put" or "query"
	Key string // record key for writes, empty for queries
	Err error
}

func (e *IndexError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("vector index %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("vector index %s: %v", e.Op, e.Err)
}

func (e *IndexError) Unwrap() error { return e.Err }

// GenerationError reports a failed LLM completion call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UpstreamDataError reports malformed or missing data from a collaborator,
// e.g. a weather payload without the expected fields.
type UpstreamDataError struct {
	Source string
	Err    error
}

func (e *UpstreamDataError) Error() string {
	return fmt.Sprintf("bad upstream data from %s: %v", e.Source, e.Err)
}

func (e *UpstreamDataError) Unwrap() error { return e.Err }

// IsExtractionError reports whether err is or wraps an ExtractionError.
func IsExtractionError(err error) bool {
	var target *ExtractionError
	return errors.As(err, &target)
}

// IsEmbeddingError reports whether err is or wraps an EmbeddingError.
func IsEmbeddingError(err error) bool {
	var target *EmbeddingError
	return errors.As(err, &target)
}

// IsIndexError reports whether err is or wraps an IndexError.
func IsIndexError(err error) bool {
	var target *IndexError
	return errors.As(err, &target)
}

// IsGenerationError reports whether err is or wraps a GenerationError.
func IsGenerationError(err error) bool {
	var target *GenerationError
	return errors.As(err, &target)
}

// IsUpstreamDataError reports whether err is or wraps an UpstreamDataError.
func IsUpstreamDataError(err error) bool {
	var target *UpstreamDataError
	return errors.As(err, &target)
}
