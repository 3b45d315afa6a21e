package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "extraction error",
			err:  &ExtractionError{Source: "menu.pdf", Err: errors.New("bad header")},
			want: "extraction failed for menu.pdf: bad header",
		},
		{
			name: "embedding error",
			err:  &EmbeddingError{Err: errors.New("quota exceeded")},
			want: "embedding failed: quota exceeded",
		},
		{
			name: "index write error with key",
			err:  &IndexError{Op: "put", Key: "doc1_p1_c0", Err: errors.New("timeout")},
			want: "vector index put doc1_p1_c0: timeout",
		},
		{
			name: "index query error without key",
			err:  &IndexError{Op: "query", Err: errors.New("timeout")},
			want: "vector index query: timeout",
		},
		{
			name: "generation error",
			err:  &GenerationError{Err: errors.New("model overloaded")},
			want: "generation failed: model overloaded",
		},
		{
			name: "upstream data error",
			err:  &UpstreamDataError{Source: "openweather", Err: errors.New("missing field main")},
			want: "bad upstream data from openweather: missing field main",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorClassifiersSeeThroughWrapping(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"extraction", &ExtractionError{Source: "x", Err: cause}, IsExtractionError},
		{"embedding", &EmbeddingError{Err: cause}, IsEmbeddingError},
		{"index", &IndexError{Op: "put", Err: cause}, IsIndexError},
		{"generation", &GenerationError{Err: cause}, IsGenerationError},
		{"upstream", &UpstreamDataError{Source: "x", Err: cause}, IsUpstreamDataError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("processing document 7: %w", tt.err)
			if !tt.check(wrapped) {
				t.Errorf("classifier did not match wrapped %T", tt.err)
			}
			if tt.check(cause) {
				t.Errorf("classifier matched bare cause for %T", tt.err)
			}
			if !errors.Is(wrapped, cause) {
				t.Errorf("Unwrap chain lost the cause for %T", tt.err)
			}
		})
	}
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		label string
		want  Intent
	}{
		{"food", IntentFood},
		{"weather", IntentWeather},
		{"other", IntentOther},
		{"", IntentOther},
		{"recipes", IntentOther},
		{"FOOD", IntentOther},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ParseIntent(tt.label); got != tt.want {
				t.Errorf("ParseIntent(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestChunkKeyFormat(t *testing.T) {
	if got := ChunkKey(12, 3, 0); got != "doc12_p3_c0" {
		t.Errorf("ChunkKey(12, 3, 0) = %q, want %q", got, "doc12_p3_c0")
	}
	if got := ChunkKey(1, 10, 25); got != "doc1_p10_c25" {
		t.Errorf("ChunkKey(1, 10, 25) = %q, want %q", got, "doc1_p10_c25")
	}
}
