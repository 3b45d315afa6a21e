package service

import (
	"strings"
	"testing"
)

func TestSplitEmptyText(t *testing.T) {
	s := NewChunkService(1000)
	if chunks := s.Split(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %v", chunks)
	}
	if chunks := s.Split("  \n\t  "); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace-only text, got %v", chunks)
	}
}

func TestSplitSingleChunk(t *testing.T) {
	s := NewChunkService(1000)
	chunks := s.Split("The soup recipe requires onions and broth.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "The soup recipe requires onions and broth." {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestSplitBoundary(t *testing.T) {
	// Each word costs len(word)+1. With max_length=3, "a" leaves the running
	// length at 2 and the next word would need 2 more, so every word ends up
	// in its own chunk.
	s := NewChunkService(3)
	chunks := s.Split("a b c")
	want := []string{"a", "b", "c"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %v", len(want), len(chunks), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk[%d] = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplitExactFit(t *testing.T) {
	// "ab cd" with max_length 6: "ab" costs 3, "cd" costs 3 more, total 6.
	s := NewChunkService(6)
	chunks := s.Split("ab cd")
	if len(chunks) != 1 || chunks[0] != "ab cd" {
		t.Errorf("expected single chunk \"ab cd\", got %v", chunks)
	}

	// One character less and the second word no longer fits.
	s = NewChunkService(5)
	chunks = s.Split("ab cd")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %v", chunks)
	}
}

func TestSplitOversizedWord(t *testing.T) {
	s := NewChunkService(10)
	long := strings.Repeat("x", 50)
	chunks := s.Split("ab " + long + " cd")
	want := []string{"ab", long, "cd"}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk[%d] = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplitPreservesWordSequence(t *testing.T) {
	texts := []string{
		"one two three four five six seven eight nine ten",
		"word",
		strings.Repeat("lorem ipsum dolor sit amet ", 200),
		"short " + strings.Repeat("y", 120) + " tail words here",
	}
	for _, text := range texts {
		for _, max := range []int{5, 20, 64, 1000} {
			s := NewChunkService(max)
			chunks := s.Split(text)

			var rejoined []string
			for _, c := range chunks {
				rejoined = append(rejoined, strings.Fields(c)...)
			}
			original := strings.Fields(text)
			if len(rejoined) != len(original) {
				t.Fatalf("max=%d: word count changed from %d to %d", max, len(original), len(rejoined))
			}
			for i := range original {
				if rejoined[i] != original[i] {
					t.Fatalf("max=%d: word[%d] = %q, want %q", max, i, rejoined[i], original[i])
				}
			}

			// No chunk beyond a single oversized word may exceed the limit.
			for _, c := range chunks {
				if len(strings.Fields(c)) > 1 && len(c)+1 > max {
					t.Errorf("max=%d: multi-word chunk exceeds limit: %q (len %d)", max, c, len(c))
				}
			}
		}
	}
}

func TestSplitTinyLimitOneWordPerChunk(t *testing.T) {
	s := NewChunkService(1)
	chunks := s.Split("aa bb cc")
	if len(chunks) != 3 {
		t.Fatalf("expected one chunk per word, got %v", chunks)
	}
}

func TestNewChunkServiceDefault(t *testing.T) {
	s := NewChunkService(0)
	if s.maxLength != DefaultMaxChunkLength {
		t.Errorf("maxLength = %d, want %d", s.maxLength, DefaultMaxChunkLength)
	}
}
