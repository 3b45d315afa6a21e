package service

import "strings"

// DefaultMaxChunkLength bounds a chunk's word-plus-separator content.
const DefaultMaxChunkLength = 1000

// ChunkService splits page text into bounded-length chunks for embedding.
// The split is word-greedy: whitespace-delimited words are packed into a
// chunk until the next word would push it past the limit, then a new chunk
// starts. Words are never split, so a single word longer than the limit
// still becomes its own chunk. No content awareness, no overlap; every word
// lands in exactly one chunk in its original order.
type ChunkService struct {
	maxLength int
}

func NewChunkService(maxLength int) *ChunkService {
	if maxLength <= 0 {
		maxLength = DefaultMaxChunkLength
	}
	return &ChunkService{maxLength: maxLength}
}

func (s *ChunkService) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	length := 0
	for _, w := range words {
		// An empty buffer always accepts its first word, whatever its size.
		if len(current) > 0 && length+len(w)+1 > s.maxLength {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			length = 0
		}
		current = append(current, w)
		length += len(w) + 1
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
