// Package textproc turns raw extracted document text into bounded-size,
// context-preserving chunks ready for embedding and retrieval.
//
// Two alternative chunking strategies are provided. AlgorithmicChunker is
// the default production path: a deterministic, sentence-aware sliding
// window that needs no external services. SemanticChunker is an optional
// strategy that merges small text atoms by embedding similarity and
// depends on an embedding collaborator. The strategies are alternatives,
// not a pipeline; callers pick one at construction time.
//
// All types in this package are stateless after construction and safe to
// share across goroutines.
package textproc

import (
	"context"
	"unicode/utf8"
)

// Chunk is one bounded unit of text emitted for embedding and storage.
// Index is the chunk's ordinal position within a single chunking call;
// chunks carry no identity beyond that.
type Chunk struct {
	Index   int    `json:"index"`
	Content string `json:"content"`
	Chars   int    `json:"chars"`
}

// Chunker is the strategy surface shared by both chunkers.
type Chunker interface {
	ChunkText(ctx context.Context, text string) ([]Chunk, error)
}

var (
	_ Chunker = (*AlgorithmicChunker)(nil)
	_ Chunker = (*SemanticChunker)(nil)
)

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func makeChunks(pieces []string) []Chunk {
	chunks := make([]Chunk, 0, len(pieces))
	for i, p := range pieces {
		chunks = append(chunks, Chunk{Index: i, Content: p, Chars: runeLen(p)})
	}
	return chunks
}
