package textproc

import (
	"context"
	"strings"
)

// EmbeddingBatcher is the collaborator the semantic strategy depends on.
// Implementations must preserve input order and, on success, return one
// vector per input. A short return is tolerated; see ChunkText.
type EmbeddingBatcher interface {
	GenerateEmbeddingsBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// SemanticConfig carries the semantic-merge parameters. AtomicSize and
// MaxChunkSize are rune counts; fields are fixed at construction.
type SemanticConfig struct {
	AtomicSize          int
	SimilarityThreshold float32
	MaxChunkSize        int
}

func DefaultSemanticConfig() SemanticConfig {
	return SemanticConfig{
		AtomicSize:          500,
		SimilarityThreshold: 0.80,
		MaxChunkSize:        2000,
	}
}

// SemanticChunker is the embedding-driven strategy: it packs sentences
// into small atoms, embeds all atoms in one batch, then merges adjacent
// atoms whose embeddings score above the similarity threshold.
type SemanticChunker struct {
	cfg      SemanticConfig
	embedder EmbeddingBatcher
}

func NewSemanticChunker(cfg SemanticConfig, embedder EmbeddingBatcher) *SemanticChunker {
	def := DefaultSemanticConfig()
	if cfg.AtomicSize <= 0 {
		cfg.AtomicSize = def.AtomicSize
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = def.SimilarityThreshold
	}
	if cfg.MaxChunkSize <= 0 {
		cfg.MaxChunkSize = def.MaxChunkSize
	}
	return &SemanticChunker{cfg: cfg, embedder: embedder}
}

// atomize greedily packs consecutive sentences into atoms of at most
// AtomicSize runes. Atoms never overlap and keep document order.
func (c *SemanticChunker) atomize(text string) []string {
	sentences := splitSimple(text)

	var atoms []string
	var cur []string
	size := 0
	for _, s := range sentences {
		sl := runeLen(s)
		if size+sl > c.cfg.AtomicSize {
			if len(cur) > 0 {
				atoms = append(atoms, strings.Join(cur, " "))
			}
			cur = []string{s}
			size = sl
		} else {
			cur = append(cur, s)
			size += sl
		}
	}
	if len(cur) > 0 {
		atoms = append(atoms, strings.Join(cur, " "))
	}
	return atoms
}

// ChunkText atomizes text, embeds all atoms in one batch call, then
// walks the atoms merging each into the running buffer when its score
// against the previous atom exceeds SimilarityThreshold and the buffer
// stays within MaxChunkSize.
//
// The score is the raw dot product of adjacent atom vectors. It equals
// cosine similarity only when the provider returns unit-normalized
// vectors; the threshold is calibrated under that assumption, so the
// product is deliberately not re-normalized here.
//
// If the provider returns fewer vectors than atoms, the walk stops at
// the last embedded atom and the unembedded tail is dropped without an
// error. Integrators who need the full document chunked must use a
// provider that either returns a complete batch or fails outright.
// The only error surfaced is the batch call's own.
func (c *SemanticChunker) ChunkText(ctx context.Context, text string) ([]Chunk, error) {
	atoms := c.atomize(text)
	if len(atoms) == 0 {
		return []Chunk{}, nil
	}

	vectors, err := c.embedder.GenerateEmbeddingsBatch(ctx, atoms)
	if err != nil {
		return nil, err
	}

	var pieces []string
	buf := []string{atoms[0]}
	size := runeLen(atoms[0])

	for i := 1; i < len(atoms); i++ {
		if i >= len(vectors) {
			break
		}
		score := dot(vectors[i], vectors[i-1])
		related := score > c.cfg.SimilarityThreshold
		fits := size+runeLen(atoms[i]) <= c.cfg.MaxChunkSize

		if related && fits {
			buf = append(buf, atoms[i])
			size += runeLen(atoms[i])
		} else {
			pieces = append(pieces, strings.Join(buf, " "))
			buf = []string{atoms[i]}
			size = runeLen(atoms[i])
		}
	}
	pieces = append(pieces, strings.Join(buf, " "))

	return makeChunks(pieces), nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
