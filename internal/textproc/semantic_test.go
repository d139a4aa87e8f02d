package textproc

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubBatcher is a canned embedding collaborator; it records what it was
// asked to embed so tests stay hermetic.
type stubBatcher struct {
	vectors  [][]float32
	err      error
	gotTexts []string
}

func (s *stubBatcher) GenerateEmbeddingsBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.gotTexts = texts
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors, nil
}

// threeAtomConfig makes each short test sentence its own atom.
func threeAtomConfig() SemanticConfig {
	return SemanticConfig{AtomicSize: 10, SimilarityThreshold: 0.5, MaxChunkSize: 2000}
}

const threeSentences = "Cats purr. Cats nap. Dogs bark."

func TestChunkText_MergeBySimilarity(t *testing.T) {
	// atom0/atom1 similar, atom1/atom2 not: expect [merge(0,1), 2].
	stub := &stubBatcher{vectors: [][]float32{{1, 0}, {1, 0}, {0, 1}}}
	c := NewSemanticChunker(threeAtomConfig(), stub)

	chunks, err := c.ChunkText(context.Background(), threeSentences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stub.gotTexts) != 3 {
		t.Fatalf("expected one batch call with 3 atoms, got %v", stub.gotTexts)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %v", chunks)
	}
	if chunks[0].Content != "Cats purr. Cats nap." || chunks[1].Content != "Dogs bark." {
		t.Fatalf("unexpected merge result: %v", chunks)
	}
	if chunks[0].Index != 0 || chunks[1].Index != 1 {
		t.Fatalf("chunk indices must be ordinal: %v", chunks)
	}
}

func TestChunkText_SizeCapBlocksMerge(t *testing.T) {
	// All atoms similar, but the buffer cap forbids merging.
	stub := &stubBatcher{vectors: [][]float32{{1, 0}, {1, 0}, {1, 0}}}
	cfg := threeAtomConfig()
	cfg.MaxChunkSize = 12
	c := NewSemanticChunker(cfg, stub)

	chunks, err := c.ChunkText(context.Background(), threeSentences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("size cap should keep atoms apart, got %v", chunks)
	}
}

func TestChunkText_PartialBatchTruncates(t *testing.T) {
	// Two vectors for three atoms: processing stops at the last embedded
	// atom and the tail is silently dropped. Known caveat, not an error.
	stub := &stubBatcher{vectors: [][]float32{{1, 0}, {0, 1}}}
	c := NewSemanticChunker(threeAtomConfig(), stub)

	chunks, err := c.ChunkText(context.Background(), threeSentences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var all []string
	for _, ch := range chunks {
		if strings.Contains(ch.Content, "Dogs") {
			t.Fatalf("unembedded tail atom leaked into output: %v", chunks)
		}
		all = append(all, ch.Content)
	}
	if strings.Join(all, " ") != "Cats purr. Cats nap." {
		t.Fatalf("expected chunks covering exactly the first two atoms, got %v", chunks)
	}
}

func TestChunkText_EmbedderErrorPropagates(t *testing.T) {
	wantErr := errors.New("embedding backend down")
	c := NewSemanticChunker(threeAtomConfig(), &stubBatcher{err: wantErr})

	if _, err := c.ChunkText(context.Background(), threeSentences); !errors.Is(err, wantErr) {
		t.Fatalf("expected embedder error, got %v", err)
	}
}

func TestChunkText_Empty(t *testing.T) {
	stub := &stubBatcher{}
	c := NewSemanticChunker(threeAtomConfig(), stub)

	chunks, err := c.ChunkText(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %v", chunks)
	}
	if stub.gotTexts != nil {
		t.Fatal("embedder must not be called for empty input")
	}
}

func TestChunkText_SingleAtom(t *testing.T) {
	stub := &stubBatcher{vectors: [][]float32{{1, 0}}}
	c := NewSemanticChunker(SemanticConfig{AtomicSize: 100, SimilarityThreshold: 0.5, MaxChunkSize: 2000}, stub)

	chunks, err := c.ChunkText(context.Background(), "Only one small sentence here.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Content != "Only one small sentence here." {
		t.Fatalf("expected the lone atom back, got %v", chunks)
	}
}

func TestAtomize_PacksWithinBudget(t *testing.T) {
	c := NewSemanticChunker(SemanticConfig{AtomicSize: 25, SimilarityThreshold: 0.5, MaxChunkSize: 2000}, &stubBatcher{})
	atoms := c.atomize("One two. Three four. Five six. Seven eight.")
	if len(atoms) < 2 {
		t.Fatalf("expected multiple atoms, got %v", atoms)
	}
	// Atoms must not overlap and must preserve order.
	if strings.Join(atoms, " ") != "One two. Three four. Five six. Seven eight." {
		t.Fatalf("atoms must reassemble to the input, got %v", atoms)
	}
}
