package textproc

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// buildSentences returns n distinct sentences of roughly uniform length
// that survive flattening and sentence splitting unchanged.
func buildSentences(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("Sentence number %02d carries some additional filler words for sizing.", i))
	}
	return out
}

func TestChunk_Empty(t *testing.T) {
	c := NewAlgorithmicChunker(DefaultAlgorithmicConfig())
	if got := c.Chunk(""); len(got) != 0 {
		t.Fatalf("empty input must yield no chunks, got %v", got)
	}
}

func TestChunk_Deterministic(t *testing.T) {
	c := NewAlgorithmicChunker(DefaultAlgorithmicConfig())
	in := strings.Join(buildSentences(30), " ")
	a := c.Chunk(in)
	b := c.Chunk(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("repeat calls with identical input must yield identical chunks")
	}
}

func TestChunk_SizesWithinMax(t *testing.T) {
	cfg := DefaultAlgorithmicConfig()
	c := NewAlgorithmicChunker(cfg)
	chunks := c.Chunk(strings.Join(buildSentences(40), " "))
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for _, ch := range chunks {
		if ch.Chars > cfg.MaxSize {
			t.Fatalf("chunk %d has %d chars, exceeds max %d", ch.Index, ch.Chars, cfg.MaxSize)
		}
		if ch.Index < 0 || ch.Content == "" {
			t.Fatalf("malformed chunk: %+v", ch)
		}
	}
}

func TestChunk_SentenceOverlap(t *testing.T) {
	c := NewAlgorithmicChunker(DefaultAlgorithmicConfig())
	sentences := buildSentences(40)
	chunks := c.Chunk(strings.Join(sentences, " "))
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// With OverlapSentences=1, each chunk must open with the exact final
	// sentence of its predecessor.
	for i := 1; i < len(chunks); i++ {
		var tail string
		for _, s := range sentences {
			if strings.HasSuffix(chunks[i-1].Content, s) {
				tail = s
				break
			}
		}
		if tail == "" {
			t.Fatalf("could not identify final sentence of chunk %d: %q", i-1, chunks[i-1].Content)
		}
		if !strings.HasPrefix(chunks[i].Content, tail) {
			t.Fatalf("chunk %d does not start with overlap sentence %q: %q", i, tail, chunks[i].Content)
		}
	}
}

func TestChunk_MegaSentenceWordPacking(t *testing.T) {
	cfg := DefaultAlgorithmicConfig()
	c := NewAlgorithmicChunker(cfg)

	// A single 2000-char "sentence" with no internal punctuation must be
	// split at word boundaries and reassemble exactly.
	words := make([]string, 400)
	for i := range words {
		words[i] = "word"
	}
	sentence := strings.Join(words, " ")

	chunks := c.Chunk(sentence)
	if len(chunks) < 4 {
		t.Fatalf("expected at least 4 chunks, got %d", len(chunks))
	}
	var parts []string
	for _, ch := range chunks {
		if ch.Chars > cfg.MaxSize {
			t.Fatalf("chunk %d has %d chars, exceeds max %d", ch.Index, ch.Chars, cfg.MaxSize)
		}
		parts = append(parts, ch.Content)
	}
	if strings.Join(parts, " ") != sentence {
		t.Fatal("word-packed chunks do not reassemble to the original sentence")
	}
}

func TestChunk_SingleOversizedWord(t *testing.T) {
	cfg := DefaultAlgorithmicConfig()
	c := NewAlgorithmicChunker(cfg)
	word := strings.Repeat("x", cfg.MaxSize+50)
	chunks := c.Chunk(word)
	if len(chunks) != 1 {
		t.Fatalf("expected one oversized chunk, got %d", len(chunks))
	}
	// Accepted edge case: a lone word longer than MaxSize stays whole.
	if chunks[0].Content != word {
		t.Fatal("oversized word must be emitted unbroken")
	}
}

func TestChunk_ArtifactsStripped(t *testing.T) {
	c := NewAlgorithmicChunker(DefaultAlgorithmicConfig())
	in := "Header: Confidential\n" +
		"Page 3 of 10\n" +
		"Real content begins with a sentence of reasonable length here.\n" +
		"=====\n" +
		"It continues with another sentence after a separator line.\n" +
		"Footer: Internal\n"
	chunks := c.Chunk(in)
	if len(chunks) == 0 {
		t.Fatal("expected chunks from real content")
	}
	for _, ch := range chunks {
		if strings.Contains(ch.Content, "Header:") || strings.Contains(ch.Content, "Footer:") ||
			strings.Contains(ch.Content, "Page 3") || strings.Contains(ch.Content, "=====") {
			t.Fatalf("artifact survived cleaning: %q", ch.Content)
		}
		if strings.Contains(ch.Content, "\n") {
			t.Fatalf("flattened chunk must not contain newlines: %q", ch.Content)
		}
	}
}

func TestChunk_ShortInputSingleChunk(t *testing.T) {
	c := NewAlgorithmicChunker(DefaultAlgorithmicConfig())
	chunks := c.Chunk("Just one small sentence.")
	if len(chunks) != 1 {
		t.Fatalf("expected one chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "Just one small sentence." {
		t.Fatalf("unexpected content %q", chunks[0].Content)
	}
	if chunks[0].Chars != len("Just one small sentence.") {
		t.Fatalf("unexpected char count %d", chunks[0].Chars)
	}
}
