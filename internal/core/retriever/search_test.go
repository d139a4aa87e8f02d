package retriever

import (
	"context"
	"testing"
	"time"
)

func TestEmbedQuestion_Empty(t *testing.T) {
	if _, err := EmbedQuestion(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty question")
	}
}

func TestSearchMilvus_EmptyVector(t *testing.T) {
	hits, err := SearchMilvus(context.Background(), nil, 10, Filters{})
	if err != nil {
		t.Fatalf("empty query vector must short-circuit, got %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits, got %v", hits)
	}
}

// Full end-to-end search needs a running Milvus; to keep the test
// hermetic we only assert that a tiny deadline prevents any hang.
func TestSearchMilvus_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := SearchMilvus(ctx, make([]float32, 1536), 10, Filters{})
	if err == nil {
		t.Log("search completed without error (Milvus may be running locally)")
	}
}

func TestBuildExpr(t *testing.T) {
	if got := buildExpr(Filters{}); got != "" {
		t.Fatalf("no filters should build no expression, got %q", got)
	}
	if got := buildExpr(Filters{DocIDs: []int64{3, 7}}); got != "doc_id in [3, 7]" {
		t.Fatalf("unexpected expression %q", got)
	}
}
