package process

import (
	"context"
	"strings"
	"testing"

	"docuchat-backend/internal/textproc"
)

func newTestProcessor() *TextProcessor {
	return NewTextProcessor(
		textproc.NewCleaner(),
		textproc.NewAlgorithmicChunker(textproc.DefaultAlgorithmicConfig()),
	)
}

func TestGeneratePreview_Totals(t *testing.T) {
	p := newTestProcessor()

	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("Each preview sentence repeats a similar pattern with distinct filler phrasing. ")
	}
	preview, err := p.GeneratePreview(context.Background(), b.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if preview.TotalChunks != len(preview.Chunks) {
		t.Fatalf("total_chunks %d disagrees with chunk list %d", preview.TotalChunks, len(preview.Chunks))
	}
	sum := 0
	for i, ch := range preview.Chunks {
		if ch.ID != i+1 {
			t.Fatalf("preview ids must be 1-based and dense, got %d at %d", ch.ID, i)
		}
		if ch.Chars != len([]rune(ch.Content)) {
			t.Fatalf("chunk %d char count mismatch", ch.ID)
		}
		sum += ch.Chars
	}
	if preview.TotalChars != sum {
		t.Fatalf("total_chars %d disagrees with sum %d", preview.TotalChars, sum)
	}
	if !strings.HasSuffix(preview.SuggestedName, "_doc.txt") {
		t.Fatalf("unexpected suggested name %q", preview.SuggestedName)
	}
}

func TestGeneratePreview_Empty(t *testing.T) {
	p := newTestProcessor()
	preview, err := p.GeneratePreview(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if preview.TotalChunks != 0 || preview.CleanedText != "" {
		t.Fatalf("empty input must preview empty, got %+v", preview)
	}
}
