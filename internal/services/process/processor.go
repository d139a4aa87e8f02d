// Package process offers a clean-and-chunk preview over the text
// engine, so operators can inspect exactly what a document would be
// split into before committing an ingestion run.
package process

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docuchat-backend/internal/textproc"
)

type PreviewChunk struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	Chars   int    `json:"chars"`
}

type Preview struct {
	Chunks        []PreviewChunk `json:"chunks"`
	SuggestedName string         `json:"suggested_name"`
	CleanedText   string         `json:"cleaned_text"`
	TotalChunks   int            `json:"total_chunks"`
	TotalChars    int            `json:"total_chars"`
}

// TextProcessor pairs the paragraph-preserving cleaner with a chunking
// strategy. Instances hold no mutable state and may be shared.
type TextProcessor struct {
	cleaner *textproc.Cleaner
	chunker textproc.Chunker
}

func NewTextProcessor(cleaner *textproc.Cleaner, chunker textproc.Chunker) *TextProcessor {
	return &TextProcessor{cleaner: cleaner, chunker: chunker}
}

// CleanAndChunk runs the full text pipeline and suggests a filename for
// persisting the source text.
func (p *TextProcessor) CleanAndChunk(ctx context.Context, rawText string) ([]textproc.Chunk, string, error) {
	cleaned := p.cleaner.Clean(rawText)
	chunks, err := p.chunker.ChunkText(ctx, cleaned)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s_doc.txt", time.Now().Format("20060102"))
	return chunks, filename, nil
}

// GeneratePreview returns the chunks a text would produce along with
// totals, for display before ingestion.
func (p *TextProcessor) GeneratePreview(ctx context.Context, text string) (Preview, error) {
	chunks, name, err := p.CleanAndChunk(ctx, text)
	if err != nil {
		return Preview{}, err
	}

	out := Preview{
		Chunks:        make([]PreviewChunk, 0, len(chunks)),
		SuggestedName: name,
		TotalChunks:   len(chunks),
	}
	contents := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		out.Chunks = append(out.Chunks, PreviewChunk{ID: ch.Index + 1, Content: ch.Content, Chars: ch.Chars})
		out.TotalChars += ch.Chars
		contents = append(contents, ch.Content)
	}
	out.CleanedText = strings.Join(contents, "\n\n")
	return out, nil
}
