package ingest

import (
	"docuchat-backend/config"
	coreingest "docuchat-backend/internal/core/ingest"
	"docuchat-backend/internal/textproc"
)

// NewChunkerFromConfig builds the configured chunking strategy. The
// algorithmic sliding window is the default production path; the
// semantic strategy is opt-in because every document then costs an
// extra embedding pass over its atoms.
func NewChunkerFromConfig() textproc.Chunker {
	ing := config.Cfg.Ingest
	switch ing.Strategy {
	case "semantic":
		return textproc.NewSemanticChunker(textproc.SemanticConfig{
			AtomicSize:          ing.AtomicSize,
			SimilarityThreshold: ing.SimilarityThreshold,
			MaxChunkSize:        ing.MaxChunkSize,
		}, coreingest.NewEmbeddingService())
	default:
		return textproc.NewAlgorithmicChunker(textproc.AlgorithmicConfig{
			TargetSize:       ing.TargetSize,
			MinSize:          ing.MinSize,
			MaxSize:          ing.MaxSize,
			OverlapSentences: ing.OverlapSentences,
		})
	}
}
