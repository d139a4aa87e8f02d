package ingest

import (
	"context"
	"errors"
	"time"

	"docuchat-backend/config"
	coreingest "docuchat-backend/internal/core/ingest"
	"docuchat-backend/internal/database"
	"docuchat-backend/internal/textproc"
	"docuchat-backend/pkg/logger"

	"gorm.io/gorm"
)

// RunIngestion orchestrates the ingestion pipeline for a document ID:
// fetch -> extract -> clean -> chunk -> embed -> vector store -> MySQL.
func RunIngestion(docID int64, force bool) {
	db, err := database.GetDB()
	if err != nil {
		logger.Error(err, "ingest: db unavailable")
		return
	}

	doc, err := GetDocumentByID(db, docID)
	if err != nil {
		logger.Error(err, "ingest: get document failed")
		return
	}
	if doc == nil || doc.FilePath == nil {
		logger.Error(errors.New("not found"), "ingest: document %d not found", docID)
		return
	}
	logger.WithFields(map[string]interface{}{
		"doc_id":    docID,
		"file_path": *doc.FilePath,
	}).Info("ingest: start")

	// Idempotency
	exists, err := HasChunks(db, docID)
	if err != nil {
		logger.Error(err, "ingest: check chunks failed")
		return
	}
	if exists && !force {
		logger.Info("ingest: chunks already exist; skip (no force)")
		return
	}
	if exists && force {
		if err := DeleteChunksByDocID(db, docID); err != nil {
			logger.Error(err, "ingest: cleanup chunks failed")
			return
		}
		// Milvus rows are overwritten on re-insert: primary keys are
		// deterministic per (doc, chunk index).
	}

	_ = UpdateDocumentStatus(db, docID, "processing")

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	tmpPath, cleanup, err := coreingest.FetchToLocalTemp(ctx, *doc.FilePath)
	if err != nil {
		logger.Error(err, "ingest: fetch file failed")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}
	defer cleanup()

	rawText, err := coreingest.ExtractText(tmpPath)
	if err != nil {
		logger.Error(err, "ingest: extract text failed")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}

	// Clean, then chunk with the configured strategy.
	cleaned := textproc.NewCleaner().Clean(rawText)
	chunker := NewChunkerFromConfig()
	chunks, err := chunker.ChunkText(ctx, cleaned)
	if err != nil {
		logger.Error(err, "ingest: chunking failed")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}
	logger.WithFields(map[string]interface{}{
		"doc_id":   docID,
		"strategy": config.Cfg.Ingest.Strategy,
		"chunks":   len(chunks),
	}).Info("ingest: chunks built")
	if len(chunks) == 0 {
		logger.Warn("ingest: document %d produced no chunks", docID)
		_ = UpdateDocumentStatus(db, docID, "ready")
		return
	}

	inputs := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		inputs = append(inputs, ch.Content)
	}

	vectors, err := coreingest.NewEmbeddingService().GenerateEmbeddingsBatch(ctx, inputs)
	if err != nil {
		logger.Error(err, "ingest: embedding failed")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}
	if len(vectors) != len(chunks) {
		logger.Error(errors.New("mismatch"), "ingest: embedding count mismatch")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}

	milvusIDs, collection, err := coreingest.UpsertMilvusVectors(ctx, vectors, docID, chunks)
	if err != nil {
		logger.Error(err, "ingest: milvus upsert failed")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}

	// Chunk rows and the ready status land together or not at all.
	err = database.WithTx(ctx, func(tx *gorm.DB) error {
		if err := InsertChunks(tx, docID, chunks, milvusIDs, collection); err != nil {
			return err
		}
		return UpdateDocumentStatus(tx, docID, "ready")
	})
	if err != nil {
		logger.Error(err, "ingest: db insert chunks failed")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}
	logger.WithFields(map[string]interface{}{
		"doc_id": docID,
		"chunks": len(chunks),
	}).Info("ingest: done")
}
