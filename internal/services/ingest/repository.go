package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"

	"docuchat-backend/internal/database/model"
	"docuchat-backend/internal/textproc"

	"gorm.io/gorm"
)

func GetDocumentByID(db *gorm.DB, docID int64) (*model.Document, error) {
	var doc model.Document
	if err := db.First(&doc, docID).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func HasChunks(db *gorm.DB, docID int64) (bool, error) {
	var count int64
	if err := db.Model(&model.Chunk{}).Where("document_id = ?", docID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func DeleteChunksByDocID(db *gorm.DB, docID int64) error {
	return db.Where("document_id = ?", docID).Delete(&model.Chunk{}).Error
}

func UpdateDocumentStatus(db *gorm.DB, docID int64, status string) error {
	return db.Model(&model.Document{}).Where("id = ?", docID).Update("status", status).Error
}

func InsertChunks(db *gorm.DB, docID int64, chunks []textproc.Chunk, milvusIDs []int64, collection string) error {
	records := make([]model.Chunk, 0, len(chunks))
	for i, ch := range chunks {
		preview := buildContentPreview(ch.Content, 512)
		h := sha256.Sum256([]byte(ch.Content))
		var milvusID int64
		if i < len(milvusIDs) {
			milvusID = milvusIDs[i]
		}
		records = append(records, model.Chunk{
			DocumentID:       docID,
			ChunkIndex:       int32(ch.Index),
			Content:          ch.Content,
			ContentPreview:   &preview,
			CharCount:        int32(ch.Chars),
			ContentHash:      hex.EncodeToString(h[:]),
			MilvusCollection: collection,
			MilvusID:         milvusID,
		})
	}
	return db.Create(&records).Error
}

// buildContentPreview keeps printable UTF-8 and truncates by runes so
// multi-byte sequences never get split.
func buildContentPreview(s string, maxRunes int) string {
	var b strings.Builder
	b.Grow(len(s))
	count := 0
	for _, r := range s {
		if r == '\uFEFF' || r == utf8.RuneError {
			continue
		}
		if r != '\n' && r != '\t' && r != '\r' && !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
		count++
		if count >= maxRunes {
			break
		}
	}
	return strings.TrimSpace(b.String())
}
