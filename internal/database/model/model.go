// Package model holds the persistence records for documents and their
// chunks. cmd/gen can regenerate query helpers from a live schema; the
// structs here are the committed source of truth.
package model

import "time"

// Document is one uploaded file tracked through the ingestion pipeline.
// Status moves uploaded -> processing -> ready|failed.
type Document struct {
	ID               int64      `gorm:"column:id;primaryKey;autoIncrement"`
	OriginalFilename *string    `gorm:"column:original_filename"`
	FilePath         *string    `gorm:"column:file_path"`
	Sha256           *string    `gorm:"column:sha256;size:64"`
	Status           string     `gorm:"column:status;size:32;default:uploaded"`
	UploadedAt       *time.Time `gorm:"column:uploaded_at"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (Document) TableName() string { return "documents" }

// Chunk is one stored text chunk of a document, mirrored into Milvus
// under MilvusID.
type Chunk struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	DocumentID       int64     `gorm:"column:document_id;index"`
	ChunkIndex       int32     `gorm:"column:chunk_index"`
	Content          string    `gorm:"column:content;type:mediumtext"`
	ContentPreview   *string   `gorm:"column:content_preview;size:512"`
	CharCount        int32     `gorm:"column:char_count"`
	ContentHash      string    `gorm:"column:content_hash;size:64"`
	MilvusCollection string    `gorm:"column:milvus_collection;size:128"`
	MilvusID         int64     `gorm:"column:milvus_id"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (Chunk) TableName() string { return "chunks" }
