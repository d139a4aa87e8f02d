package ingest

import (
	"context"

	"docuchat-backend/config"
	"docuchat-backend/internal/textproc"

	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	milvusentity "github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const maxContentLength = 8192

// UpsertMilvusVectors ensures the collection exists and inserts one
// embedding per chunk. Returns the assigned IDs and the collection name.
func UpsertMilvusVectors(ctx context.Context, vectors [][]float32, docID int64, chunks []textproc.Chunk) ([]int64, string, error) {
	cli, err := milvusclient.NewClient(ctx, milvusclient.Config{Address: config.Cfg.Milvus.Address})
	if err != nil {
		return nil, "", err
	}
	defer cli.Close()

	collection := config.Cfg.Milvus.Collection
	if collection == "" {
		collection = "chunks"
	}
	exists, err := cli.HasCollection(ctx, collection)
	if err != nil {
		return nil, "", err
	}
	if !exists {
		if err := createChunksCollection(ctx, cli, collection); err != nil {
			return nil, "", err
		}
	}

	docIDs := make([]int64, len(chunks))
	chunkIdxs := make([]int32, len(chunks))
	contents := make([]string, len(chunks))
	ids := make([]int64, len(chunks))
	for i, ch := range chunks {
		docIDs[i] = docID
		chunkIdxs[i] = int32(ch.Index)
		contents[i] = ch.Content
		// Deterministic primary keys from docID and chunk index keep
		// re-ingestion idempotent without AutoID.
		ids[i] = (docID << 20) + int64(ch.Index)
	}

	colID := milvusentity.NewColumnInt64("id", ids)
	colDoc := milvusentity.NewColumnInt64("doc_id", docIDs)
	colChunk := milvusentity.NewColumnInt32("chunk_index", chunkIdxs)
	colContent := milvusentity.NewColumnVarChar("content", contents)
	colVec := milvusentity.NewColumnFloatVector("embedding", config.Cfg.OpenAI.EmbeddingDimensions, vectors)

	if _, err := cli.Insert(ctx, collection, "", colID, colDoc, colChunk, colContent, colVec); err != nil {
		return nil, "", err
	}
	return ids, collection, nil
}

func createChunksCollection(ctx context.Context, cli milvusclient.Client, collection string) error {
	schema := milvusentity.NewSchema().WithName(collection).WithDescription("document chunks")
	schema.WithField(milvusentity.NewField().WithName("id").WithDataType(milvusentity.FieldTypeInt64).WithIsPrimaryKey(true))
	schema.WithField(milvusentity.NewField().WithName("doc_id").WithDataType(milvusentity.FieldTypeInt64))
	schema.WithField(milvusentity.NewField().WithName("chunk_index").WithDataType(milvusentity.FieldTypeInt32))
	schema.WithField(milvusentity.NewField().WithName("content").WithDataType(milvusentity.FieldTypeVarChar).WithMaxLength(maxContentLength))
	schema.WithField(milvusentity.NewField().WithName("embedding").WithDataType(milvusentity.FieldTypeFloatVector).WithDim(int64(config.Cfg.OpenAI.EmbeddingDimensions)))

	if err := cli.CreateCollection(ctx, schema, 2); err != nil {
		return err
	}

	idx, err := milvusentity.NewIndexHNSW(
		milvusentity.MetricType(config.Cfg.Milvus.IndexHNSWConfig.MetricType),
		config.Cfg.Milvus.IndexHNSWConfig.M,
		config.Cfg.Milvus.IndexHNSWConfig.EfConstruction,
	)
	if err != nil {
		return err
	}
	return cli.CreateIndex(ctx, collection, "embedding", idx, false)
}
