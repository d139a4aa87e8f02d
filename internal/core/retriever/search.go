package retriever

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docuchat-backend/config"
	"docuchat-backend/pkg/logger"

	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	milvusentity "github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// SearchMilvus performs a vector similarity search and returns topK hits
// with metadata.
func SearchMilvus(ctx context.Context, query []float32, topK int, filters Filters) ([]Hit, error) {
	if topK <= 0 {
		topK = 8
	}
	if len(query) == 0 {
		return []Hit{}, nil
	}
	// Keep latency bounds tight when the caller did not set a deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 200*time.Millisecond)
		defer cancel()
	}

	cli, err := milvusclient.NewClient(ctx, milvusclient.Config{Address: config.Cfg.Milvus.Address})
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	collection := config.Cfg.Milvus.Collection
	if collection == "" {
		collection = "chunks"
	}
	exists, err := cli.HasCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("collection %q not found", collection)
	}
	if err := cli.LoadCollection(ctx, collection, false); err != nil {
		return nil, err
	}

	metricType := milvusentity.MetricType(config.Cfg.Milvus.IndexHNSWConfig.MetricType)
	searchParam, err := milvusentity.NewIndexHNSWSearchParam(64)
	if err != nil {
		return nil, err
	}

	expr := buildExpr(filters)
	outputFields := []string{"id", "doc_id", "chunk_index", "content"}
	vectors := []milvusentity.Vector{milvusentity.FloatVector(query)}

	start := time.Now()
	results, err := cli.Search(
		ctx,
		collection,
		nil,
		expr,
		outputFields,
		vectors,
		"embedding",
		metricType,
		topK,
		searchParam,
	)
	if err != nil {
		return nil, err
	}
	logger.WithFields(map[string]interface{}{
		"collection": collection,
		"top_k":      topK,
		"expr":       expr,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Debug("retriever: search done")

	hits := make([]Hit, 0, topK)
	for _, res := range results {
		var (
			ids      *milvusentity.ColumnInt64
			docIDs   *milvusentity.ColumnInt64
			chunkIdx *milvusentity.ColumnInt32
			contents *milvusentity.ColumnVarChar
		)
		for _, f := range res.Fields {
			switch f.Name() {
			case "id":
				ids, _ = f.(*milvusentity.ColumnInt64)
			case "doc_id":
				docIDs, _ = f.(*milvusentity.ColumnInt64)
			case "chunk_index":
				chunkIdx, _ = f.(*milvusentity.ColumnInt32)
			case "content":
				contents, _ = f.(*milvusentity.ColumnVarChar)
			}
		}
		for i := 0; i < res.ResultCount; i++ {
			var h Hit
			h.Score = res.Scores[i]
			if ids != nil {
				h.ChunkID, _ = ids.ValueByIdx(i)
			}
			if docIDs != nil {
				h.DocID, _ = docIDs.ValueByIdx(i)
			}
			if chunkIdx != nil {
				h.ChunkIndex, _ = chunkIdx.ValueByIdx(i)
			}
			if contents != nil {
				h.Content, _ = contents.ValueByIdx(i)
			}
			hits = append(hits, h)
		}
	}
	return hits, nil
}

func buildExpr(filters Filters) string {
	if len(filters.DocIDs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(filters.DocIDs))
	for _, id := range filters.DocIDs {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return fmt.Sprintf("doc_id in [%s]", strings.Join(parts, ", "))
}
