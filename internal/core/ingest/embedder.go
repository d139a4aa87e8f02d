package ingest

import (
	"context"
	"errors"
	"fmt"

	"docuchat-backend/config"
	"docuchat-backend/pkg/logger"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/errgroup"
)

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// EmbeddingService generates embeddings through the OpenAI embeddings
// endpoint. Inputs are split into fixed-size batches embedded with
// bounded concurrency; output order always matches input order.
//
// Any batch failure fails the whole call. This keeps the semantic
// chunker's partial-batch truncation path unreachable in practice; it
// only triggers if a provider returns a short vector list without an
// error, which this service never does.
type EmbeddingService struct {
	batchSize int
	workers   int
}

func NewEmbeddingService() *EmbeddingService {
	batchSize := config.Cfg.OpenAI.EmbeddingBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	workers := config.Cfg.OpenAI.EmbeddingWorkers
	if workers <= 0 {
		workers = 4
	}
	return &EmbeddingService{batchSize: batchSize, workers: workers}
}

// GenerateEmbeddingsBatch embeds inputs and returns one vector per
// input, in input order.
func (s *EmbeddingService) GenerateEmbeddingsBatch(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}
	key := config.Cfg.OpenAI.Key
	if key == "" {
		return nil, errors.New("missing openai key")
	}

	all := make([][]float32, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for start := 0; start < len(inputs); start += s.batchSize {
		start := start
		end := min(start+s.batchSize, len(inputs))
		batch := inputs[start:end]

		g.Go(func() error {
			logger.WithFields(map[string]interface{}{
				"model":       config.Cfg.OpenAI.EmbeddingModel,
				"batch_start": start,
				"batch_end":   end,
				"batch_size":  len(batch),
			}).Info("openai: embedding batch start")

			vectors, err := embedBatch(gctx, key, batch)
			if err != nil {
				logger.WithFields(map[string]interface{}{
					"batch_start": start,
					"batch_end":   end,
					"error":       err,
				}).Errorf("openai: embedding batch failed")
				return err
			}
			if len(vectors) != len(batch) {
				return fmt.Errorf("openai: got %d vectors for %d inputs", len(vectors), len(batch))
			}
			copy(all[start:end], vectors)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

// embedBatch performs one embeddings call. Retries are the caller's
// concern; none are attempted here.
func embedBatch(ctx context.Context, apiKey string, batch []string) ([][]float32, error) {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	reqBody := embeddingRequest{Model: config.Cfg.OpenAI.EmbeddingModel, Input: batch}
	var out embeddingResponse
	if err := client.Post(ctx, "/embeddings", reqBody, &out); err != nil {
		return nil, err
	}
	if out.Error != nil {
		return nil, errors.New(out.Error.Message)
	}

	vectors := make([][]float32, len(out.Data))
	for i := range out.Data {
		src := out.Data[i].Embedding
		vec := make([]float32, len(src))
		for k := range src {
			vec[k] = float32(src[k])
		}
		vectors[i] = vec
	}
	return vectors, nil
}
