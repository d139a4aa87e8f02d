package retriever

import (
	"context"
	"strconv"
	"strings"
	"time"

	"docuchat-backend/config"
	"docuchat-backend/internal/core/retriever"
	"docuchat-backend/pkg/apperror"
	"docuchat-backend/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

type searchResponse struct {
	Hits []retriever.Hit `json:"hits"`
}

// HandleSearch embeds a question and runs a vector similarity search
// over ingested chunks, optionally restricted to specific documents.
func HandleSearch(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return apperror.BadRequest(config.ModuleRetriever, c, status.MissingParams, "q is required")
	}
	topK := 8
	if s := c.Query("top_k"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 64 {
			topK = v
		}
	}
	var docIDs []int64
	if ids := strings.TrimSpace(c.Query("doc_ids")); ids != "" {
		for _, p := range strings.Split(ids, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if id, err := strconv.ParseInt(p, 10, 64); err == nil {
				docIDs = append(docIDs, id)
			}
		}
	}

	// Embedding is a network call; give it a longer timeout than search.
	embedCtx, cancelEmbed := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancelEmbed()
	vec, err := retriever.EmbedQuestion(embedCtx, q)
	if err != nil {
		return apperror.InternalError(config.ModuleRetriever, c, err)
	}

	// Allow for the initial collection load on a cold start.
	searchCtx, cancelSearch := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancelSearch()
	hits, err := retriever.SearchMilvus(searchCtx, vec, topK, retriever.Filters{DocIDs: docIDs})
	if err != nil {
		return apperror.InternalError(config.ModuleRetriever, c, err)
	}

	return apperror.Success(config.ModuleRetriever, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "search ok",
		TrackingID: trackingID,
		Data:       searchResponse{Hits: hits},
	})
}
