package retriever

// Filters are optional constraints applied during search. Currently a
// set of document IDs.
type Filters struct {
	DocIDs []int64
}

// Hit is a single search result with its metadata.
type Hit struct {
	ChunkID    int64   `json:"chunk_id"`
	Score      float32 `json:"score"`
	DocID      int64   `json:"doc_id"`
	ChunkIndex int32   `json:"chunk_index"`
	Content    string  `json:"content"`
}
