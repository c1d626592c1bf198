package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-bookchat-be/pkg/rag/index"
)

// Embedder maps text to a fixed-dimension vector. Implemented by the
// providers in pkg/embedding through a thin adapter in bootstrap.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// RetrievalResult is the ordered, threshold-filtered candidate set for one
// query plus the raw count the index returned before filtering.
type RetrievalResult struct {
	Chunks   []index.ScoredChunk
	RawCount int
}

// Empty reports whether no candidate survived the threshold.
func (r *RetrievalResult) Empty() bool {
	return len(r.Chunks) == 0
}

// Retriever embeds the question and queries the chunk index.
type Retriever struct {
	index    *index.Index
	embedder Embedder
	logger   *log.Logger
}

// NewRetriever creates a retriever over the given index.
func NewRetriever(idx *index.Index, embedder Embedder, logger *log.Logger) *Retriever {
	return &Retriever{
		index:    idx,
		embedder: embedder,
		logger:   logger,
	}
}

// Retrieve returns the top-k chunks whose cosine similarity reaches
// minScore, in descending score order. An embedding failure propagates as
// an error (infrastructure fault), never as an empty result. When the
// corpus snapshot holds zero chunks the embedder is not called at all:
// retrieval is moot and the grounding policy will refuse.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int, minScore float64) (*RetrievalResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("retrieval k must be >= 1, got %d", k)
	}
	if minScore < -1 || minScore > 1 {
		return nil, fmt.Errorf("min score must be within [-1, 1], got %f", minScore)
	}

	snapshot := r.index.Load()
	if snapshot.Len() == 0 {
		r.logger.Printf("[DEBUG] Corpus snapshot is empty, skipping embedding call")
		return &RetrievalResult{Chunks: []index.ScoredChunk{}, RawCount: 0}, nil
	}

	if strings.TrimSpace(question) == "" {
		return nil, &EmbeddingError{Err: fmt.Errorf("empty question")}
	}

	vector, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, &EmbeddingError{Err: err}
	}

	scored, err := snapshot.Search(vector, k)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}

	filtered := make([]index.ScoredChunk, 0, len(scored))
	for _, sc := range scored {
		if sc.Score >= minScore {
			filtered = append(filtered, sc)
		}
	}

	if len(scored) > 0 {
		r.logger.Printf("[DEBUG] Retrieved %d chunks, %d above threshold %.2f, top score %.3f",
			len(scored), len(filtered), minScore, scored[0].Score)
	}

	return &RetrievalResult{Chunks: filtered, RawCount: len(scored)}, nil
}
