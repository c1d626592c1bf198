package index

import (
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/google/uuid"
)

// Chunk is one immutable unit of book content. Chunks are created by the
// ingest pipeline and never mutated after the snapshot is built.
type Chunk struct {
	Id      uuid.UUID
	Text    string
	Vector  []float32
	Chapter string
	Section string
	Page    int
}

// ScoredChunk pairs a chunk with its cosine similarity for one query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Snapshot is a read-only view of the whole corpus. It is shared by all
// in-flight queries without locking; reloads build a new Snapshot and swap
// it atomically on the Index.
type Snapshot struct {
	chunks []Chunk
	norms  []float64
	dim    int
}

// NewSnapshot validates chunk dimensions against the configured embedding
// dimension and precomputes vector norms. A dimension mismatch is a corpus
// configuration fault and fails the whole load, not a per-query condition.
func NewSnapshot(chunks []Chunk, dim int) (*Snapshot, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid embedding dimension %d", dim)
	}

	norms := make([]float64, len(chunks))
	for i, c := range chunks {
		if len(c.Vector) != dim {
			return nil, fmt.Errorf("chunk %s has dimension %d, index expects %d", c.Id, len(c.Vector), dim)
		}
		norms[i] = vectorNorm(c.Vector)
	}

	return &Snapshot{
		chunks: chunks,
		norms:  norms,
		dim:    dim,
	}, nil
}

// Len returns the number of chunks resident in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.chunks)
}

// Dimension returns the embedding dimension the snapshot was built with.
func (s *Snapshot) Dimension() int {
	return s.dim
}

// Search returns the k chunks most similar to the query vector, in
// descending score order. Ties are broken by insertion order so identical
// inputs always produce identical orderings. If k exceeds the corpus size
// all chunks are returned. An empty snapshot returns an empty slice.
func (s *Snapshot) Search(query []float32, k int) ([]ScoredChunk, error) {
	if len(query) != s.dim {
		return nil, fmt.Errorf("query vector has dimension %d, index expects %d", len(query), s.dim)
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}
	if len(s.chunks) == 0 {
		return []ScoredChunk{}, nil
	}

	queryNorm := vectorNorm(query)

	type scored struct {
		position int
		score    float64
	}
	results := make([]scored, len(s.chunks))
	for i := range s.chunks {
		results[i] = scored{
			position: i,
			score:    cosine(query, queryNorm, s.chunks[i].Vector, s.norms[i]),
		}
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].score > results[b].score
	})

	if k > len(results) {
		k = len(results)
	}

	top := make([]ScoredChunk, k)
	for i := 0; i < k; i++ {
		top[i] = ScoredChunk{
			Chunk: s.chunks[results[i].position],
			Score: results[i].score,
		}
	}
	return top, nil
}

func vectorNorm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func cosine(a []float32, normA float64, b []float32, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (normA * normB)
}

// Index holds the current corpus snapshot. Queries read the snapshot
// through Load; reloads replace it atomically so in-flight queries never
// observe a half-updated corpus.
type Index struct {
	snapshot atomic.Pointer[Snapshot]
}

// New creates an index serving the given snapshot.
func New(snapshot *Snapshot) *Index {
	idx := &Index{}
	idx.snapshot.Store(snapshot)
	return idx
}

// Load returns the current snapshot.
func (i *Index) Load() *Snapshot {
	return i.snapshot.Load()
}

// Swap replaces the current snapshot. The previous snapshot stays valid
// for queries that already loaded it.
func (i *Index) Swap(snapshot *Snapshot) {
	i.snapshot.Store(snapshot)
}
