package index

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

// unitVector builds a 2-d unit vector whose cosine similarity with (1, 0)
// equals score.
func unitVector(score float64) []float32 {
	return []float32{float32(score), float32(math.Sqrt(1 - score*score))}
}

func newChunk(text string, vector []float32) Chunk {
	return Chunk{Id: uuid.New(), Text: text, Vector: vector, Chapter: "Ch 1"}
}

func TestNewSnapshotDimensionMismatch(t *testing.T) {
	chunks := []Chunk{
		newChunk("ok", []float32{1, 0}),
		newChunk("bad", []float32{1, 0, 0}),
	}
	if _, err := NewSnapshot(chunks, 2); err == nil {
		t.Fatal("expected dimension mismatch error, got nil")
	}
}

func TestSearchOrdering(t *testing.T) {
	chunks := []Chunk{
		newChunk("low", unitVector(0.40)),
		newChunk("high", unitVector(0.91)),
		newChunk("mid", unitVector(0.85)),
	}
	snap, err := NewSnapshot(chunks, 2)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}

	results, err := snap.Search([]float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected all 3 chunks when k exceeds corpus, got %d", len(results))
	}

	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if results[i].Chunk.Text != want {
			t.Errorf("position %d = %q, want %q", i, results[i].Chunk.Text, want)
		}
	}

	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not descending at %d: %f > %f", i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestSearchStableTieBreak(t *testing.T) {
	// Identical vectors produce identical scores; insertion order must win.
	v := unitVector(0.8)
	chunks := []Chunk{
		newChunk("first", v),
		newChunk("second", v),
		newChunk("third", v),
	}
	snap, err := NewSnapshot(chunks, 2)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}

	for run := 0; run < 5; run++ {
		results, err := snap.Search([]float32{1, 0}, 3)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		wantOrder := []string{"first", "second", "third"}
		for i, want := range wantOrder {
			if results[i].Chunk.Text != want {
				t.Fatalf("run %d position %d = %q, want %q", run, i, results[i].Chunk.Text, want)
			}
		}
	}
}

func TestSearchTopKLimit(t *testing.T) {
	chunks := []Chunk{
		newChunk("a", unitVector(0.9)),
		newChunk("b", unitVector(0.8)),
		newChunk("c", unitVector(0.7)),
	}
	snap, _ := NewSnapshot(chunks, 2)

	results, err := snap.Search([]float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Text != "a" || results[1].Chunk.Text != "b" {
		t.Errorf("unexpected top-2: %q, %q", results[0].Chunk.Text, results[1].Chunk.Text)
	}
}

func TestSearchEmptySnapshot(t *testing.T) {
	snap, err := NewSnapshot(nil, 2)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}

	results, err := snap.Search([]float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("empty snapshot search should not error, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result, got %d", len(results))
	}
}

func TestSearchQueryDimensionMismatch(t *testing.T) {
	snap, _ := NewSnapshot([]Chunk{newChunk("a", unitVector(0.9))}, 2)
	if _, err := snap.Search([]float32{1, 0, 0}, 1); err == nil {
		t.Fatal("expected query dimension error, got nil")
	}
}

func TestSearchScoreRange(t *testing.T) {
	chunks := []Chunk{
		newChunk("same", []float32{1, 0}),
		newChunk("opposite", []float32{-1, 0}),
		newChunk("orthogonal", []float32{0, 1}),
	}
	snap, _ := NewSnapshot(chunks, 2)

	results, err := snap.Search([]float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, r := range results {
		if r.Score < -1.0000001 || r.Score > 1.0000001 {
			t.Errorf("score %f outside [-1, 1]", r.Score)
		}
	}
	if math.Abs(results[0].Score-1) > 1e-9 {
		t.Errorf("identical direction should score 1, got %f", results[0].Score)
	}
	if math.Abs(results[2].Score+1) > 1e-9 {
		t.Errorf("opposite direction should score -1, got %f", results[2].Score)
	}
}

func TestIndexSwap(t *testing.T) {
	first, _ := NewSnapshot([]Chunk{newChunk("a", unitVector(0.9))}, 2)
	idx := New(first)

	held := idx.Load()

	second, _ := NewSnapshot(nil, 2)
	idx.Swap(second)

	// The previously loaded snapshot stays usable after the swap.
	if held.Len() != 1 {
		t.Errorf("held snapshot changed after swap: len=%d", held.Len())
	}
	if idx.Load().Len() != 0 {
		t.Errorf("index did not serve the new snapshot")
	}
}
