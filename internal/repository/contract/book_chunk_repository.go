package contract

import (
	"context"

	"ai-bookchat-be/internal/entity"
)

// BookChunkRepository persists the pre-embedded corpus. The query path
// never touches this repository directly: the engine reads an in-memory
// snapshot loaded from FindAllOrdered at startup or on reload.
type BookChunkRepository interface {
	CreateBatch(ctx context.Context, chunks []*entity.BookChunk) error
	DeleteAll(ctx context.Context) error
	// FindAllOrdered returns the whole corpus in chunk_index order, which
	// fixes the insertion order the index uses for tie-breaking.
	FindAllOrdered(ctx context.Context) ([]*entity.BookChunk, error)
	Count(ctx context.Context) (int64, error)
}
