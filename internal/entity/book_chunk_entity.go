package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookChunk struct {
	Id           uuid.UUID
	Content      string
	Embedding    []float32
	ChapterTitle string
	SectionTitle string
	PageNumber   int
	ChunkIndex   int
	CreatedAt    time.Time
}
