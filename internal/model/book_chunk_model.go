package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type BookChunk struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content      string          `gorm:"type:text;not null"`
	Embedding    pgvector.Vector `gorm:"type:vector(768)"` // matches EMBEDDING_DIMENSION for text-embedding-004
	ChapterTitle string          `gorm:"type:varchar(255)"`
	SectionTitle string          `gorm:"type:varchar(255)"`
	PageNumber   int             `gorm:"default:0"`
	ChunkIndex   int             `gorm:"default:0;index"` // 0-based position in the book, fixes insertion order
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
}

func (BookChunk) TableName() string {
	return "book_chunks"
}
