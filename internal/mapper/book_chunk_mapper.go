package mapper

import (
	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type BookChunkMapper struct{}

func NewBookChunkMapper() *BookChunkMapper {
	return &BookChunkMapper{}
}

func (m *BookChunkMapper) ToEntity(c *model.BookChunk) *entity.BookChunk {
	if c == nil {
		return nil
	}
	return &entity.BookChunk{
		Id:           c.Id,
		Content:      c.Content,
		Embedding:    c.Embedding.Slice(),
		ChapterTitle: c.ChapterTitle,
		SectionTitle: c.SectionTitle,
		PageNumber:   c.PageNumber,
		ChunkIndex:   c.ChunkIndex,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *BookChunkMapper) ToModel(c *entity.BookChunk) *model.BookChunk {
	if c == nil {
		return nil
	}
	return &model.BookChunk{
		Id:           c.Id,
		Content:      c.Content,
		Embedding:    pgvector.NewVector(c.Embedding),
		ChapterTitle: c.ChapterTitle,
		SectionTitle: c.SectionTitle,
		PageNumber:   c.PageNumber,
		ChunkIndex:   c.ChunkIndex,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *BookChunkMapper) ToEntities(chunks []*model.BookChunk) []*entity.BookChunk {
	entities := make([]*entity.BookChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *BookChunkMapper) ToModels(chunks []*entity.BookChunk) []*model.BookChunk {
	models := make([]*model.BookChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
