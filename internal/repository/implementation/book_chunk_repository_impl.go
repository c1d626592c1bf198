package implementation

import (
	"context"

	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/mapper"
	"ai-bookchat-be/internal/model"
	"ai-bookchat-be/internal/repository/contract"

	"gorm.io/gorm"
)

type BookChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookChunkMapper
}

func NewBookChunkRepository(db *gorm.DB) contract.BookChunkRepository {
	return &BookChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewBookChunkMapper(),
	}
}

func (r *BookChunkRepositoryImpl) CreateBatch(ctx context.Context, chunks []*entity.BookChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	// Batched insert keeps ingest of a whole book in bounded statements.
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *BookChunkRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.BookChunk{}).Error
}

func (r *BookChunkRepositoryImpl) FindAllOrdered(ctx context.Context) ([]*entity.BookChunk, error) {
	var models []*model.BookChunk
	err := r.db.WithContext(ctx).
		Order("chunk_index ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BookChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BookChunk{}).Count(&count).Error
	return count, err
}
