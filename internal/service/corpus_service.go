package service

import (
	"context"
	"fmt"
	"time"

	"ai-bookchat-be/internal/dto"
	"ai-bookchat-be/internal/pkg/logger"
	"ai-bookchat-be/internal/repository/unitofwork"
	"ai-bookchat-be/pkg/rag/index"
)

type ICorpusService interface {
	// Reload reads the whole corpus from the database, builds a fresh
	// snapshot and swaps it in. In-flight queries keep the old snapshot.
	Reload(ctx context.Context) (*dto.CorpusReloadResponse, error)
	Count(ctx context.Context) (int64, error)
}

type corpusService struct {
	uowFactory unitofwork.RepositoryFactory
	idx        *index.Index
	dimension  int
	logger     logger.ILogger
}

func NewCorpusService(uowFactory unitofwork.RepositoryFactory, idx *index.Index, dimension int, log logger.ILogger) ICorpusService {
	return &corpusService{
		uowFactory: uowFactory,
		idx:        idx,
		dimension:  dimension,
		logger:     log,
	}
}

func (s *corpusService) Reload(ctx context.Context) (*dto.CorpusReloadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chunks, err := uow.BookChunkRepository().FindAllOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	indexChunks := make([]index.Chunk, len(chunks))
	for i, c := range chunks {
		indexChunks[i] = index.Chunk{
			Id:      c.Id,
			Text:    c.Content,
			Vector:  c.Embedding,
			Chapter: c.ChapterTitle,
			Section: c.SectionTitle,
			Page:    c.PageNumber,
		}
	}

	snapshot, err := index.NewSnapshot(indexChunks, s.dimension)
	if err != nil {
		return nil, fmt.Errorf("failed to build index snapshot: %w", err)
	}

	s.idx.Swap(snapshot)

	s.logger.Info("Corpus", "index snapshot reloaded", map[string]interface{}{
		"chunk_count": snapshot.Len(),
		"dimension":   snapshot.Dimension(),
	})

	return &dto.CorpusReloadResponse{
		ChunkCount: snapshot.Len(),
		Dimension:  snapshot.Dimension(),
		ReloadedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *corpusService) Count(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.BookChunkRepository().Count(ctx)
}
