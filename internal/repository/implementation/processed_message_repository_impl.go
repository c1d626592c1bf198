package implementation

import (
	"context"
	"errors"

	"ai-bookchat-be/internal/model"
	"ai-bookchat-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProcessedMessageRepositoryImpl struct {
	db *gorm.DB
}

func NewProcessedMessageRepository(db *gorm.DB) contract.ProcessedMessageRepository {
	return &ProcessedMessageRepositoryImpl{db: db}
}

func (r *ProcessedMessageRepositoryImpl) MarkProcessed(ctx context.Context, messageId string) (bool, error) {
	// ON CONFLICT DO NOTHING: RowsAffected == 0 means the wamid was seen
	// before, so the caller must not answer it again.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.ProcessedMessage{MessageId: messageId})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ProcessedMessageRepositoryImpl) Exists(ctx context.Context, messageId string) (bool, error) {
	var m model.ProcessedMessage
	err := r.db.WithContext(ctx).Where("message_id = ?", messageId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
