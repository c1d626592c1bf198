package unitofwork

import (
	"context"

	"ai-bookchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BookChunkRepository() contract.BookChunkRepository
	SubscriptionRepository() contract.SubscriptionRepository
	ChatLogRepository() contract.ChatLogRepository
	ProcessedMessageRepository() contract.ProcessedMessageRepository
	PaymentOrderRepository() contract.PaymentOrderRepository
}
