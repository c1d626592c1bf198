package contract

import "context"

type ProcessedMessageRepository interface {
	// MarkProcessed records the message id. It returns false when the id
	// was already present (duplicate webhook delivery).
	MarkProcessed(ctx context.Context, messageId string) (bool, error)
	Exists(ctx context.Context, messageId string) (bool, error)
}
