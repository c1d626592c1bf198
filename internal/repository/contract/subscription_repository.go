package contract

import (
	"context"

	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/repository/specification"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	Update(ctx context.Context, sub *entity.Subscription) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
