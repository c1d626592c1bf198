package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/pkg/logger"
	"ai-bookchat-be/internal/repository/unitofwork"
	"ai-bookchat-be/pkg/events"
	pktNats "ai-bookchat-be/pkg/nats"
)

// ConsumerService persists chat interactions off the event bus so the
// webhook path never blocks on the audit write.
type IConsumerService interface {
	Start() error
}

type consumerService struct {
	subscriber *pktNats.Subscriber
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(subscriber *pktNats.Subscriber, uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Start() error {
	subject := fmt.Sprintf("events.%s", events.TypeChatInteraction)
	return cs.subscriber.Subscribe(subject, "chat-log-writer", cs.handleChatInteraction)
}

func (cs *consumerService) handleChatInteraction(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	chatLog := &entity.ChatLog{
		Id:             uuid.New(),
		WhatsappNumber: asString(payload["whatsapp_number"]),
		UserMessage:    asString(payload["user_message"]),
		BotResponse:    asString(payload["bot_response"]),
		ResponseType:   asString(payload["response_type"]),
		ChunksUsed:     asStringSlice(payload["chunks_used"]),
		LatencyMs:      asInt(payload["latency_ms"]),
		CreatedAt:      event.Timestamp(),
	}

	if chatLog.WhatsappNumber == "" {
		// Malformed payload, do not redeliver.
		cs.logger.Warn("Consumer", "dropping chat interaction without sender", map[string]interface{}{
			"payload": payload,
		})
		return nil
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := uow.ChatLogRepository().Create(writeCtx, chatLog); err != nil {
		return fmt.Errorf("failed to persist chat log: %w", err)
	}
	return nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asInt tolerates the float64 that JSON numbers decode to.
func asInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func asStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
