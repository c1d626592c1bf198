package mapper

import (
	"encoding/json"

	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatLogMapper struct{}

func NewChatLogMapper() *ChatLogMapper {
	return &ChatLogMapper{}
}

func (m *ChatLogMapper) ToEntity(l *model.ChatLog) *entity.ChatLog {
	if l == nil {
		return nil
	}

	var chunksUsed []string
	if len(l.ChunksUsed) > 0 {
		// A malformed column yields an empty slice, not a failed read.
		_ = json.Unmarshal(l.ChunksUsed, &chunksUsed)
	}

	return &entity.ChatLog{
		Id:             l.Id,
		WhatsappNumber: l.WhatsappNumber,
		UserMessage:    l.UserMessage,
		BotResponse:    l.BotResponse,
		ResponseType:   l.ResponseType,
		ChunksUsed:     chunksUsed,
		LatencyMs:      l.LatencyMs,
		CreatedAt:      l.CreatedAt,
	}
}

func (m *ChatLogMapper) ToModel(l *entity.ChatLog) *model.ChatLog {
	if l == nil {
		return nil
	}

	chunksUsed := l.ChunksUsed
	if chunksUsed == nil {
		chunksUsed = []string{}
	}
	raw, _ := json.Marshal(chunksUsed)

	return &model.ChatLog{
		Id:             l.Id,
		WhatsappNumber: l.WhatsappNumber,
		UserMessage:    l.UserMessage,
		BotResponse:    l.BotResponse,
		ResponseType:   l.ResponseType,
		ChunksUsed:     datatypes.JSON(raw),
		LatencyMs:      l.LatencyMs,
		CreatedAt:      l.CreatedAt,
	}
}

func (m *ChatLogMapper) ToEntities(logs []*model.ChatLog) []*entity.ChatLog {
	entities := make([]*entity.ChatLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
