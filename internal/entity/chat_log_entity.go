package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatLog struct {
	Id             uuid.UUID
	WhatsappNumber string
	UserMessage    string
	BotResponse    string
	ResponseType   string // answered, refused, error
	ChunksUsed     []string
	LatencyMs      int
	CreatedAt      time.Time
}
