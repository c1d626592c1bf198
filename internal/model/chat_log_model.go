package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatLog struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WhatsappNumber string         `gorm:"type:varchar(20);index;not null"`
	UserMessage    string         `gorm:"type:text;not null"`
	BotResponse    string         `gorm:"type:text;not null"`
	ResponseType   string         `gorm:"type:varchar(50)"`
	ChunksUsed     datatypes.JSON `gorm:"type:jsonb"`
	LatencyMs      int            `gorm:"default:0"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}
