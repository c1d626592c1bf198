package model

import "time"

type ProcessedMessage struct {
	MessageId string    `gorm:"type:varchar(255);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ProcessedMessage) TableName() string {
	return "processed_messages"
}
