package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	Id                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WhatsappNumber    string     `gorm:"type:varchar(20);uniqueIndex;not null"`
	Status            string     `gorm:"type:varchar(20);default:inactive"`
	PlanType          string     `gorm:"type:varchar(50)"`
	Credits           int        `gorm:"default:15"` // trial credits
	IsTrial           bool       `gorm:"default:true"`
	SubscriptionStart *time.Time
	SubscriptionEnd   *time.Time
	MessageCountToday int        `gorm:"default:0"`
	LastMessageDate   *time.Time
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
	UpdatedAt         *time.Time `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
