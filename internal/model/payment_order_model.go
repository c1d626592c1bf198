package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentOrder struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId        string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	WhatsappNumber string     `gorm:"type:varchar(20);index;not null"`
	PlanType       string     `gorm:"type:varchar(50)"`
	GrossAmount    int64      `gorm:"not null"`
	Status         string     `gorm:"type:varchar(20);default:pending"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      *time.Time `gorm:"autoUpdateTime"`
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}
