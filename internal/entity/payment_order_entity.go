package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusSettled   = "settled"
	PaymentStatusExpired   = "expired"
	PaymentStatusCancelled = "cancelled"
)

type PaymentOrder struct {
	Id             uuid.UUID
	OrderId        string
	WhatsappNumber string
	PlanType       string
	GrossAmount    int64
	Status         string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
