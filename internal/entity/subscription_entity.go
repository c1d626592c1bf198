package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionStatusInactive = "inactive"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusExpired  = "expired"
	SubscriptionStatusBlocked  = "blocked"
)

const (
	PlanTypeCreditPack = "credit_pack"
	PlanTypeMonthly    = "monthly_subscription"
)

type Subscription struct {
	Id                uuid.UUID
	WhatsappNumber    string
	Status            string
	PlanType          string
	Credits           int
	IsTrial           bool
	SubscriptionStart *time.Time
	SubscriptionEnd   *time.Time
	MessageCountToday int
	LastMessageDate   *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// IsActive reports whether the subscription grants access right now: an
// unexpired paid plan, or a trial with credits left.
func (s *Subscription) IsActive(now time.Time) bool {
	if s.Status == SubscriptionStatusBlocked {
		return false
	}
	if s.IsTrial {
		return s.Credits > 0
	}
	if s.Status != SubscriptionStatusActive {
		return false
	}
	if s.PlanType == PlanTypeMonthly {
		return s.SubscriptionEnd == nil || s.SubscriptionEnd.After(now)
	}
	return s.Credits > 0
}
