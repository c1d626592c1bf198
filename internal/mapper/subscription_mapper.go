package mapper

import (
	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:                s.Id,
		WhatsappNumber:    s.WhatsappNumber,
		Status:            s.Status,
		PlanType:          s.PlanType,
		Credits:           s.Credits,
		IsTrial:           s.IsTrial,
		SubscriptionStart: s.SubscriptionStart,
		SubscriptionEnd:   s.SubscriptionEnd,
		MessageCountToday: s.MessageCountToday,
		LastMessageDate:   s.LastMessageDate,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:                s.Id,
		WhatsappNumber:    s.WhatsappNumber,
		Status:            s.Status,
		PlanType:          s.PlanType,
		Credits:           s.Credits,
		IsTrial:           s.IsTrial,
		SubscriptionStart: s.SubscriptionStart,
		SubscriptionEnd:   s.SubscriptionEnd,
		MessageCountToday: s.MessageCountToday,
		LastMessageDate:   s.LastMessageDate,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
