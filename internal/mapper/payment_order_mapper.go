package mapper

import (
	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/model"
)

type PaymentOrderMapper struct{}

func NewPaymentOrderMapper() *PaymentOrderMapper {
	return &PaymentOrderMapper{}
}

func (m *PaymentOrderMapper) ToEntity(o *model.PaymentOrder) *entity.PaymentOrder {
	if o == nil {
		return nil
	}
	return &entity.PaymentOrder{
		Id:             o.Id,
		OrderId:        o.OrderId,
		WhatsappNumber: o.WhatsappNumber,
		PlanType:       o.PlanType,
		GrossAmount:    o.GrossAmount,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (m *PaymentOrderMapper) ToModel(o *entity.PaymentOrder) *model.PaymentOrder {
	if o == nil {
		return nil
	}
	return &model.PaymentOrder{
		Id:             o.Id,
		OrderId:        o.OrderId,
		WhatsappNumber: o.WhatsappNumber,
		PlanType:       o.PlanType,
		GrossAmount:    o.GrossAmount,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
