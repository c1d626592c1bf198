package specification

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by primary key
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByWhatsappNumber filters by the sender's WhatsApp number
type ByWhatsappNumber struct {
	Number string
}

func (s ByWhatsappNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("whatsapp_number = ?", s.Number)
}

// ByOrderId filters payment orders by the gateway order id
type ByOrderId struct {
	OrderId string
}

func (s ByOrderId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderId)
}

// ByResponseType filters chat logs by outcome classification
type ByResponseType struct {
	ResponseType string
}

func (s ByResponseType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("response_type = ?", s.ResponseType)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Paginate applies limit/offset
type Paginate struct {
	Limit  int
	Offset int
}

func (s Paginate) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}
