package entity

import "time"

// ProcessedMessage records a WhatsApp message id (wamid) that has already
// been handled, so webhook redeliveries are not answered twice.
type ProcessedMessage struct {
	MessageId string
	CreatedAt time.Time
}
