package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_ANSWERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type codes published on the bus.
const (
	TypeChatInteraction       = "CHAT_INTERACTION"
	TypeSubscriptionActivated = "SUBSCRIPTION_ACTIVATED"
)

// BaseEvent is the generic implementation used by publishers and the
// subscriber when reconstructing events off the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewChatInteraction builds the event emitted after every processed
// question, whatever the outcome variant was.
func NewChatInteraction(whatsappNumber, question, response, responseType string, chunksUsed []string, latencyMs int) Event {
	ids := make([]interface{}, len(chunksUsed))
	for i, id := range chunksUsed {
		ids[i] = id
	}
	return BaseEvent{
		Type: TypeChatInteraction,
		Data: map[string]interface{}{
			"whatsapp_number": whatsappNumber,
			"user_message":    question,
			"bot_response":    response,
			"response_type":   responseType,
			"chunks_used":     ids,
			"latency_ms":      latencyMs,
		},
		OccurredAt: time.Now(),
	}
}

// NewSubscriptionActivated builds the event emitted when a payment
// settles and a plan becomes active.
func NewSubscriptionActivated(whatsappNumber, planType, orderId string) Event {
	return BaseEvent{
		Type: TypeSubscriptionActivated,
		Data: map[string]interface{}{
			"whatsapp_number": whatsappNumber,
			"plan_type":       planType,
			"order_id":        orderId,
		},
		OccurredAt: time.Now(),
	}
}
