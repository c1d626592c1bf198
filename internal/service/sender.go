package service

import "context"

// MessageSender delivers outbound messages to a subscriber. Satisfied by
// whatsapp.Client.
type MessageSender interface {
	SendText(ctx context.Context, to string, body string) error
}
