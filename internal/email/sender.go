package email

import "context"

// Message is a single outbound email. The from address is configured on
// the sender, not per message.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender defines the interface for delivering email. This abstraction
// allows swapping the log-only dev sender with Resend without refactoring.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
