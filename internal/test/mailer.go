package test

import (
	"context"
	"sync"

	"github.com/amvenit/amvenit/internal/adapter/mailer"
)

// MailerStub records sent messages and optionally fails or signals delivery.
type MailerStub struct {
	mu       sync.Mutex
	Messages []mailer.Message

	Err  error
	Sent chan mailer.Message
}

// Send stores the message, then reports the configured error if any.
func (m *MailerStub) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	m.Messages = append(m.Messages, msg)
	m.mu.Unlock()

	if m.Sent != nil {
		select {
		case m.Sent <- msg:
		default:
		}
	}
	return m.Err
}

// SentMessages returns a copy of everything delivered so far.
func (m *MailerStub) SentMessages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mailer.Message, len(m.Messages))
	copy(out, m.Messages)
	return out
}
