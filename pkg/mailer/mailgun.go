package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun delivers the transactional mail this service sends (currently only
// the welcome message). The underlying client is built once and reused by the
// worker across queue messages.
type Mailgun struct {
	client *mg.MailgunImpl
	sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), sender: sender}
}

// Send delivers one message. text is the plain-text body; html, when
// non-empty, is attached as the rich alternative. The deadline caps a single
// delivery attempt; the queue consumer handles retries by requeueing.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}
