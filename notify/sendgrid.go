// Package notify sends operational email to the finance/ops distribution
// list after settlement cycles.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers operational reports through SendGrid.
type Mailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewMailer builds a SendGrid-backed mailer.
func NewMailer(apiKey, fromName, fromEmail string) *Mailer {
	return &Mailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// SendOperationalReport mails an HTML report to every recipient. A non-2xx
// SendGrid response is an error; the caller decides whether that aborts the
// cycle.
func (m *Mailer) SendOperationalReport(ctx context.Context, subject, html string, recipients []string) error {
	if len(recipients) == 0 {
		slog.Warn("no report recipients configured, skipping email", "subject", subject)
		return nil
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	personalization := mail.NewPersonalization()
	for _, r := range recipients {
		personalization.AddTos(mail.NewEmail("", r))
	}

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = subject
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/html", html))

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sending report %q: %w", subject, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sending report %q: sendgrid status %d: %s", subject, resp.StatusCode, resp.Body)
	}

	slog.Info("operational report sent", "subject", subject, "recipients", len(recipients))
	return nil
}
