package ports

import (
	"context"

	"chipdrop/internal/core/domain/model/kernel"
)

// Contact holds the resolved contact information for one delivery participant.
type Contact struct {
	Name    string
	Email   string
	Phones  []string
	Address string
}

// ContactDirectory resolves contact information for notification dispatch.
// Backed by the user/profile service; the dispatcher performs its per-recipient
// lookups through this port.
type ContactDirectory interface {
	// Contact resolves name, email, phones, and formatted address for a user.
	Contact(ctx context.Context, userID kernel.UUID) (Contact, error)
}

// EmailMessage is one outbound email.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// EmailSender is the outbound email transport.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

// SMSMessage is one outbound text message.
type SMSMessage struct {
	To   string
	Body string
}

// SMSSender is the outbound SMS transport.
type SMSSender interface {
	SendSMS(ctx context.Context, msg SMSMessage) error
}

// TemplateHydrator is the optional company-template collaborator.
// Hydrate returns the hydrated body and true when the company has an enabled
// template for the given template name; ok=false means the caller should fall
// back to the plain, template-independent content.
type TemplateHydrator interface {
	Hydrate(ctx context.Context, companyID kernel.UUID, template string, options map[string]string) (body string, ok bool, err error)
}
