package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/core/domain/services"
	"chipdrop/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// Dispatcher fans notification rounds out over a delivery's recipients.
type Dispatcher struct {
	directory ports.ContactDirectory
	email     ports.EmailSender
	sms       ports.SMSSender
	hydrator  ports.TemplateHydrator
	logger    *slog.Logger

	// acceptBaseURL is the public base URL accept links are built from.
	acceptBaseURL string
}

// NewDispatcher creates a dispatcher. hydrator may be nil when company
// templates are disabled; plain message bodies are used instead.
func NewDispatcher(
	directory ports.ContactDirectory,
	email ports.EmailSender,
	sms ports.SMSSender,
	hydrator ports.TemplateHydrator,
	logger *slog.Logger,
	acceptBaseURL string,
) *Dispatcher {
	return &Dispatcher{
		directory:     directory,
		email:         email,
		sms:           sms,
		hydrator:      hydrator,
		logger:        logger.With("component", "notification_dispatcher"),
		acceptBaseURL: acceptBaseURL,
	}
}

// Dispatch runs one notification round per recipient link, concurrently, and
// waits for all rounds to finish. Order between recipients is not guaranteed.
// A failed round is logged and isolated; the first round error is returned for
// observability, never for control flow in lifecycle operations.
func (dsp *Dispatcher) Dispatch(ctx context.Context, d *delivery.Delivery, kind services.NotificationKind) error {
	if err := d.Validate(); err != nil {
		return err
	}

	var g errgroup.Group
	for _, recipient := range d.Recipients() {
		g.Go(func() error {
			if err := dsp.dispatchRound(ctx, d, kind, recipient.UserID()); err != nil {
				dsp.logger.ErrorContext(ctx, "notification round failed",
					"delivery_id", d.ID().String(),
					"recipient_id", recipient.UserID().String(),
					"kind", kind.String(),
					"error", err,
				)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// DispatchAccepted notifies the assigning company (and confirms to the
// acceptor) that a request was accepted. A single round addressed to the
// accepting recipient.
func (dsp *Dispatcher) DispatchAccepted(ctx context.Context, d *delivery.Delivery, acceptedBy kernel.UUID) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if err := dsp.dispatchRound(ctx, d, services.KindAccepted, acceptedBy); err != nil {
		dsp.logger.ErrorContext(ctx, "accepted notification failed",
			"delivery_id", d.ID().String(),
			"recipient_id", acceptedBy.String(),
			"error", err,
		)
		return err
	}
	return nil
}

// dispatchRound performs one recipient's round: contact lookups, message
// building, and the four sends (two flavors, each email and SMS). Lookup
// failure abandons the round; send failures are joined so every send is at
// least attempted.
func (dsp *Dispatcher) dispatchRound(
	ctx context.Context,
	d *delivery.Delivery,
	kind services.NotificationKind,
	recipientID kernel.UUID,
) error {
	company, err := dsp.directory.Contact(ctx, d.AssignedBy())
	if err != nil {
		return fmt.Errorf("resolve company contact: %w", err)
	}
	recipient, err := dsp.directory.Contact(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("resolve recipient contact: %w", err)
	}

	opts := buildOptions(d, company, recipient, dsp.acceptBaseURL)

	recipientEmailBody := dsp.hydrateOrFallback(ctx, d.AssignedBy(), kind, opts, recipientBody(kind, opts))

	var sendErrs []error
	if recipient.Email != "" {
		sendErrs = append(sendErrs, dsp.email.SendEmail(ctx, ports.EmailMessage{
			To:      recipient.Email,
			Subject: recipientSubject(kind, opts),
			Body:    recipientEmailBody,
		}))
	}
	if len(recipient.Phones) > 0 {
		sendErrs = append(sendErrs, dsp.sms.SendSMS(ctx, ports.SMSMessage{
			To:   recipient.Phones[0],
			Body: smsText(kind, false, opts),
		}))
	}
	if company.Email != "" {
		sendErrs = append(sendErrs, dsp.email.SendEmail(ctx, ports.EmailMessage{
			To:      company.Email,
			Subject: companySubject(kind, opts),
			Body:    companyBody(kind, opts),
		}))
	}
	if len(company.Phones) > 0 {
		sendErrs = append(sendErrs, dsp.sms.SendSMS(ctx, ports.SMSMessage{
			To:   company.Phones[0],
			Body: smsText(kind, true, opts),
		}))
	}

	return errors.Join(sendErrs...)
}

// hydrateOrFallback asks the template hydrator for a company template and
// falls back to the plain body when none is enabled or hydration fails.
func (dsp *Dispatcher) hydrateOrFallback(
	ctx context.Context,
	companyID kernel.UUID,
	kind services.NotificationKind,
	opts messageOptions,
	fallback string,
) string {
	if dsp.hydrator == nil {
		return fallback
	}

	body, ok, err := dsp.hydrator.Hydrate(ctx, companyID, templateNames[kind], opts.asBag())
	if err != nil {
		dsp.logger.WarnContext(ctx, "template hydration failed, using plain body",
			"company_id", companyID.String(),
			"kind", kind.String(),
			"error", err,
		)
		return fallback
	}
	if !ok {
		return fallback
	}
	return body
}
