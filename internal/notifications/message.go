package notifications

import (
	"fmt"
	"strings"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/services"
	"chipdrop/internal/core/ports"
)

// templateNames maps each notification kind to the company template slug the
// hydrator resolves.
var templateNames = map[services.NotificationKind]string{
	services.KindRequest:   "delivery_request",
	services.KindScheduled: "delivery_scheduled",
	services.KindAccepted:  "delivery_accepted",
	services.KindExpiring:  "delivery_expiring",
}

// messageOptions is the template-independent content bag shared by every
// flavor of one recipient round.
type messageOptions struct {
	CompanyName   string
	RecipientName string
	Address       string
	Details       string
	RecipientNote string
	CompanyNote   string
	AcceptLink    string
}

// asBag flattens the options for the template hydrator.
func (o messageOptions) asBag() map[string]string {
	return map[string]string{
		"company_name":   o.CompanyName,
		"recipient_name": o.RecipientName,
		"address":        o.Address,
		"details":        o.Details,
		"recipient_note": o.RecipientNote,
		"company_note":   o.CompanyNote,
		"accept_link":    o.AcceptLink,
	}
}

func buildOptions(d *delivery.Delivery, company, recipient ports.Contact, acceptBaseURL string) messageOptions {
	opts := messageOptions{
		CompanyName:   company.Name,
		RecipientName: recipient.Name,
		Address:       recipient.Address,
		Details:       d.Details(),
		RecipientNote: d.RecipientNote(),
		CompanyNote:   d.CompanyNote(),
	}
	if acceptBaseURL != "" {
		opts.AcceptLink = fmt.Sprintf("%s/deliveries/%s/accept", strings.TrimRight(acceptBaseURL, "/"), d.ID())
	}
	return opts
}

// recipientSubject returns the subject line of the recipient-facing email.
func recipientSubject(kind services.NotificationKind, opts messageOptions) string {
	switch kind {
	case services.KindRequest:
		return fmt.Sprintf("%s would like to drop off wood chips", opts.CompanyName)
	case services.KindScheduled:
		return fmt.Sprintf("%s scheduled a wood chip delivery", opts.CompanyName)
	case services.KindAccepted:
		return "Your delivery request was accepted"
	case services.KindExpiring:
		return "Your scheduled delivery is about to expire"
	default:
		return "Delivery update"
	}
}

// recipientBody returns the plain recipient-facing body. The request flavor is
// the only one that invites acceptance and carries the accept link.
func recipientBody(kind services.NotificationKind, opts messageOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", opts.RecipientName)

	switch kind {
	case services.KindRequest:
		fmt.Fprintf(&b, "%s is asking to drop off a load at %s.\n", opts.CompanyName, opts.Address)
		fmt.Fprintf(&b, "Load: %s\n", opts.Details)
		if opts.AcceptLink != "" {
			fmt.Fprintf(&b, "\nAccept the delivery here: %s\n", opts.AcceptLink)
		}
	case services.KindScheduled:
		fmt.Fprintf(&b, "%s has scheduled a drop-off at %s.\n", opts.CompanyName, opts.Address)
		fmt.Fprintf(&b, "Load: %s\n", opts.Details)
	case services.KindAccepted:
		fmt.Fprintf(&b, "Your delivery from %s is confirmed for %s.\n", opts.CompanyName, opts.Address)
	case services.KindExpiring:
		fmt.Fprintf(&b, "The delivery from %s scheduled for %s has not been completed and will expire soon.\n",
			opts.CompanyName, opts.Address)
	}

	if opts.RecipientNote != "" {
		fmt.Fprintf(&b, "\nNote from you: %s\n", opts.RecipientNote)
	}
	return b.String()
}

// companySubject returns the subject line of the company-facing email.
func companySubject(kind services.NotificationKind, opts messageOptions) string {
	switch kind {
	case services.KindRequest:
		return fmt.Sprintf("Delivery request sent to %s", opts.RecipientName)
	case services.KindScheduled:
		return fmt.Sprintf("Delivery scheduled for %s", opts.RecipientName)
	case services.KindAccepted:
		return fmt.Sprintf("%s accepted your delivery request", opts.RecipientName)
	case services.KindExpiring:
		return fmt.Sprintf("Delivery for %s is about to expire", opts.RecipientName)
	default:
		return "Delivery update"
	}
}

// companyBody returns the plain company-facing body.
func companyBody(kind services.NotificationKind, opts messageOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", opts.CompanyName)

	switch kind {
	case services.KindRequest:
		fmt.Fprintf(&b, "%s was asked to accept a drop-off at %s.\n", opts.RecipientName, opts.Address)
	case services.KindScheduled:
		fmt.Fprintf(&b, "Your drop-off for %s at %s is on the schedule.\n", opts.RecipientName, opts.Address)
	case services.KindAccepted:
		fmt.Fprintf(&b, "%s accepted the drop-off at %s. You are marked ready for new deliveries.\n",
			opts.RecipientName, opts.Address)
	case services.KindExpiring:
		fmt.Fprintf(&b, "The drop-off for %s at %s is nearing its expiry window.\n",
			opts.RecipientName, opts.Address)
	}

	if opts.CompanyNote != "" {
		fmt.Fprintf(&b, "\nNote: %s\n", opts.CompanyNote)
	}
	return b.String()
}

// smsText compresses a flavor into one text message.
func smsText(kind services.NotificationKind, companyFacing bool, opts messageOptions) string {
	if companyFacing {
		return companySubject(kind, opts)
	}
	text := recipientSubject(kind, opts)
	if kind == services.KindRequest && opts.AcceptLink != "" {
		text += " Accept: " + opts.AcceptLink
	}
	return text
}
