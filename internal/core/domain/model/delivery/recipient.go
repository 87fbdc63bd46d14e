package delivery

import (
	"errors"
	"fmt"
	"time"

	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/errs"
	"chipdrop/internal/pkg/guard"
)

// ErrRecipientIsNotConstructed is returned when a Recipient link was not
// created through NewRecipient or RestoreRecipient.
var ErrRecipientIsNotConstructed = errors.New("Recipient must be created via NewRecipient constructor")

// LinkStatus represents a recipient's acceptance state within a delivery.
//
// State transitions:
//
//	Pending ──> Accepted
//
// Accepted is final; a recipient cannot revert to Pending.
type LinkStatus int

const (
	// LinkStatusUnknown represents an invalid or undefined link status.
	LinkStatusUnknown LinkStatus = iota

	// LinkStatusPending means the recipient has not yet accepted the delivery.
	LinkStatusPending

	// LinkStatusAccepted means the recipient committed to receive the delivery.
	LinkStatusAccepted
)

// String returns the human-readable name of the link status.
func (s LinkStatus) String() string {
	switch s {
	case LinkStatusPending:
		return "Pending"
	case LinkStatusAccepted:
		return "Accepted"
	default:
		return "Unknown"
	}
}

// Validate checks that the LinkStatus value is Pending or Accepted.
func (s LinkStatus) Validate() error {
	if s != LinkStatusPending && s != LinkStatusAccepted {
		return errs.NewValueIsInvalidErrorWithCause(
			"link status",
			fmt.Errorf("%d is not a valid link status", s),
		)
	}
	return nil
}

// Accept transitions the link status to Accepted.
// Accepting an already accepted link is a no-op, so the operation is
// idempotent. Returns an error for an unconstructed status value.
func (s LinkStatus) Accept() (LinkStatus, error) {
	if err := s.Validate(); err != nil {
		return LinkStatusUnknown, err
	}
	return LinkStatusAccepted, nil
}

// Recipient is the join entity linking one user to a delivery.
// It records whether the user accepted the delivery and whether the user is
// the committed (assigned) party rather than a merely requested one.
// A Recipient has no lifecycle outside its parent Delivery.
type Recipient struct {
	userID     kernel.UUID
	deliveryID kernel.UUID
	status     LinkStatus
	assigned   bool
	updatedAt  time.Time

	guard guard.ConstructorGuard
}

// NewRecipient creates a Pending recipient link for the given user and delivery.
// assigned marks the user as the committed party of the delivery.
func NewRecipient(userID, deliveryID kernel.UUID, assigned bool) (*Recipient, error) {
	recipient := &Recipient{
		status: LinkStatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		recipient.setUserID(userID),
		recipient.setDeliveryID(deliveryID),
	); err != nil {
		return nil, err
	}

	recipient.assigned = assigned
	recipient.updatedAt = time.Now().UTC()
	return recipient, nil
}

// RestoreRecipient reconstructs a recipient link from persistent storage.
func RestoreRecipient(
	userID, deliveryID kernel.UUID,
	status LinkStatus,
	assigned bool,
	updatedAt time.Time,
) (*Recipient, error) {
	recipient := &Recipient{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		recipient.setUserID(userID),
		recipient.setDeliveryID(deliveryID),
		recipient.setStatus(status),
	); err != nil {
		return nil, err
	}

	recipient.assigned = assigned
	recipient.updatedAt = updatedAt
	return recipient, nil
}

// Validate ensures the Recipient was created through a constructor.
func (r *Recipient) Validate() error {
	if r == nil {
		return ErrRecipientIsNotConstructed
	}
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

// UserID returns the linked user's identifier.
func (r *Recipient) UserID() kernel.UUID {
	return r.userID
}

// DeliveryID returns the parent delivery's identifier.
func (r *Recipient) DeliveryID() kernel.UUID {
	return r.deliveryID
}

// Status returns the recipient's acceptance state.
func (r *Recipient) Status() LinkStatus {
	return r.status
}

// IsAssigned reports whether the recipient is the committed party.
func (r *Recipient) IsAssigned() bool {
	return r.assigned
}

// UpdatedAt returns the time of the last link mutation.
func (r *Recipient) UpdatedAt() time.Time {
	return r.updatedAt
}

// Accept marks the recipient link as Accepted. Idempotent.
func (r *Recipient) Accept() error {
	newStatus, err := r.status.Accept()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.updatedAt = time.Now().UTC()
	return nil
}

// MarkAssigned flips the committed-party flag on the link.
func (r *Recipient) MarkAssigned(assigned bool) {
	r.assigned = assigned
	r.updatedAt = time.Now().UTC()
}

func (r *Recipient) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	r.userID = userID
	return nil
}

func (r *Recipient) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	r.deliveryID = deliveryID
	return nil
}

func (r *Recipient) setStatus(status LinkStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
