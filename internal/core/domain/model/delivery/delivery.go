package delivery

import (
	"errors"
	"fmt"
	"time"

	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/errs"
	"chipdrop/internal/pkg/guard"
)

// Domain errors for delivery operations.
var (
	// ErrDeliveryIsNotConstructed is returned when using an improperly
	// initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
	// ErrRecipientsAreRequired is returned when creating a delivery without
	// at least one recipient.
	ErrRecipientsAreRequired = errs.NewValueIsRequiredError("recipients")
	// ErrDetailsAreRequired is returned when creating a delivery without details.
	ErrDetailsAreRequired = errs.NewValueIsRequiredError("details")
	// ErrRecipientNotLinked is returned when an operation references a user
	// that has no link on the delivery.
	ErrRecipientNotLinked = errors.New("user is not a recipient of this delivery")
)

// Delivery is the aggregate root for one hand-off of products from an
// assigning company to one or more recipients.
//
// Invariants:
//   - Must have a valid unique identifier and valid assigner/assignee IDs
//   - Always has at least one recipient link
//   - Recipient links are unique per user
//   - Status transitions follow the Status state machine
//   - Can only be created through NewDelivery or RestoreDelivery
type Delivery struct {
	id            kernel.UUID
	assignedBy    kernel.UUID
	assignedTo    kernel.UUID
	status        Status
	details       string
	recipientNote string
	companyNote   string
	createdAt     time.Time
	recipients    []*Recipient
	productIDs    []kernel.UUID

	guard guard.ConstructorGuard
}

// NewDelivery creates a delivery together with its recipient links, one per
// entry in recipientIDs. The link of the assigned user is marked as the
// committed party. Only Requested and Scheduled are valid initial statuses.
//
// Example:
//
//	d, err := NewDelivery(
//	    kernel.NewUUID(), companyID, recipientID,
//	    StatusRequested, "oak chips, ~4 cubic yards", "", "",
//	    []kernel.UUID{recipientID}, nil,
//	)
func NewDelivery(
	id, assignedBy, assignedTo kernel.UUID,
	status Status,
	details, recipientNote, companyNote string,
	recipientIDs []kernel.UUID,
	productIDs []kernel.UUID,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setAssignedBy(assignedBy),
		d.setAssignedTo(assignedTo),
		d.setInitialStatus(status),
		d.setDetails(details),
		d.setProductIDs(productIDs),
	); err != nil {
		return nil, err
	}

	if len(recipientIDs) == 0 {
		return nil, ErrRecipientsAreRequired
	}
	for _, userID := range recipientIDs {
		if err := d.AddRecipient(userID); err != nil {
			return nil, err
		}
	}

	d.recipientNote = recipientNote
	d.companyNote = companyNote
	d.createdAt = time.Now().UTC()
	return d, nil
}

// RestoreDelivery reconstructs a delivery aggregate from persistent storage,
// including its recipient links and product links.
func RestoreDelivery(
	id, assignedBy, assignedTo kernel.UUID,
	status Status,
	details, recipientNote, companyNote string,
	createdAt time.Time,
	recipients []*Recipient,
	productIDs []kernel.UUID,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setAssignedBy(assignedBy),
		d.setAssignedTo(assignedTo),
		d.setStatus(status),
		d.setDetails(details),
		d.setRecipients(recipients),
		d.setProductIDs(productIDs),
	); err != nil {
		return nil, err
	}

	d.recipientNote = recipientNote
	d.companyNote = companyNote
	d.createdAt = createdAt
	return d, nil
}

// Validate ensures the Delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// AssignedBy returns the assigning company user's identifier.
func (d *Delivery) AssignedBy() kernel.UUID {
	return d.assignedBy
}

// AssignedTo returns the committed recipient's identifier.
func (d *Delivery) AssignedTo() kernel.UUID {
	return d.assignedTo
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// Details returns the free-form delivery description.
func (d *Delivery) Details() string {
	return d.details
}

// RecipientNote returns the text addressed to recipients.
func (d *Delivery) RecipientNote() string {
	return d.recipientNote
}

// CompanyNote returns the text addressed to the assigning company.
func (d *Delivery) CompanyNote() string {
	return d.companyNote
}

// CreatedAt returns the creation time of the delivery.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// Recipients returns the recipient links of the delivery.
func (d *Delivery) Recipients() []*Recipient {
	return d.recipients
}

// ProductIDs returns the identifiers of products included in the delivery.
func (d *Delivery) ProductIDs() []kernel.UUID {
	return d.productIDs
}

// Recipient returns the link of the given user, or ErrRecipientNotLinked.
func (d *Delivery) Recipient(userID kernel.UUID) (*Recipient, error) {
	for _, r := range d.recipients {
		if r.UserID().IsEqual(userID) {
			return r, nil
		}
	}
	return nil, ErrRecipientNotLinked
}

// TransitionTo moves the delivery toward the target status through the Status
// state machine. Re-applying the current status is a no-op.
func (d *Delivery) TransitionTo(target Status) error {
	newStatus, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

// AcceptBy marks the given user's link as Accepted.
// Returns ErrRecipientNotLinked when the user has no link on the delivery.
func (d *Delivery) AcceptBy(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	recipient, err := d.Recipient(userID)
	if err != nil {
		return err
	}
	return recipient.Accept()
}

// AddRecipient links a user to the delivery with Pending status.
// The link is marked as the committed party when the user is the assignee.
// Linking the same user twice is rejected.
func (d *Delivery) AddRecipient(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	if _, err := d.Recipient(userID); err == nil {
		return errs.NewObjectAlreadyExistsError("recipient", userID.String())
	}

	recipient, err := NewRecipient(userID, d.id, userID.IsEqual(d.assignedTo))
	if err != nil {
		return err
	}

	d.recipients = append(d.recipients, recipient)
	return nil
}

// RemoveRecipient unlinks a user from the delivery.
// The last remaining recipient cannot be removed: a delivery always has at
// least one recipient link.
func (d *Delivery) RemoveRecipient(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	if len(d.recipients) <= 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"recipients",
			errors.New("a delivery must keep at least one recipient"),
		)
	}

	for i, r := range d.recipients {
		if r.UserID().IsEqual(userID) {
			d.recipients = append(d.recipients[:i], d.recipients[i+1:]...)
			return nil
		}
	}
	return ErrRecipientNotLinked
}

// Reassign moves the committed-party flag to another linked recipient and
// updates the delivery's content fields. Used by delivery updates.
func (d *Delivery) Reassign(assignedTo kernel.UUID, details, recipientNote, companyNote string) error {
	if err := assignedTo.Validate(); err != nil {
		return err
	}
	if details == "" {
		return ErrDetailsAreRequired
	}

	target, err := d.Recipient(assignedTo)
	if err != nil {
		return err
	}

	for _, r := range d.recipients {
		r.MarkAssigned(false)
	}
	target.MarkAssigned(true)

	d.assignedTo = assignedTo
	d.details = details
	d.recipientNote = recipientNote
	d.companyNote = companyNote
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setAssignedBy(assignedBy kernel.UUID) error {
	if err := assignedBy.Validate(); err != nil {
		return err
	}
	d.assignedBy = assignedBy
	return nil
}

func (d *Delivery) setAssignedTo(assignedTo kernel.UUID) error {
	if err := assignedTo.Validate(); err != nil {
		return err
	}
	d.assignedTo = assignedTo
	return nil
}

func (d *Delivery) setInitialStatus(status Status) error {
	if status != StatusRequested && status != StatusScheduled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid initial status", status.String()),
		)
	}
	d.status = status
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Delivery) setDetails(details string) error {
	if details == "" {
		return ErrDetailsAreRequired
	}
	d.details = details
	return nil
}

func (d *Delivery) setRecipients(recipients []*Recipient) error {
	if len(recipients) == 0 {
		return ErrRecipientsAreRequired
	}
	for _, r := range recipients {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	d.recipients = recipients
	return nil
}

func (d *Delivery) setProductIDs(productIDs []kernel.UUID) error {
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	d.productIDs = productIDs
	return nil
}
