// Package account contains the Account aggregate for delivery participants.
// Only the slice of the user profile the lifecycle engine touches lives here:
// identity and the availability flag that accepting a delivery request flips
// back to Ready on the assigning company's account.
package account

import (
	"errors"
	"fmt"

	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/errs"
	"chipdrop/internal/pkg/guard"
)

var (
	// ErrAccountIsNotConstructed is returned when using an improperly
	// initialized Account.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")
	// ErrNameIsRequired is returned when creating an account without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Availability is the account's delivery-availability flag.
type Availability int

const (
	// AvailabilityUnknown represents an invalid or undefined availability.
	AvailabilityUnknown Availability = iota

	// AvailabilityReady means the account can take part in new deliveries.
	AvailabilityReady

	// AvailabilityBusy means the account is tied up in an open delivery request.
	AvailabilityBusy
)

// String returns the human-readable name of the availability flag.
func (a Availability) String() string {
	switch a {
	case AvailabilityReady:
		return "Ready"
	case AvailabilityBusy:
		return "Busy"
	default:
		return "Unknown"
	}
}

// Validate checks that the Availability value is Ready or Busy.
func (a Availability) Validate() error {
	if a != AvailabilityReady && a != AvailabilityBusy {
		return errs.NewValueIsInvalidErrorWithCause(
			"availability",
			fmt.Errorf("%d is not a valid availability", a),
		)
	}
	return nil
}

// Account is a delivery participant: an assigning company user or a recipient.
type Account struct {
	id           kernel.UUID
	name         string
	availability Availability

	guard guard.ConstructorGuard
}

// NewAccount creates an account in Ready availability.
func NewAccount(id kernel.UUID, name string) (*Account, error) {
	a := &Account{
		availability: AvailabilityReady,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAccount reconstructs an account from persistent storage.
func RestoreAccount(id kernel.UUID, name string, availability Availability) (*Account, error) {
	a := &Account{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setAvailability(availability),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Account was created through a constructor.
func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Name returns the account's display name.
func (a *Account) Name() string {
	return a.name
}

// Availability returns the account's availability flag.
func (a *Account) Availability() Availability {
	return a.availability
}

// MarkReady flips the account back to Ready availability. Idempotent.
func (a *Account) MarkReady() {
	a.availability = AvailabilityReady
}

// MarkBusy marks the account as tied up in an open delivery request.
func (a *Account) MarkBusy() {
	a.availability = AvailabilityBusy
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Account) setAvailability(availability Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	a.availability = availability
	return nil
}
