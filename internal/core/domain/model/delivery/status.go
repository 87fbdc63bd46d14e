package delivery

import (
	"fmt"

	"chipdrop/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions so deliveries follow
// the coordination workflow.
//
// State transitions:
//
//	Requested ──> Scheduled ──> Delivered
//	    │             │ ▲
//	    │             │ │ (re-scheduling allowed)
//	    │             │ └──┐
//	    └──────┬──────┘    │
//	           v       Scheduled
//	        Expired
//
// Requested and Scheduled may both time out into Expired. Delivered and
// Expired are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusRequested is the state of a delivery that asks recipients for
	// acceptance before the drop-off is committed.
	StatusRequested

	// StatusScheduled is the state of a committed drop-off awaiting delivery.
	StatusScheduled

	// StatusDelivered indicates the hand-off happened. Terminal.
	StatusDelivered

	// StatusExpired indicates the delivery timed out before completion. Terminal.
	StatusExpired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusRequested: "Requested",
		StatusScheduled: "Scheduled",
		StatusDelivered: "Delivered",
		StatusExpired:   "Expired",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusRequested: "Requested",
		StatusScheduled: "Scheduled",
		StatusDelivered: "Delivered",
		StatusExpired:   "Expired",
	}
}

// StatusFromString parses the wire representation of a status
// ("Requested", "Scheduled", "Delivered", "Expired").
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the Status value is one of the four valid states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusExpired
}

// Schedule transitions the status to Scheduled.
//
// Valid transitions:
//   - Requested -> Scheduled (request committed)
//   - Scheduled -> Scheduled (explicit re-scheduling)
//
// Returns the new status, or an error when the transition is not allowed.
func (s Status) Schedule() (Status, error) {
	if s != StatusRequested && s != StatusScheduled {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to schedule", s.String()),
		)
	}
	return StatusScheduled, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Scheduled -> Delivered
//
// Returns the new status, or an error when the transition is not allowed.
func (s Status) Deliver() (Status, error) {
	if s != StatusScheduled {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}
	return StatusDelivered, nil
}

// Expire transitions the status to Expired.
//
// Valid transitions:
//   - Requested -> Expired (never accepted)
//   - Scheduled -> Expired (timed out)
//
// Returns the new status, or an error when the transition is not allowed.
func (s Status) Expire() (Status, error) {
	if s != StatusRequested && s != StatusScheduled {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to expire", s.String()),
		)
	}
	return StatusExpired, nil
}

// TransitionTo applies the transition toward the target status.
// Re-applying the current status is a no-op, which makes narrow status
// updates idempotent. Returns the resulting status or an error when the
// transition is not allowed.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if s == target {
		return s, nil
	}

	switch target {
	case StatusScheduled:
		return s.Schedule()
	case StatusDelivered:
		return s.Deliver()
	case StatusExpired:
		return s.Expire()
	default:
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot transition from %s to %s", s.String(), target.String()),
		)
	}
}
