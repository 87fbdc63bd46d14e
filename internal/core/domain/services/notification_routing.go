package services

import (
	"fmt"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/pkg/errs"
)

// NotificationKind identifies the flavor of notification a lifecycle event
// produces. Each kind carries different content: a request invites acceptance
// and includes an accept link, a scheduled notice informs about a committed
// drop-off, an accepted notice goes back to the assigning company, and an
// expiring warning precedes automatic expiry.
type NotificationKind int

const (
	// KindUnknown represents an invalid or undefined notification kind.
	KindUnknown NotificationKind = iota

	// KindRequest asks the recipient to accept a requested delivery.
	KindRequest

	// KindScheduled informs the recipient of an already-committed drop-off.
	KindScheduled

	// KindAccepted informs the assigning company that a recipient accepted.
	KindAccepted

	// KindExpiring warns that a scheduled delivery is about to expire.
	KindExpiring
)

// String returns the human-readable name of the notification kind.
func (k NotificationKind) String() string {
	switch k {
	case KindRequest:
		return "Request"
	case KindScheduled:
		return "Scheduled"
	case KindAccepted:
		return "Accepted"
	case KindExpiring:
		return "Expiring"
	default:
		return "Unknown"
	}
}

// KindForStatus selects the notification kind for a delivery that reached the
// given status via create or update. The switch is exhaustive over notifiable
// statuses: Requested routes to the acceptance-inviting request flavor, while
// Scheduled routes to the committed drop-off flavor. Terminal statuses produce
// no create/update notification and yield an error.
func KindForStatus(status delivery.Status) (NotificationKind, error) {
	switch status {
	case delivery.StatusRequested:
		return KindRequest, nil
	case delivery.StatusScheduled:
		return KindScheduled, nil
	case delivery.StatusDelivered, delivery.StatusExpired, delivery.StatusUnknown:
		return KindUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("no notification is routed for status %s", status.String()),
		)
	default:
		return KindUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("no notification is routed for status %s", status.String()),
		)
	}
}
