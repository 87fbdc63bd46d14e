// Package services contains stateless domain services for the delivery
// coordination domain.
//
// NotificationKind routing decides which notification flavor a lifecycle
// transition produces. The decision is keyed by the resulting delivery status
// through an exhaustive switch, so adding a status forces an explicit routing
// case rather than silently falling through a default branch.
package services
