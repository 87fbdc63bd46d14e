// Package notifications implements the fan-out notification dispatcher.
//
// For a delivery and a notification kind, the dispatcher runs one independent
// round per recipient link. A round resolves the contact information of the
// assigning company and of the recipient through the ContactDirectory port,
// builds two message flavors (recipient-facing and company-facing), and sends
// each flavor as an email and as an SMS through the transport ports.
//
// Rounds run concurrently and are isolated from each other: a failed lookup or
// send abandons only that recipient's round, logs the failure, and never stops
// the other rounds. Dispatch gathers all rounds before returning, so callers
// and tests can deterministically await completion, but lifecycle command
// handlers treat the returned error as observability only — a committed
// lifecycle operation never fails because a notification did.
//
// Message bodies come from a plain options bag, or from a hydrated company
// template when the TemplateHydrator reports one enabled.
package notifications
