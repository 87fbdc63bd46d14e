// Package delivery contains the Delivery aggregate, the core of the
// coordination domain.
//
// A Delivery represents one hand-off of wood byproducts from an assigning
// company to one or more recipients. The aggregate owns:
//
//   - the delivery Status state machine (Requested, Scheduled, Delivered,
//     Expired) with its transition rules,
//   - the Recipient links, one per participating user, each with its own
//     Pending/Accepted acceptance state,
//   - the product links included in the hand-off.
//
// Recipient links and product links have no identity or lifecycle outside
// their parent Delivery: they are created in the same transaction as the
// delivery row and deleted together with it.
//
// All state mutations go through aggregate methods so invariants hold:
// a delivery always has at least one recipient link, status transitions are
// monotonic except for explicit re-scheduling, and terminal statuses
// (Delivered, Expired) accept no further transitions.
package delivery
