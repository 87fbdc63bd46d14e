// Package commands contains the delivery lifecycle operations.
// Implements the Command pattern for write operations: each operation is a
// validated command value object plus a handler that owns the transaction
// boundary. Handlers follow a consistent shape: validate, begin, mutate
// through repositories, commit — and only after a successful commit trigger
// best-effort notifications.
package commands

import (
	"context"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/core/domain/services"
	"chipdrop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a
	// transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// AccountRepoFactory provides access to the account repository within a
	// transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// DeliveryUoW manages transactions for delivery-only operations.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// UoW manages transactions across delivery and account aggregates.
	// Used by accept, which flips the assigner's availability in the same
	// transaction as the link acceptance.
	UoW interface {
		TxManager
		DeliveryRepoFactory
		AccountRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Notifier is the best-effort notification collaborator of the lifecycle
// handlers. Implementations gather all per-recipient rounds before returning;
// handlers log the returned error and never fail a committed operation on it.
type Notifier interface {
	Dispatch(ctx context.Context, d *delivery.Delivery, kind services.NotificationKind) error
	DispatchAccepted(ctx context.Context, d *delivery.Delivery, acceptedBy kernel.UUID) error
}
