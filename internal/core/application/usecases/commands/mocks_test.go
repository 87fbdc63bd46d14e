package commands_test

import (
	"context"
	"log/slog"
	"time"

	"chipdrop/internal/core/application/usecases/commands"
	"chipdrop/internal/core/domain/model/account"
	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/core/domain/services"
	"chipdrop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) UpdateStatus(ctx context.Context, id kernel.UUID, status delivery.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockDeliveryRepository) UpdateStatusGuarded(
	ctx context.Context,
	id kernel.UUID,
	from, to delivery.Status,
) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryRepository) MarkWarned(ctx context.Context, id kernel.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryRepository) UpdateRecipientStatus(ctx context.Context, r *delivery.Recipient) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDeliveryRepository) AddRecipient(ctx context.Context, r *delivery.Recipient) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDeliveryRepository) RemoveRecipient(ctx context.Context, deliveryID, userID kernel.UUID) error {
	args := m.Called(ctx, deliveryID, userID)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetScheduledBefore(ctx context.Context, cutoff time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockUoW satisfies both commands.DeliveryUoW and commands.UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Dispatch(ctx context.Context, d *delivery.Delivery, kind services.NotificationKind) error {
	args := m.Called(ctx, d, kind)
	return args.Error(0)
}

func (m *MockNotifier) DispatchAccepted(ctx context.Context, d *delivery.Delivery, acceptedBy kernel.UUID) error {
	args := m.Called(ctx, d, acceptedBy)
	return args.Error(0)
}
