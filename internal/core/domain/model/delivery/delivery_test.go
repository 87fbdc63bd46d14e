package delivery_test

import (
	"testing"
	"time"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDelivery(t *testing.T, status delivery.Status, recipientCount int) *delivery.Delivery {
	t.Helper()

	recipientIDs := make([]kernel.UUID, 0, recipientCount)
	for range recipientCount {
		recipientIDs = append(recipientIDs, kernel.NewUUID())
	}

	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		kernel.NewUUID(),
		recipientIDs[0],
		status,
		"oak chips, ~4 cubic yards",
		"gate code 1234",
		"drop on the left side of the driveway",
		recipientIDs,
		nil,
	)
	require.NoError(t, err)
	return d
}

func TestNewDelivery(t *testing.T) {
	t.Run("creates one link per recipient", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusRequested, 3)

		require.Len(t, d.Recipients(), 3)
		for _, r := range d.Recipients() {
			assert.True(t, r.DeliveryID().IsEqual(d.ID()))
			assert.Equal(t, delivery.LinkStatusPending, r.Status())
		}
	})

	t.Run("assigned recipient link is marked committed", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusScheduled, 2)

		assigned, err := d.Recipient(d.AssignedTo())
		require.NoError(t, err)
		assert.True(t, assigned.IsAssigned())

		for _, r := range d.Recipients() {
			if !r.UserID().IsEqual(d.AssignedTo()) {
				assert.False(t, r.IsAssigned())
			}
		}
	})

	t.Run("requires at least one recipient", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			delivery.StatusRequested, "details", "", "",
			nil, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires details", func(t *testing.T) {
		id := kernel.NewUUID()
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), id,
			delivery.StatusRequested, "", "", "",
			[]kernel.UUID{id}, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects terminal initial status", func(t *testing.T) {
		id := kernel.NewUUID()
		for _, status := range []delivery.Status{delivery.StatusDelivered, delivery.StatusExpired} {
			_, err := delivery.NewDelivery(
				kernel.NewUUID(), kernel.NewUUID(), id,
				status, "details", "", "",
				[]kernel.UUID{id}, nil,
			)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("rejects duplicate recipients", func(t *testing.T) {
		id := kernel.NewUUID()
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), id,
			delivery.StatusRequested, "details", "", "",
			[]kernel.UUID{id, id}, nil,
		)
		require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	})
}

func TestDelivery_Validate(t *testing.T) {
	var d delivery.Delivery
	require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)

	constructed := newTestDelivery(t, delivery.StatusRequested, 1)
	require.NoError(t, constructed.Validate())
}

func TestDelivery_TransitionTo(t *testing.T) {
	t.Run("requested to scheduled", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusRequested, 1)
		require.NoError(t, d.TransitionTo(delivery.StatusScheduled))
		assert.Equal(t, delivery.StatusScheduled, d.Status())
	})

	t.Run("idempotent on same status", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusScheduled, 1)
		require.NoError(t, d.TransitionTo(delivery.StatusScheduled))
		require.NoError(t, d.TransitionTo(delivery.StatusScheduled))
		assert.Equal(t, delivery.StatusScheduled, d.Status())
	})

	t.Run("terminal states reject new transitions", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusScheduled, 1)
		require.NoError(t, d.TransitionTo(delivery.StatusDelivered))
		require.Error(t, d.TransitionTo(delivery.StatusExpired))
		assert.Equal(t, delivery.StatusDelivered, d.Status())
	})
}

func TestDelivery_AcceptBy(t *testing.T) {
	t.Run("pending to accepted", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusRequested, 2)
		userID := d.Recipients()[1].UserID()

		require.NoError(t, d.AcceptBy(userID))

		r, err := d.Recipient(userID)
		require.NoError(t, err)
		assert.Equal(t, delivery.LinkStatusAccepted, r.Status())
	})

	t.Run("unknown user rejected", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusRequested, 1)
		err := d.AcceptBy(kernel.NewUUID())
		require.ErrorIs(t, err, delivery.ErrRecipientNotLinked)
	})

	t.Run("accepting twice is a no-op", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusRequested, 1)
		userID := d.Recipients()[0].UserID()

		require.NoError(t, d.AcceptBy(userID))
		require.NoError(t, d.AcceptBy(userID))
	})
}

func TestDelivery_AddRemoveRecipient(t *testing.T) {
	t.Run("add then remove", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusScheduled, 1)
		extra := kernel.NewUUID()

		require.NoError(t, d.AddRecipient(extra))
		require.Len(t, d.Recipients(), 2)

		require.NoError(t, d.RemoveRecipient(extra))
		require.Len(t, d.Recipients(), 1)
	})

	t.Run("duplicate add rejected", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusScheduled, 1)
		err := d.AddRecipient(d.Recipients()[0].UserID())
		require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	})

	t.Run("last recipient cannot be removed", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusScheduled, 1)
		err := d.RemoveRecipient(d.Recipients()[0].UserID())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("removing unlinked user rejected", func(t *testing.T) {
		d := newTestDelivery(t, delivery.StatusScheduled, 2)
		err := d.RemoveRecipient(kernel.NewUUID())
		require.ErrorIs(t, err, delivery.ErrRecipientNotLinked)
	})
}

func TestDelivery_Reassign(t *testing.T) {
	d := newTestDelivery(t, delivery.StatusScheduled, 2)
	other := d.Recipients()[1].UserID()

	require.NoError(t, d.Reassign(other, "pine chips instead", "", "call before arriving"))

	assert.True(t, d.AssignedTo().IsEqual(other))
	assert.Equal(t, "pine chips instead", d.Details())
	assert.Equal(t, "call before arriving", d.CompanyNote())

	reassigned, err := d.Recipient(other)
	require.NoError(t, err)
	assert.True(t, reassigned.IsAssigned())
	assert.False(t, d.Recipients()[0].IsAssigned())
}

func TestRestoreDelivery(t *testing.T) {
	original := newTestDelivery(t, delivery.StatusScheduled, 2)

	restored, err := delivery.RestoreDelivery(
		original.ID(),
		original.AssignedBy(),
		original.AssignedTo(),
		original.Status(),
		original.Details(),
		original.RecipientNote(),
		original.CompanyNote(),
		original.CreatedAt(),
		original.Recipients(),
		original.ProductIDs(),
	)
	require.NoError(t, err)

	assert.True(t, restored.IsEqual(original))
	assert.Equal(t, original.Status(), restored.Status())
	assert.Len(t, restored.Recipients(), 2)
}

func TestRestoreRecipient(t *testing.T) {
	userID, deliveryID := kernel.NewUUID(), kernel.NewUUID()
	updated := time.Now().Add(-time.Hour).UTC()

	r, err := delivery.RestoreRecipient(userID, deliveryID, delivery.LinkStatusAccepted, true, updated)
	require.NoError(t, err)

	assert.Equal(t, delivery.LinkStatusAccepted, r.Status())
	assert.True(t, r.IsAssigned())
	assert.Equal(t, updated, r.UpdatedAt())

	_, err = delivery.RestoreRecipient(userID, deliveryID, delivery.LinkStatusUnknown, false, updated)
	require.Error(t, err)
}
