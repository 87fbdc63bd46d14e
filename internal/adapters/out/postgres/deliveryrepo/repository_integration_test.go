package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"chipdrop/internal/adapters/out/postgres/deliveryrepo"
	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite provides integration tests for
// DeliveryRepository using PostgreSQL containers.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.RecipientDTO{},
		&deliveryrepo.ProductDTO{},
	))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE deliveries, delivery_recipients, delivery_products").Error,
	)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_PersistsDeliveryWithAllLinks() {
	ctx := context.Background()

	recipients := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
	d := suite.newDelivery(delivery.StatusRequested, recipients...)
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()

	suite.Require().NoError(suite.repository.Add(ctx, d))

	suite.assertRowCount(&deliveryrepo.DeliveryDTO{}, 1)
	suite.assertRowCount(&deliveryrepo.RecipientDTO{}, 3)
	suite.assertRowCount(&deliveryrepo.ProductDTO{}, 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsAlreadyExists() {
	ctx := context.Background()

	d := suite.newDelivery(delivery.StatusRequested, kernel.NewUUID())
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	err := suite.repository.Add(ctx, d)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_RoundTripsFullAggregate() {
	ctx := context.Background()

	recipients := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	original := suite.newDelivery(delivery.StatusScheduled, recipients...)
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.AssignedBy(), retrieved.AssignedBy())
	suite.Equal(original.AssignedTo(), retrieved.AssignedTo())
	suite.Equal(delivery.StatusScheduled, retrieved.Status())
	suite.Equal(original.Details(), retrieved.Details())
	suite.Equal(original.RecipientNote(), retrieved.RecipientNote())
	suite.Len(retrieved.Recipients(), 2)
	suite.Len(retrieved.ProductIDs(), 1)

	link, err := retrieved.Recipient(recipients[0])
	suite.Require().NoError(err)
	suite.Equal(delivery.LinkStatusPending, link.Status())
	suite.True(link.IsAssigned())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NonExistentDelivery_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdateStatus_WritesOnlyStatusColumn() {
	ctx := context.Background()

	d := suite.newDelivery(delivery.StatusScheduled, kernel.NewUUID())
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	suite.Require().NoError(suite.repository.UpdateStatus(ctx, d.ID(), delivery.StatusDelivered))

	retrieved, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.StatusDelivered, retrieved.Status())
	suite.Equal(d.Details(), retrieved.Details())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_PersistsReassignedLinkFlags() {
	ctx := context.Background()

	first := kernel.NewUUID()
	second := kernel.NewUUID()
	d := suite.newDelivery(delivery.StatusScheduled, first, second)
	suite.tracker.On("TrackAggregate", d.ID(), d).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	suite.Require().NoError(d.Reassign(second, "20 yards of fir chips", "", ""))
	suite.Require().NoError(suite.repository.Update(ctx, d))

	retrieved, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(second, retrieved.AssignedTo())
	suite.Equal("20 yards of fir chips", retrieved.Details())

	firstLink, err := retrieved.Recipient(first)
	suite.Require().NoError(err)
	suite.False(firstLink.IsAssigned())

	secondLink, err := retrieved.Recipient(second)
	suite.Require().NoError(err)
	suite.True(secondLink.IsAssigned())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdateStatusGuarded_OnlyMatchesExpectedStatus() {
	ctx := context.Background()

	d := suite.newDelivery(delivery.StatusScheduled, kernel.NewUUID())
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	flipped, err := suite.repository.UpdateStatusGuarded(
		ctx, d.ID(), delivery.StatusScheduled, delivery.StatusExpired,
	)
	suite.Require().NoError(err)
	suite.True(flipped)

	// The row is no longer Scheduled, so the same guarded write matches
	// nothing the second time.
	flipped, err = suite.repository.UpdateStatusGuarded(
		ctx, d.ID(), delivery.StatusScheduled, delivery.StatusExpired,
	)
	suite.Require().NoError(err)
	suite.False(flipped)

	retrieved, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.StatusExpired, retrieved.Status())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestMarkWarned_ClaimsOnlyOnce() {
	ctx := context.Background()

	d := suite.newDelivery(delivery.StatusScheduled, kernel.NewUUID())
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	at := time.Now().UTC()
	claimed, err := suite.repository.MarkWarned(ctx, d.ID(), at)
	suite.Require().NoError(err)
	suite.True(claimed)

	claimed, err = suite.repository.MarkWarned(ctx, d.ID(), at.Add(time.Hour))
	suite.Require().NoError(err)
	suite.False(claimed)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestMarkWarned_SkipsNonScheduledDelivery() {
	ctx := context.Background()

	d := suite.newDelivery(delivery.StatusRequested, kernel.NewUUID())
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	claimed, err := suite.repository.MarkWarned(ctx, d.ID(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.False(claimed)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdateRecipientStatus_PersistsAcceptance() {
	ctx := context.Background()

	userID := kernel.NewUUID()
	d := suite.newDelivery(delivery.StatusRequested, userID)
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	suite.Require().NoError(d.AcceptBy(userID))
	link, err := d.Recipient(userID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.UpdateRecipientStatus(ctx, link))

	retrieved, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	retrievedLink, err := retrieved.Recipient(userID)
	suite.Require().NoError(err)
	suite.Equal(delivery.LinkStatusAccepted, retrievedLink.Status())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAddAndRemoveRecipient() {
	ctx := context.Background()

	d := suite.newDelivery(delivery.StatusRequested, kernel.NewUUID())
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	extra := kernel.NewUUID()
	suite.Require().NoError(d.AddRecipient(extra))
	link, err := d.Recipient(extra)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AddRecipient(ctx, link))
	suite.assertRowCount(&deliveryrepo.RecipientDTO{}, 2)

	// Re-linking the same user hits the composite key.
	err = suite.repository.AddRecipient(ctx, link)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)

	suite.Require().NoError(suite.repository.RemoveRecipient(ctx, d.ID(), extra))
	suite.assertRowCount(&deliveryrepo.RecipientDTO{}, 1)

	err = suite.repository.RemoveRecipient(ctx, d.ID(), extra)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestDelete_RemovesDeliveryAndAllLinks() {
	ctx := context.Background()

	d := suite.newDelivery(delivery.StatusRequested, kernel.NewUUID(), kernel.NewUUID())
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	suite.Require().NoError(suite.repository.Delete(ctx, d.ID()))

	suite.assertRowCount(&deliveryrepo.DeliveryDTO{}, 0)
	suite.assertRowCount(&deliveryrepo.RecipientDTO{}, 0)
	suite.assertRowCount(&deliveryrepo.ProductDTO{}, 0)

	err := suite.repository.Delete(ctx, d.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetScheduledBefore_FiltersByStatusAndAge() {
	ctx := context.Background()

	now := time.Now().UTC()
	oldScheduled := suite.newDeliveryCreatedAt(delivery.StatusScheduled, now.Add(-96*time.Hour))
	freshScheduled := suite.newDeliveryCreatedAt(delivery.StatusScheduled, now.Add(-time.Hour))
	oldRequested := suite.newDeliveryCreatedAt(delivery.StatusRequested, now.Add(-96*time.Hour))
	oldExpired := suite.newDeliveryCreatedAt(delivery.StatusExpired, now.Add(-96*time.Hour))

	for _, d := range []*delivery.Delivery{oldScheduled, freshScheduled, oldRequested, oldExpired} {
		suite.tracker.On("TrackAggregate", d.ID(), d).Once()
		suite.Require().NoError(suite.repository.Add(ctx, d))
	}

	stale, err := suite.repository.GetScheduledBefore(ctx, now.Add(-72*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(stale, 1)
	suite.Equal(oldScheduled.ID(), stale[0].ID())
	suite.Len(stale[0].Recipients(), 1)
}

// newDelivery builds a delivery assigned to the first recipient with one
// product link.
func (suite *DeliveryRepositoryIntegrationTestSuite) newDelivery(
	status delivery.Status, recipientIDs ...kernel.UUID,
) *delivery.Delivery {
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), recipientIDs[0],
		status,
		"15 yards of cedar chips", "pile next to the shed", "",
		recipientIDs,
		[]kernel.UUID{kernel.NewUUID()},
	)
	suite.Require().NoError(err)
	return d
}

// newDeliveryCreatedAt restores a delivery with a pinned creation time.
func (suite *DeliveryRepositoryIntegrationTestSuite) newDeliveryCreatedAt(
	status delivery.Status, createdAt time.Time,
) *delivery.Delivery {
	deliveryID := kernel.NewUUID()
	userID := kernel.NewUUID()
	link, err := delivery.RestoreRecipient(userID, deliveryID, delivery.LinkStatusPending, true, createdAt)
	suite.Require().NoError(err)

	d, err := delivery.RestoreDelivery(
		deliveryID, kernel.NewUUID(), userID,
		status,
		"aged chip pile", "", "",
		createdAt,
		[]*delivery.Recipient{link},
		nil,
	)
	suite.Require().NoError(err)
	return d
}

func (suite *DeliveryRepositoryIntegrationTestSuite) assertRowCount(model any, expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
