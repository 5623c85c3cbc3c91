package holdrepo_test

import (
	"context"
	"testing"
	"time"

	"packing/internal/adapters/out/postgres/holdrepo"
	"packing/internal/core/domain/model/hold"
	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// HoldRepositoryIntegrationTestSuite provides integration tests for
// GormHoldRepository using PostgreSQL containers to verify database
// persistence behavior.
type HoldRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *holdrepo.GormHoldRepository
	tracker    *MockAggregateTracker
}

func (suite *HoldRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&holdrepo.HoldDTO{}))
}

func (suite *HoldRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE holds").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = holdrepo.NewGormHoldRepository(suite.db, suite.tracker)
}

func (suite *HoldRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *HoldRepositoryIntegrationTestSuite) TestAdd_ValidRecord_Success() {
	ctx := context.Background()

	record := suite.createTestRecord("100", "ACME Pharmacy")
	suite.tracker.On("TrackAggregate", record.ID(), record).Once()

	err := suite.repository.Add(ctx, record)
	suite.Require().NoError(err)

	suite.assertHoldCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *HoldRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderID_ReturnsError() {
	ctx := context.Background()

	first := suite.createTestRecord("100", "ACME Pharmacy")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	// Same order parked again, even under another group, must be rejected by
	// the unique index.
	second := suite.createTestRecord("100", "Bayside Clinic")

	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)

	suite.assertHoldCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *HoldRepositoryIntegrationTestSuite) TestGet_ExistingRecord_ReturnsRecord() {
	ctx := context.Background()

	original := suite.createTestRecord("100", "ACME Pharmacy")
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal("100", retrieved.OrderID())
	suite.Equal("ACME Pharmacy", retrieved.GroupingKey())
	suite.Equal("packer@wh.example", retrieved.HolderEmail())
	suite.Empty(retrieved.AssigneeEmail())
	suite.WithinDuration(original.HeldAt(), retrieved.HeldAt(), time.Millisecond)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *HoldRepositoryIntegrationTestSuite) TestGet_NonExistentRecord_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *HoldRepositoryIntegrationTestSuite) TestGetByOrderID_FindsParkedOrder() {
	ctx := context.Background()

	record := suite.createTestRecord("100", "ACME Pharmacy")
	suite.tracker.On("TrackAggregate", record.ID(), record).Once()
	suite.Require().NoError(suite.repository.Add(ctx, record))

	retrieved, err := suite.repository.GetByOrderID(ctx, "100")
	suite.Require().NoError(err)
	suite.Equal(record.ID(), retrieved.ID())

	_, err = suite.repository.GetByOrderID(ctx, "999")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *HoldRepositoryIntegrationTestSuite) TestGetByGroupingKey_ReturnsGroupInHeldAtOrder() {
	ctx := context.Background()

	// Insert out of chronological order to prove the held_at sort
	base := time.Now().UTC().Truncate(time.Millisecond)
	later := suite.createTestRecordHeldAt("101", "ACME Pharmacy", base.Add(time.Minute))
	earlier := suite.createTestRecordHeldAt("100", "ACME Pharmacy", base)
	unrelated := suite.createTestRecordHeldAt("200", "Bayside Clinic", base)

	for _, record := range []*hold.HoldRecord{later, earlier, unrelated} {
		suite.tracker.On("TrackAggregate", record.ID(), record).Once()
		suite.Require().NoError(suite.repository.Add(ctx, record))
	}

	group, err := suite.repository.GetByGroupingKey(ctx, "ACME Pharmacy")
	suite.Require().NoError(err)
	suite.Require().Len(group, 2)
	suite.Equal("100", group[0].OrderID())
	suite.Equal("101", group[1].OrderID())

	// Unknown keys yield an empty group, not an error
	empty, err := suite.repository.GetByGroupingKey(ctx, "Nobody")
	suite.Require().NoError(err)
	suite.Empty(empty)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *HoldRepositoryIntegrationTestSuite) TestUpdate_DelegatedRecord_PersistsAssignee() {
	ctx := context.Background()

	record := suite.createTestRecord("100", "ACME Pharmacy")
	suite.tracker.On("TrackAggregate", record.ID(), record).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, record))

	suite.Require().NoError(record.Delegate("lead@wh.example"))
	suite.Require().NoError(suite.repository.Update(ctx, record))

	retrieved, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)
	suite.Equal("lead@wh.example", retrieved.AssigneeEmail())
	suite.Equal("lead@wh.example", retrieved.Owner())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *HoldRepositoryIntegrationTestSuite) TestUpdate_NonExistentRecord_ReturnsError() {
	ctx := context.Background()

	record := suite.createTestRecord("100", "ACME Pharmacy")

	err := suite.repository.Update(ctx, record)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *HoldRepositoryIntegrationTestSuite) TestRemove_ReleasesOrder() {
	ctx := context.Background()

	record := suite.createTestRecord("100", "ACME Pharmacy")
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, record))

	suite.Require().NoError(suite.repository.Remove(ctx, record.ID()))
	suite.assertHoldCount(0)

	// Released order can be parked again
	again := suite.createTestRecord("100", "ACME Pharmacy")
	suite.Require().NoError(suite.repository.Add(ctx, again))
	suite.assertHoldCount(1)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *HoldRepositoryIntegrationTestSuite) TestRemove_NonExistentRecord_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.Remove(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

// createTestRecord creates a hold record timestamped now.
func (suite *HoldRepositoryIntegrationTestSuite) createTestRecord(orderID, groupingKey string) *hold.HoldRecord {
	return suite.createTestRecordHeldAt(orderID, groupingKey, time.Now().UTC().Truncate(time.Millisecond))
}

// createTestRecordHeldAt creates a hold record with an explicit timestamp.
func (suite *HoldRepositoryIntegrationTestSuite) createTestRecordHeldAt(
	orderID, groupingKey string, heldAt time.Time,
) *hold.HoldRecord {
	record, err := hold.RestoreHoldRecord(
		kernel.NewUUID(), orderID, groupingKey, "packer@wh.example", "", heldAt)
	suite.Require().NoError(err)
	return record
}

// assertHoldCount verifies the number of hold records in the database.
func (suite *HoldRepositoryIntegrationTestSuite) assertHoldCount(expected int) {
	var count int64
	err := suite.db.Model(&holdrepo.HoldDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestHoldRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(HoldRepositoryIntegrationTestSuite))
}
