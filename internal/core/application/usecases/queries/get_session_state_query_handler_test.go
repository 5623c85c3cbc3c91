package queries_test

import (
	"context"
	"testing"
	"time"

	"packing/internal/core/application/usecases/queries"
	"packing/internal/core/domain/model/kernel"
	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/session"
	"packing/internal/core/domain/services"
	"packing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Add(ctx context.Context, s *session.PackingSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, id kernel.UUID) (*session.PackingSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.PackingSession), args.Error(1)
}

func (m *MockSessionStore) GetAll(ctx context.Context) ([]*session.PackingSession, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*session.PackingSession), args.Error(1)
}

func (m *MockSessionStore) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionStore) RemoveIdleSince(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func testSession(t *testing.T) *session.PackingSession {
	t.Helper()

	itemX, err := order.NewLineItem("X", "Aspirin", "C-X", 3.20, "B1", "2027-06", "box", 10)
	require.NoError(t, err)
	itemX2, err := order.NewLineItem("X", "Aspirin", "C-X", 3.20, "B1", "2027-06", "box", 5)
	require.NoError(t, err)

	order100, err := order.NewSourceOrder("100", "ACME Pharmacy", "1 Main St", "555-0100",
		[]order.LineItem{itemX})
	require.NoError(t, err)
	order101, err := order.NewSourceOrder("101", "ACME Pharmacy", "1 Main St", "555-0100",
		[]order.LineItem{itemX2})
	require.NoError(t, err)

	orders := []*order.SourceOrder{order100, order101}
	pooled, err := services.NewItemPooler().Build(orders)
	require.NoError(t, err)

	s, err := session.NewPackingSession(kernel.NewUUID(), "ACME Pharmacy", orders, pooled)
	require.NoError(t, err)
	return s
}

func TestGetSessionStateQueryHandler_Handle(t *testing.T) {
	// Arrange
	ctx := t.Context()
	s := testSession(t)
	c, err := s.CreateContainer()
	require.NoError(t, err)
	require.NoError(t, s.AssignItem(c.ID(), "X", 6))
	require.NoError(t, s.ReportIssue("X", []string{"damaged"}, ""))

	query, err := queries.NewGetSessionStateQuery(s.ID())
	require.NoError(t, err)

	mockStore := new(MockSessionStore)
	mockStore.On("Get", ctx, s.ID()).Return(s, nil).Once()

	handler := queries.NewGetSessionStateQueryHandler(mockStore)

	// Act
	response, err := handler.Handle(ctx, query)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ACME Pharmacy", response.CustomerName)

	require.Len(t, response.Pool, 1)
	assert.Equal(t, 15, response.Pool[0].Required)
	assert.Equal(t, 6, response.Pool[0].Assigned)
	assert.Equal(t, 9, response.Pool[0].Remaining)

	require.Len(t, response.Containers, 1)
	assert.Equal(t, "C1", response.Containers[0].ContainerID)
	assert.Equal(t, "Open", response.Containers[0].Status)
	require.Len(t, response.Containers[0].Lines, 1)
	assert.Equal(t, 6, response.Containers[0].Lines[0].Qty)

	require.Len(t, response.Issues, 1)
	assert.Equal(t, []string{"damaged"}, response.Issues[0].Tags)

	assert.Contains(t, response.CompletionBlockers, "item X has 9 unassigned")
}

func TestGetSessionStateQueryHandler_Handle_UnknownSession(t *testing.T) {
	// Arrange
	ctx := t.Context()
	sessionID := kernel.NewUUID()
	query, err := queries.NewGetSessionStateQuery(sessionID)
	require.NoError(t, err)

	mockStore := new(MockSessionStore)
	mockStore.On("Get", ctx, sessionID).
		Return(nil, errs.NewObjectNotFoundError("sessionID", sessionID.String())).Once()

	handler := queries.NewGetSessionStateQueryHandler(mockStore)

	// Act
	_, err = handler.Handle(ctx, query)

	// Assert
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetContainerManifestsQueryHandler_Handle(t *testing.T) {
	// Arrange
	ctx := t.Context()
	s := testSession(t)

	c1, err := s.CreateContainer()
	require.NoError(t, err)
	require.NoError(t, s.AssignItem(c1.ID(), "X", 10))
	require.NoError(t, s.CompleteContainer(c1.ID()))
	require.NoError(t, s.MarkContainerLabeled(c1.ID()))

	c2, err := s.CreateContainer()
	require.NoError(t, err)
	require.NoError(t, s.AssignItem(c2.ID(), "X", 5))
	// c2 stays open and must not appear in the manifests

	query, err := queries.NewGetContainerManifestsQuery(s.ID())
	require.NoError(t, err)

	mockStore := new(MockSessionStore)
	mockStore.On("Get", ctx, s.ID()).Return(s, nil).Once()

	handler := queries.NewGetContainerManifestsQueryHandler(mockStore)

	// Act
	manifests, err := handler.Handle(ctx, query)

	// Assert
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, "C1", manifests[0].ContainerID)
	assert.Equal(t, "ACME Pharmacy", manifests[0].CustomerName)
	assert.Equal(t, "1 Main St", manifests[0].DeliveryAddress)
	assert.Equal(t, "555-0100", manifests[0].Phone)
	assert.True(t, manifests[0].Labeled)
	require.Len(t, manifests[0].Items, 1)
	assert.Equal(t, "Aspirin", manifests[0].Items[0].Name)
	assert.Equal(t, 10, manifests[0].Items[0].Qty)
}
