package commands_test

import (
	"context"
	"testing"
	"time"

	"packing/internal/core/application/usecases/commands"
	"packing/internal/core/domain/model/hold"
	"packing/internal/core/domain/model/kernel"
	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/session"
	"packing/internal/core/domain/services"
	"packing/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations shared by the handler tests in this package.

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

type MockOrderClient struct {
	mock.Mock
}

func (m *MockOrderClient) GetOrder(ctx context.Context, orderID string) (*order.SourceOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SourceOrder), args.Error(1)
}

type MockFulfillmentClient struct {
	mock.Mock
}

func (m *MockFulfillmentClient) SubmitCompletion(ctx context.Context, s *session.PackingSession) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

func (m *MockFulfillmentClient) SubmitReview(ctx context.Context, orderID, reporterEmail, summary string) error {
	args := m.Called(ctx, orderID, reporterEmail, summary)
	return args.Error(0)
}

type MockHoldRepository struct {
	mock.Mock
}

func (m *MockHoldRepository) Add(ctx context.Context, record *hold.HoldRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHoldRepository) Update(ctx context.Context, record *hold.HoldRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHoldRepository) Get(ctx context.Context, id kernel.UUID) (*hold.HoldRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hold.HoldRecord), args.Error(1)
}

func (m *MockHoldRepository) GetByOrderID(ctx context.Context, orderID string) (*hold.HoldRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hold.HoldRecord), args.Error(1)
}

func (m *MockHoldRepository) GetByGroupingKey(ctx context.Context, groupingKey string) ([]*hold.HoldRecord, error) {
	args := m.Called(ctx, groupingKey)
	return args.Get(0).([]*hold.HoldRecord), args.Error(1)
}

func (m *MockHoldRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockHoldUoW struct {
	mock.Mock
}

func (m *MockHoldUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockHoldUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockHoldUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockHoldUoW) HoldRepository() ports.HoldRepository {
	args := m.Called()
	return args.Get(0).(ports.HoldRepository)
}

type MockHoldUoWFactory struct {
	mock.Mock
}

func (m *MockHoldUoWFactory) Create() commands.HoldUoW {
	args := m.Called()
	return args.Get(0).(commands.HoldUoW)
}

// Test fixtures.

func testLineItem(t *testing.T, key string, qty int) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(key, "Aspirin", "C-"+key, 3.20, "B1", "2027-06", "box", qty)
	require.NoError(t, err)
	return item
}

func testOrder(t *testing.T, id, customerName string, items ...order.LineItem) *order.SourceOrder {
	t.Helper()
	o, err := order.NewSourceOrder(id, customerName, "1 Main St", "555-0100", items)
	require.NoError(t, err)
	return o
}

// testSession builds a live session pooling item X with required 15
// (10 from order 100, 5 from order 101).
func testSession(t *testing.T) *session.PackingSession {
	t.Helper()

	orders := []*order.SourceOrder{
		testOrder(t, "100", "ACME Pharmacy", testLineItem(t, "X", 10)),
		testOrder(t, "101", "ACME Pharmacy", testLineItem(t, "X", 5)),
	}
	pooled, err := services.NewItemPooler().Build(orders)
	require.NoError(t, err)

	s, err := session.NewPackingSession(kernel.NewUUID(), "ACME Pharmacy", orders, pooled)
	require.NoError(t, err)
	return s
}

func testHoldRecord(t *testing.T, orderID, customerName, holderEmail, assigneeEmail string) *hold.HoldRecord {
	t.Helper()
	h, err := hold.NewHoldRecord(kernel.NewUUID(), orderID, customerName, holderEmail, assigneeEmail)
	require.NoError(t, err)
	return h
}
