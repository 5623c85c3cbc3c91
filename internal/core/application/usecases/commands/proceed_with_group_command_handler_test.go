package commands_test

import (
	"testing"

	"packing/internal/core/application/usecases/commands"
	"packing/internal/core/domain/model/hold"
	"packing/internal/core/domain/model/session"
	"packing/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProceedWithGroupCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewProceedWithGroupCommand("ACME Pharmacy")
	require.NoError(t, err)

	first := testHoldRecord(t, "100", "ACME Pharmacy", "packer@wh.example", "")
	second := testHoldRecord(t, "101", "ACME Pharmacy", "other@wh.example", "packer@wh.example")

	mockRepo := new(MockHoldRepository)
	mockRepo.On("GetByGroupingKey", ctx, "ACME Pharmacy").
		Return([]*hold.HoldRecord{first, second}, nil).Once()
	mockRepo.On("Remove", ctx, first.ID()).Return(nil).Once()
	mockRepo.On("Remove", ctx, second.ID()).Return(nil).Once()

	mockUoW := new(MockHoldUoW)
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("HoldRepository").Return(mockRepo).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	mockFactory := new(MockHoldUoWFactory)
	mockFactory.On("Create").Return(mockUoW).Once()

	mockOrders := new(MockOrderClient)
	mockOrders.On("GetOrder", ctx, "100").
		Return(testOrder(t, "100", "ACME Pharmacy", testLineItem(t, "X", 10)), nil).Once()
	mockOrders.On("GetOrder", ctx, "101").
		Return(testOrder(t, "101", "ACME Pharmacy", testLineItem(t, "X", 5)), nil).Once()

	var added *session.PackingSession
	mockSessions := new(MockSessionStore)
	mockSessions.On("Add", ctx, mock.MatchedBy(func(s *session.PackingSession) bool {
		added = s
		return true
	})).Return(nil).Once()

	handler := commands.NewProceedWithGroupCommandHandler(
		mockSessions, mockOrders, services.NewItemPooler(), mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.True(t, added.ID().IsEqual(cmd.SessionID()))
	assert.Equal(t, []string{"100", "101"}, added.OrderIDs())
	assert.Equal(t, 15, added.Required("X"), "contributions pool across the group")

	// Every order carries the provenance of its hold record.
	firstOrder := added.OrderByID("100")
	require.NotNil(t, firstOrder)
	require.NotNil(t, firstOrder.Hold())
	assert.Equal(t, "packer@wh.example", firstOrder.Hold().HolderEmail)
	assert.Empty(t, firstOrder.Hold().AssigneeEmail)

	secondOrder := added.OrderByID("101")
	require.NotNil(t, secondOrder)
	require.NotNil(t, secondOrder.Hold())
	assert.Equal(t, "other@wh.example", secondOrder.Hold().HolderEmail)
	assert.Equal(t, "packer@wh.example", secondOrder.Hold().AssigneeEmail)

	mockRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockSessions.AssertExpectations(t)
}

func TestProceedWithGroupCommandHandler_Handle_EmptyGroup(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewProceedWithGroupCommand("Nobody")
	require.NoError(t, err)

	mockRepo := new(MockHoldRepository)
	mockRepo.On("GetByGroupingKey", ctx, "Nobody").
		Return([]*hold.HoldRecord{}, nil).Once()

	mockUoW := new(MockHoldUoW)
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("HoldRepository").Return(mockRepo).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	mockFactory := new(MockHoldUoWFactory)
	mockFactory.On("Create").Return(mockUoW).Once()

	mockOrders := new(MockOrderClient)
	mockSessions := new(MockSessionStore)

	handler := commands.NewProceedWithGroupCommandHandler(
		mockSessions, mockOrders, services.NewItemPooler(), mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, commands.ErrNoHeldOrdersForGroup)
	mockOrders.AssertExpectations(t)  // nothing was fetched
	mockUoW.AssertExpectations(t)     // Commit was never called
	mockSessions.AssertExpectations(t)
}
