package commands_test

import (
	"errors"
	"testing"

	"packing/internal/core/application/usecases/commands"
	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendToReviewCommandHandler_Handle_FansOutPerOrder(t *testing.T) {
	// Arrange
	ctx := t.Context()
	s := testSession(t)
	require.NoError(t, s.ReportIssue("X", []string{"damaged"}, "crushed box"))

	cmd, err := commands.NewSendToReviewCommand(s.ID(), "packer@wh.example")
	require.NoError(t, err)

	mockSessions := new(MockSessionStore)
	mockSessions.On("Get", ctx, s.ID()).Return(s, nil).Once()

	summary := s.IssueSummary()
	mockFulfillment := new(MockFulfillmentClient)
	mockFulfillment.On("SubmitReview", ctx, "100", "packer@wh.example", summary).Return(nil).Once()
	mockFulfillment.On("SubmitReview", ctx, "101", "packer@wh.example", summary).Return(nil).Once()

	handler := commands.NewSendToReviewCommandHandler(mockSessions, mockFulfillment)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	mockFulfillment.AssertExpectations(t)
	assert.Empty(t, s.Issues(), "reports cleared after successful fan-out")
	for _, o := range s.Orders() {
		assert.Equal(t, order.Review, o.Status())
	}
}

func TestSendToReviewCommandHandler_Handle_NoIssues(t *testing.T) {
	// Arrange
	ctx := t.Context()
	s := testSession(t)
	cmd, err := commands.NewSendToReviewCommand(s.ID(), "packer@wh.example")
	require.NoError(t, err)

	mockSessions := new(MockSessionStore)
	mockSessions.On("Get", ctx, s.ID()).Return(s, nil).Once()
	mockFulfillment := new(MockFulfillmentClient)

	handler := commands.NewSendToReviewCommandHandler(mockSessions, mockFulfillment)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, session.ErrNoIssuesToEscalate)
	mockFulfillment.AssertExpectations(t)
}

func TestSendToReviewCommandHandler_Handle_PartialFailureKeepsLocalState(t *testing.T) {
	// Arrange
	ctx := t.Context()
	s := testSession(t)
	require.NoError(t, s.ReportIssue("X", []string{"damaged"}, ""))

	cmd, err := commands.NewSendToReviewCommand(s.ID(), "packer@wh.example")
	require.NoError(t, err)

	submitError := errors.New("backend unavailable")
	mockSessions := new(MockSessionStore)
	mockSessions.On("Get", ctx, s.ID()).Return(s, nil).Once()

	mockFulfillment := new(MockFulfillmentClient)
	mockFulfillment.On("SubmitReview", ctx, "100", "packer@wh.example", s.IssueSummary()).Return(nil).Once()
	mockFulfillment.On("SubmitReview", ctx, "101", "packer@wh.example", s.IssueSummary()).Return(submitError).Once()

	handler := commands.NewSendToReviewCommandHandler(mockSessions, mockFulfillment)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.Equal(t, submitError, err)
	assert.Len(t, s.Issues(), 1, "reports survive a failed fan-out")
	for _, o := range s.Orders() {
		assert.Equal(t, order.Normal, o.Status(), "local statuses unchanged; the sync stream reconciles")
	}
}
