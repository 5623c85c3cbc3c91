package commands_test

import (
	"testing"

	"packing/internal/core/application/usecases/commands"
	"packing/internal/core/domain/model/session"
	"packing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignItemCommand(t *testing.T) {
	s := testSession(t)

	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewAssignItemCommand(s.ID(), "C1", "X", 5)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "C1", cmd.ContainerID())
		assert.Equal(t, "X", cmd.ItemKey())
		assert.Equal(t, 5, cmd.Qty())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := commands.NewAssignItemCommand(s.ID(), "C1", "X", 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects empty item key", func(t *testing.T) {
		_, err := commands.NewAssignItemCommand(s.ID(), "C1", "", 5)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestAssignItemCommandHandler_Handle(t *testing.T) {
	t.Run("assigns into the container", func(t *testing.T) {
		ctx := t.Context()
		s := testSession(t)
		c, err := s.CreateContainer()
		require.NoError(t, err)

		cmd, err := commands.NewAssignItemCommand(s.ID(), c.ID(), "X", 6)
		require.NoError(t, err)

		mockSessions := new(MockSessionStore)
		mockSessions.On("Get", ctx, s.ID()).Return(s, nil).Once()

		handler := commands.NewAssignItemCommandHandler(mockSessions)

		require.NoError(t, handler.Handle(ctx, cmd))
		assert.Equal(t, 6, s.Assigned("X"))
	})

	t.Run("excess quantity surfaces the session error", func(t *testing.T) {
		ctx := t.Context()
		s := testSession(t)
		c, err := s.CreateContainer()
		require.NoError(t, err)

		cmd, err := commands.NewAssignItemCommand(s.ID(), c.ID(), "X", 20)
		require.NoError(t, err)

		mockSessions := new(MockSessionStore)
		mockSessions.On("Get", ctx, s.ID()).Return(s, nil).Once()

		handler := commands.NewAssignItemCommandHandler(mockSessions)

		require.ErrorIs(t, handler.Handle(ctx, cmd), session.ErrQuantityExceedsRemaining)
		assert.Equal(t, 0, s.Assigned("X"))
	})

	t.Run("unknown session", func(t *testing.T) {
		ctx := t.Context()
		s := testSession(t)

		cmd, err := commands.NewAssignItemCommand(s.ID(), "C1", "X", 1)
		require.NoError(t, err)

		mockSessions := new(MockSessionStore)
		mockSessions.On("Get", ctx, s.ID()).
			Return(nil, errs.NewObjectNotFoundError("sessionID", s.ID().String())).Once()

		handler := commands.NewAssignItemCommandHandler(mockSessions)

		require.ErrorIs(t, handler.Handle(ctx, cmd), errs.ErrObjectNotFound)
	})
}
