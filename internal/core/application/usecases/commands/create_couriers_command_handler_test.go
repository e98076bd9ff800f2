package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCouriersCommand(t *testing.T) commands.CreateCouriersCommand {
	t.Helper()
	cmd, err := commands.NewCreateCouriersCommand([]commands.NewCourier{
		{ID: 1, VehicleType: "foot", Regions: []int64{1}, WorkingHours: []string{"11:35-14:05"}},
		{ID: 2, VehicleType: "bike", Regions: []int64{22}, WorkingHours: []string{"09:00-18:00"}},
	})
	require.NoError(t, err)
	return cmd
}

func TestCreateCouriersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newFixture()

	f.couriers.On("Add", ctx, mock.MatchedBy(func(c *courier.Courier) bool {
		return c.ID() == 1 && c.RemainingCapacity() == c.MaxCapacity()
	})).Return(nil).Once()
	f.couriers.On("Add", ctx, mock.MatchedBy(func(c *courier.Courier) bool {
		return c.ID() == 2
	})).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(f.uow).Once()

	handler := commands.NewCreateCouriersCommandHandler(factory)
	ids, err := handler.Handle(ctx, newCreateCouriersCommand(t))

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
	f.couriers.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateCouriersCommandHandler_Handle_Duplicate(t *testing.T) {
	ctx := t.Context()
	f := newFixture()

	f.couriers.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.couriers.On("Add", ctx, mock.Anything).Return(errs.NewConflictError("courier", int64(2))).Once()

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(f.uow).Once()

	handler := commands.NewCreateCouriersCommandHandler(factory)
	ids, err := handler.Handle(ctx, newCreateCouriersCommand(t))

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Nil(t, ids)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.uow.AssertCalled(t, "Rollback", ctx)
}

func TestCreateCouriersCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockCourierUoWFactory)
	handler := commands.NewCreateCouriersCommandHandler(factory)

	_, err := handler.Handle(t.Context(), commands.CreateCouriersCommand{})

	require.ErrorIs(t, err, commands.ErrCreateCouriersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateCouriersCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	uow := new(MockUoW)
	factory := new(MockCourierUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateCouriersCommandHandler(factory)
	_, err := handler.Handle(ctx, newCreateCouriersCommand(t))

	require.EqualError(t, err, "begin error")
}
