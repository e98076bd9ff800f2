package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// UpdatedProfile is the courier profile after a change, with the orders the
// change returned to the pool.
type UpdatedProfile struct {
	CourierProfile
	Evictions []services.Eviction
}

// UpdateCourierProfileCommandHandler applies a profile change and reconciles
// the courier's open batch with it in one transaction.
type UpdateCourierProfileCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.Reconciler
	clock      Clock
}

func NewUpdateCourierProfileCommandHandler(
	uowFactory UoWFactory,
	reconciler services.Reconciler,
	clock Clock,
) UpdateCourierProfileCommandHandler {
	return UpdateCourierProfileCommandHandler{
		uowFactory: uowFactory,
		reconciler: reconciler,
		clock:      clock,
	}
}

// Handle locks the courier, applies the change and persists every order that
// was evicted or restamped together with the courier and its batch.
func (h UpdateCourierProfileCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCourierProfileCommand,
) (UpdatedProfile, error) {
	if err := cmd.Validate(); err != nil {
		return UpdatedProfile{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdatedProfile{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return UpdatedProfile{}, err
	}

	open, err := uow.AssignmentRepository().FindOpen(ctx, c.ID())
	if err != nil {
		return UpdatedProfile{}, fmt.Errorf("find open batch: %w", err)
	}

	var members []*order.Order
	if open != nil {
		if members, err = uow.OrderRepository().ListByAssignment(ctx, open.ID()); err != nil {
			return UpdatedProfile{}, err
		}
	}

	result, err := h.reconciler.Reconcile(c, cmd.Update(), open, members, h.clock.Now())
	if err != nil {
		return UpdatedProfile{}, err
	}

	if err = uow.CourierRepository().Update(ctx, c); err != nil {
		return UpdatedProfile{}, err
	}
	for _, o := range append(result.Evicted, result.Restamped...) {
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return UpdatedProfile{}, err
		}
	}
	if open != nil && (len(result.Evicted) > 0 || result.Closed) {
		if err = uow.AssignmentRepository().Update(ctx, open); err != nil {
			return UpdatedProfile{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdatedProfile{}, err
	}

	return UpdatedProfile{
		CourierProfile: profileOf(c),
		Evictions:      result.Evictions,
	}, nil
}

func profileOf(c *courier.Courier) CourierProfile {
	return CourierProfile{
		ID:           c.ID(),
		VehicleType:  c.VehicleType(),
		Regions:      c.Regions(),
		WorkingHours: c.WorkingHours(),
	}
}
