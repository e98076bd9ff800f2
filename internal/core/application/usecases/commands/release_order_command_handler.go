package commands

import (
	"context"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ReleaseOrderCommandHandler evicts one held order from the courier's batch.
// The eviction is the same one a profile change performs.
type ReleaseOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewReleaseOrderCommandHandler(uowFactory UoWFactory, clock Clock) ReleaseOrderCommandHandler {
	return ReleaseOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns a ConflictError when the order is not held by the courier.
func (h ReleaseOrderCommandHandler) Handle(ctx context.Context, cmd ReleaseOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CourierRepository().GetForUpdate(ctx, cmd.CourierID()); err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !o.IsHeldBy(cmd.CourierID()) {
		return errs.NewConflictErrorWithCause("order", o.ID(),
			fmt.Errorf("%s order is not held by courier %d", o.Status(), cmd.CourierID()))
	}

	batch, err := uow.AssignmentRepository().Get(ctx, *o.AssignmentID())
	if err != nil {
		return fmt.Errorf("load batch of order %d: %w", o.ID(), err)
	}

	if err = o.Evict(); err != nil {
		return err
	}
	if err = batch.Remove(o.ID(), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err = uow.AssignmentRepository().Update(ctx, batch); err != nil {
		return err
	}
	if err = closeIfDelivered(ctx, uow, batch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
