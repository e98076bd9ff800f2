package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/order"
)

// CompleteOrderCommandHandler marks an order delivered and closes the batch
// once all of its members are delivered.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the id of the delivered order.
//
// Errors:
//   - ObjectNotFoundError for an unknown courier or order
//   - ConflictError if the order is not held by the courier (also when it is already delivered)
//   - InvalidTransitionError if the complete time is not after the assign time
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CourierRepository().GetForUpdate(ctx, cmd.CourierID()); err != nil {
		return 0, err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}

	if err = o.Complete(cmd.CourierID(), cmd.CompleteTime()); err != nil {
		return 0, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return 0, err
	}

	if err = closeBatchIfDelivered(ctx, uow, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return o.ID(), nil
}

// closeBatchIfDelivered completes the batch the order belongs to when every
// remaining member is delivered.
func closeBatchIfDelivered(ctx context.Context, uow UoW, o *order.Order) error {
	batchID := o.AssignmentID()
	if batchID == nil {
		return nil
	}

	batch, err := uow.AssignmentRepository().Get(ctx, *batchID)
	if err != nil {
		return fmt.Errorf("load batch of order %d: %w", o.ID(), err)
	}

	return closeIfDelivered(ctx, uow, batch)
}

func closeIfDelivered(ctx context.Context, uow UoW, batch *assignment.Assignment) error {
	if !batch.IsOpen() {
		return nil
	}

	members, err := uow.OrderRepository().ListByAssignment(ctx, batch.ID())
	if err != nil {
		return err
	}

	delivered := make(map[int64]bool, len(members))
	for _, m := range members {
		delivered[m.ID()] = m.IsDelivered()
	}

	if !batch.CloseIfDelivered(func(id int64) bool { return delivered[id] }) {
		return nil
	}
	return uow.AssignmentRepository().Update(ctx, batch)
}
