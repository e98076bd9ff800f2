package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// AssignedBatch is the outcome of an assignment request. AssignedAt is nil
// when the courier got no orders.
type AssignedBatch struct {
	OrderIDs   []int64
	AssignedAt *time.Time
}

// AssignOrdersCommandHandler builds a batch for a courier out of the shared pool.
//
// The courier row is locked first, so two requests of the same courier are
// serialized. Pool rows are read with SKIP LOCKED and claimed conditionally,
// so two couriers never hold the same order.
type AssignOrdersCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.BatchDispatcher
	clock      Clock
}

func NewAssignOrdersCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.BatchDispatcher,
	clock Clock,
) AssignOrdersCommandHandler {
	return AssignOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// Handle returns the courier's open batch if there is one. Otherwise it claims
// every suitable pool order into a new batch. An empty result with a nil
// AssignedAt means nothing suited the courier.
func (h AssignOrdersCommandHandler) Handle(ctx context.Context, cmd AssignOrdersCommand) (AssignedBatch, error) {
	if err := cmd.Validate(); err != nil {
		return AssignedBatch{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignedBatch{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return AssignedBatch{}, err
	}

	open, err := uow.AssignmentRepository().FindOpen(ctx, c.ID())
	if err != nil {
		return AssignedBatch{}, fmt.Errorf("find open batch: %w", err)
	}

	if open != nil {
		members, err := uow.OrderRepository().ListByAssignment(ctx, open.ID())
		if err != nil {
			return AssignedBatch{}, err
		}
		return pendingOf(members, open.AssignedAt()), nil
	}

	pool, err := uow.OrderRepository().ListAvailable(ctx, c.Regions(), c.MaxCapacity())
	if err != nil {
		return AssignedBatch{}, fmt.Errorf("list available orders: %w", err)
	}

	batch, claimed, err := h.dispatcher.Dispatch(c, nil, pool, h.clock.Now())
	if errors.Is(err, services.ErrNoSuitableOrders) {
		return AssignedBatch{OrderIDs: []int64{}}, nil
	}
	if err != nil {
		return AssignedBatch{}, err
	}

	if err = uow.AssignmentRepository().Add(ctx, batch); err != nil {
		return AssignedBatch{}, err
	}
	for _, o := range claimed {
		if err = uow.OrderRepository().Claim(ctx, o); err != nil {
			return AssignedBatch{}, err
		}
	}
	if err = uow.CourierRepository().Update(ctx, c); err != nil {
		return AssignedBatch{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignedBatch{}, err
	}

	assignedAt := batch.AssignedAt()
	return AssignedBatch{
		OrderIDs:   batch.OrderIDs(),
		AssignedAt: &assignedAt,
	}, nil
}

// pendingOf lists the undelivered members of an open batch. A batch with none
// left reports no assign time.
func pendingOf(members []*order.Order, assignedAt time.Time) AssignedBatch {
	ids := make([]int64, 0, len(members))
	for _, o := range members {
		if !o.IsDelivered() {
			ids = append(ids, o.ID())
		}
	}
	if len(ids) == 0 {
		return AssignedBatch{OrderIDs: ids}
	}
	return AssignedBatch{OrderIDs: ids, AssignedAt: &assignedAt}
}
