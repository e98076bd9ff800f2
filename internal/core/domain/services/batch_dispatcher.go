package services

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// ErrNoSuitableOrders is returned when no order in the pool matches the courier.
// Nothing is changed in that case, so a later request may still succeed.
var ErrNoSuitableOrders = errors.New("no suitable orders")

// BatchDispatcher is a domain service that selects the orders a courier takes
// into a new batch.
//
// Business rules:
//   - A courier with an open batch keeps it; no orders are claimed
//   - Capacity is reset to the vehicle class maximum before selection
//   - Candidates are Available orders in the courier's regions that are not
//     heavier than the remaining capacity, considered in pool order
//   - A candidate is accepted when one of its delivery windows overlaps the
//     courier's working hours and it still fits the remaining capacity
//   - The batch is created lazily on the first accepted order
//
// Example usage:
//
//	dispatcher := services.NewBatchDispatcher()
//	batch, claimed, err := dispatcher.Dispatch(c, open, pool, time.Now())
//	if errors.Is(err, services.ErrNoSuitableOrders) {
//	    // Nothing to deliver right now
//	}
type BatchDispatcher struct{}

// NewBatchDispatcher creates a new BatchDispatcher instance.
func NewBatchDispatcher() BatchDispatcher {
	return BatchDispatcher{}
}

// Dispatch builds a batch for the courier.
//
// Parameters:
//   - c: The requesting courier
//   - open: The courier's open batch, or nil
//   - pool: Candidate orders in pool (creation) order
//   - now: The assign time stamped on the batch and every claimed order
//
// Returns:
//   - *assignment.Assignment: the open batch unchanged, or the new sealed batch
//   - []*order.Order: the orders claimed by this call, in acceptance order
//     (empty when an open batch is returned)
//   - error: ErrNoSuitableOrders if nothing was accepted, or validation errors
func (d BatchDispatcher) Dispatch(
	c *courier.Courier,
	open *assignment.Assignment,
	pool []*order.Order,
	now time.Time,
) (*assignment.Assignment, []*order.Order, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	if open != nil && open.IsOpen() {
		return open, nil, nil
	}

	c.ResetCapacity()

	var (
		batch   *assignment.Assignment
		claimed []*order.Order
	)
	for _, o := range pool {
		if err := o.Validate(); err != nil {
			return nil, nil, err
		}

		if !d.isCandidate(c, o) || !c.WorksDuring(o.DeliveryHours()) || !c.CanCarry(o.Weight()) {
			continue
		}

		if batch == nil {
			var err error
			batch, err = assignment.NewAssignment(c.ID(), c.VehicleType(), now)
			if err != nil {
				return nil, nil, err
			}
		}

		if err := d.accept(c, batch, o, now); err != nil {
			return nil, nil, err
		}
		claimed = append(claimed, o)
	}

	if batch == nil {
		return nil, nil, ErrNoSuitableOrders
	}

	batch.Seal()
	return batch, claimed, nil
}

func (d BatchDispatcher) isCandidate(c *courier.Courier, o *order.Order) bool {
	return o.IsAvailable() && o.Weight() <= c.RemainingCapacity() && c.ServesRegion(o.Region())
}

func (d BatchDispatcher) accept(c *courier.Courier, batch *assignment.Assignment, o *order.Order, now time.Time) error {
	if err := o.Claim(order.Holding{
		CourierID:    c.ID(),
		AssignmentID: batch.ID(),
		VehicleType:  c.VehicleType(),
		AssignedAt:   now,
	}); err != nil {
		return err
	}

	if err := c.Take(o.Weight()); err != nil {
		return err
	}

	return batch.Add(o.ID())
}
