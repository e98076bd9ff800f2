package services

import (
	"cmp"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// EvictionReason names the profile check an order failed.
type EvictionReason string

const (
	EvictedByRegion       EvictionReason = "region"
	EvictedByWorkingHours EvictionReason = "working_hours"
	EvictedByVehicleType  EvictionReason = "vehicle_type"
)

// ProfileUpdate carries the supplied fields of a courier profile change.
// A nil slice or an empty VehicleType means the field was omitted.
type ProfileUpdate struct {
	Regions      []int64
	WorkingHours kernel.Periods
	VehicleType  kernel.VehicleType
}

// IsEmpty reports whether nothing was supplied.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Regions == nil && u.WorkingHours == nil && u.VehicleType == ""
}

// Eviction is a single (order, evict) command produced by reconciliation.
type Eviction struct {
	OrderID int64
	Reason  EvictionReason
}

// Reconciliation is the outcome of a profile change. Every order listed in
// Evicted and Restamped, and the batch itself, must be persisted together with
// the courier.
type Reconciliation struct {
	Evictions []Eviction
	Evicted   []*order.Order
	// Restamped are retained held orders whose vehicle class was updated.
	Restamped []*order.Order
	// Closed is set when the batch completed because every remaining member is delivered.
	Closed bool
}

// Reconciler is a domain service that applies a courier profile change and
// re-validates the courier's open batch against the new profile.
//
// Business rules:
//   - Only the open batch is touched; completed batches never change
//   - Checks run only for supplied fields, in the order region, working hours,
//     vehicle class, each over the orders that survived the previous check
//   - A vehicle class change evicts only on a downgrade: held orders are sorted
//     by ascending weight (then id) and the lightest are kept within the new maximum
//   - Delivered orders are never evicted
//   - After the checks the batch completes if it still has members and all are delivered
type Reconciler struct{}

// NewReconciler creates a new Reconciler instance.
func NewReconciler() Reconciler {
	return Reconciler{}
}

// Reconcile applies update to the courier and evicts every held order of the
// open batch that no longer qualifies.
//
// Parameters:
//   - c: The courier being updated
//   - update: The supplied profile fields (already parsed)
//   - open: The courier's open batch, or nil
//   - members: The orders of the open batch
//   - now: The time recorded as the batch's new assign time when it shrinks
//
// Returns:
//   - Reconciliation: evictions and changed orders to persist
//   - error: validation errors from the new profile; nothing is applied in that case
func (r Reconciler) Reconcile(
	c *courier.Courier,
	update ProfileUpdate,
	open *assignment.Assignment,
	members []*order.Order,
	now time.Time,
) (Reconciliation, error) {
	if err := c.Validate(); err != nil {
		return Reconciliation{}, err
	}

	oldVehicle := c.VehicleType()
	oldMax := c.MaxCapacity()
	if err := r.applyProfile(c, update); err != nil {
		return Reconciliation{}, err
	}

	if open == nil || !open.IsOpen() {
		return Reconciliation{}, nil
	}

	evictions := r.plan(c, update, oldMax, r.held(c, open, members))

	var result Reconciliation
	byID := make(map[int64]*order.Order, len(members))
	for _, o := range members {
		byID[o.ID()] = o
	}

	for _, e := range evictions {
		o := byID[e.OrderID]
		if err := o.Evict(); err != nil {
			return Reconciliation{}, err
		}
		if err := open.Remove(o.ID(), now); err != nil {
			return Reconciliation{}, err
		}
		result.Evicted = append(result.Evicted, o)
	}
	result.Evictions = evictions

	if update.VehicleType != "" && c.VehicleType() != oldVehicle {
		for _, o := range r.held(c, open, members) {
			if err := o.Restamp(c.VehicleType()); err != nil {
				return Reconciliation{}, err
			}
			result.Restamped = append(result.Restamped, o)
		}
	}

	result.Closed = open.CloseIfDelivered(func(id int64) bool {
		o, ok := byID[id]
		return ok && o.IsDelivered()
	})

	return result, nil
}

func (r Reconciler) applyProfile(c *courier.Courier, update ProfileUpdate) error {
	return c.ChangeProfile(update.Regions, update.WorkingHours, update.VehicleType)
}

// held returns the undelivered members of the batch still held by the courier.
func (r Reconciler) held(c *courier.Courier, open *assignment.Assignment, members []*order.Order) []*order.Order {
	out := make([]*order.Order, 0, len(members))
	for _, o := range members {
		if open.Contains(o.ID()) && o.IsHeldBy(c.ID()) {
			out = append(out, o)
		}
	}
	return out
}

// plan decides the evictions without changing any order.
func (r Reconciler) plan(c *courier.Courier, update ProfileUpdate, oldMax kernel.Weight, held []*order.Order) []Eviction {
	var evictions []Eviction
	survivors := held

	keep := func(reason EvictionReason, ok func(*order.Order) bool) {
		next := survivors[:0:0]
		for _, o := range survivors {
			if ok(o) {
				next = append(next, o)
				continue
			}
			evictions = append(evictions, Eviction{OrderID: o.ID(), Reason: reason})
		}
		survivors = next
	}

	if update.Regions != nil {
		keep(EvictedByRegion, func(o *order.Order) bool {
			return c.ServesRegion(o.Region())
		})
	}

	if update.WorkingHours != nil {
		keep(EvictedByWorkingHours, func(o *order.Order) bool {
			return c.WorksDuring(o.DeliveryHours())
		})
	}

	if update.VehicleType != "" && c.MaxCapacity() < oldMax {
		lightest := slices.Clone(survivors)
		slices.SortStableFunc(lightest, func(a, b *order.Order) int {
			return cmp.Or(cmp.Compare(a.Weight(), b.Weight()), cmp.Compare(a.ID(), b.ID()))
		})

		retained := make(map[int64]bool, len(lightest))
		var load kernel.Weight
		for _, o := range lightest {
			if courier.CanCarry(c.MaxCapacity()-load, o.Weight()) {
				load += o.Weight()
				retained[o.ID()] = true
			}
		}
		keep(EvictedByVehicleType, func(o *order.Order) bool {
			return retained[o.ID()]
		})
	}

	return evictions
}
