package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Holding describes who holds an order and under which batch. It is set when the
// order is claimed and kept after delivery for settlement.
type Holding struct {
	CourierID    int64
	AssignmentID kernel.UUID
	// VehicleType is the courier's vehicle class recorded when the order was
	// claimed (or re-stamped after a class change). Earnings use it.
	VehicleType kernel.VehicleType
	AssignedAt  time.Time
}

// Order represents a delivery order in the system. It is the aggregate root that manages
// the order lifecycle from the pool, through a courier's batch, to delivery.
//
// Order follows these invariants:
//   - Must have a positive identifier, a weight within [0.01, 50], a positive region
//     and at least one delivery window
//   - An Available order has no holding; a Held or Delivered order has one
//   - Only Delivered orders have a completion time, strictly after the assign time
//   - Delivered is final: the order is never offered again
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the externally assigned order identifier
	id int64

	// weight is the order mass
	weight kernel.Weight

	// region is the region code the order is delivered to
	region int64

	// deliveryHours are the windows within which the order may be delivered
	deliveryHours kernel.Periods

	// status represents the current state in the order lifecycle
	status Status

	// holding is the current claim (nil while the order is Available)
	holding *Holding

	// completedAt is the delivery time (nil until Delivered)
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Available Order.
//
// Parameters:
//   - id: Externally assigned identifier (must be positive)
//   - weight: Order weight, already range-checked by kernel.NewOrderWeight
//   - region: Delivery region code (must be positive)
//   - deliveryHours: Parsed delivery windows (non-empty, may wrap past midnight)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Aggregated validation errors for every invalid parameter
//
// Example:
//
//	w, _ := kernel.NewOrderWeight(0.23)
//	hours, _ := kernel.ParseDeliveryHours([]string{"09:00-18:00"})
//	o, err := order.NewOrder(1, w, 12, hours)
func NewOrder(id int64, weight kernel.Weight, region int64, deliveryHours kernel.Periods) (*Order, error) {
	o := &Order{
		status: Available,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setWeight(weight),
		o.setRegion(region),
		o.setDeliveryHours(deliveryHours),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage and checks that the
// status, holding and completion time agree with each other.
func RestoreOrder(
	id int64,
	weight kernel.Weight,
	region int64,
	deliveryHours kernel.Periods,
	status Status,
	holding *Holding,
	completedAt *time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setWeight(weight),
		o.setRegion(region),
		o.setDeliveryHours(deliveryHours),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveCourier(holding != nil); err != nil {
		return nil, err
	}

	if holding != nil {
		if err := errors.Join(
			holding.AssignmentID.Validate(),
			validateHolding(*holding),
		); err != nil {
			return nil, err
		}
		h := *holding
		o.holding = &h
	}

	switch {
	case status == Delivered && completedAt == nil:
		return nil, errs.NewValueIsRequiredError("completed_at")
	case status != Delivered && completedAt != nil:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"completed_at", fmt.Errorf("%s order cannot have a completion time", status))
	case completedAt != nil:
		at := *completedAt
		o.completedAt = &at
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order identifier.
func (o *Order) ID() int64 {
	return o.id
}

// Weight returns the order weight.
func (o *Order) Weight() kernel.Weight {
	return o.weight
}

// Region returns the delivery region code.
func (o *Order) Region() int64 {
	return o.region
}

// DeliveryHours returns the delivery windows.
func (o *Order) DeliveryHours() kernel.Periods {
	out := make(kernel.Periods, len(o.deliveryHours))
	copy(out, o.deliveryHours)
	return out
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Holding returns a copy of the current claim, or nil for an Available order.
func (o *Order) Holding() *Holding {
	if o.holding == nil {
		return nil
	}
	h := *o.holding
	return &h
}

// CourierID returns the holding courier, or nil.
func (o *Order) CourierID() *int64 {
	if o.holding == nil {
		return nil
	}
	id := o.holding.CourierID
	return &id
}

// AssignmentID returns the batch the order belongs to, or nil.
func (o *Order) AssignmentID() *kernel.UUID {
	if o.holding == nil {
		return nil
	}
	id := o.holding.AssignmentID
	return &id
}

// AssignedAt returns the time the order was claimed, or nil.
func (o *Order) AssignedAt() *time.Time {
	if o.holding == nil {
		return nil
	}
	at := o.holding.AssignedAt
	return &at
}

// CompletedAt returns the delivery time, or nil.
func (o *Order) CompletedAt() *time.Time {
	if o.completedAt == nil {
		return nil
	}
	at := *o.completedAt
	return &at
}

// IsAvailable reports whether the order sits in the pool.
func (o *Order) IsAvailable() bool {
	return o.status == Available
}

// IsDelivered reports whether the order has been delivered.
func (o *Order) IsDelivered() bool {
	return o.status == Delivered
}

// IsHeldBy reports whether the order is currently held, undelivered, by the courier.
func (o *Order) IsHeldBy(courierID int64) bool {
	return o.status == Held && o.holding.CourierID == courierID
}

// Claim moves an Available order into the courier's batch.
//
// Returns:
//   - nil on success
//   - ConflictError if the order is no longer available
//   - validation error if the holding is malformed
func (o *Order) Claim(h Holding) error {
	if err := errors.Join(h.AssignmentID.Validate(), validateHolding(h)); err != nil {
		return err
	}

	newStatus, err := o.status.Hold()
	if err != nil {
		return errs.NewConflictErrorWithCause("order", o.id, err)
	}

	o.status = newStatus
	o.holding = &h
	return nil
}

// Evict returns a Held order to the pool: the courier, batch, vehicle class and
// assign time are cleared.
func (o *Order) Evict() error {
	newStatus, err := o.status.Release()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.holding = nil
	return nil
}

// Restamp records a new vehicle class on a Held order after the courier changed
// class. Delivered orders keep the class they were delivered with.
func (o *Order) Restamp(vehicleType kernel.VehicleType) error {
	if o.status != Held {
		return errs.NewInvalidTransitionError("vehicle_type", fmt.Errorf("cannot restamp a %s order", o.status))
	}
	if !vehicleType.IsValid() {
		return errs.NewValueIsInvalidErrorWithCause("vehicle_type", fmt.Errorf("%q is not a vehicle class", vehicleType))
	}
	o.holding.VehicleType = vehicleType
	return nil
}

// Complete marks the order delivered by the courier at the given time.
//
// Returns:
//   - ConflictError if the order is not currently held by this courier
//     (including an order that was already delivered)
//   - InvalidTransitionError if completedAt is not strictly after the assign time
func (o *Order) Complete(courierID int64, completedAt time.Time) error {
	if !o.IsHeldBy(courierID) {
		return errs.NewConflictErrorWithCause("order", o.id,
			fmt.Errorf("%s order is not held by courier %d", o.status, courierID))
	}

	if !completedAt.After(o.holding.AssignedAt) {
		return errs.NewInvalidTransitionError("complete_time",
			fmt.Errorf("%s is not after assign time %s",
				completedAt.Format(time.RFC3339Nano), o.holding.AssignedAt.Format(time.RFC3339Nano)))
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.completedAt = &completedAt
	return nil
}

func validateHolding(h Holding) error {
	var err error
	if h.CourierID <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("courier_id",
			fmt.Errorf("%d is not positive", h.CourierID)))
	}
	if !h.VehicleType.IsValid() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("vehicle_type",
			fmt.Errorf("%q is not a vehicle class", h.VehicleType)))
	}
	if h.AssignedAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("assigned_at"))
	}
	return err
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is not positive", id))
	}
	o.id = id
	return nil
}

func (o *Order) setWeight(weight kernel.Weight) error {
	if weight < kernel.MinOrderWeight || weight > kernel.MaxOrderWeight {
		return errs.NewValueIsOutOfRangeError("weight",
			weight, kernel.MinOrderWeight, kernel.MaxOrderWeight)
	}
	o.weight = weight
	return nil
}

func (o *Order) setRegion(region int64) error {
	if region <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("region", fmt.Errorf("%d is not positive", region))
	}
	o.region = region
	return nil
}

func (o *Order) setDeliveryHours(deliveryHours kernel.Periods) error {
	if len(deliveryHours) == 0 {
		return errs.NewValueIsRequiredError("delivery_hours")
	}
	o.deliveryHours = make(kernel.Periods, len(deliveryHours))
	copy(o.deliveryHours, deliveryHours)
	return nil
}
