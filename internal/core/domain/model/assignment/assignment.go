package assignment

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment instance was not
	// created through NewAssignment or RestoreAssignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
	// ErrAssignmentIsSealed is returned when adding an order to a batch that was already persisted.
	ErrAssignmentIsSealed = errs.NewInvalidTransitionError("assignment", errors.New("batch membership can only shrink"))
	// ErrAssignmentIsComplete is returned when changing a completed batch.
	ErrAssignmentIsComplete = errs.NewInvalidTransitionError("assignment", errors.New("batch is complete"))
)

// Assignment is one courier's batch.
type Assignment struct {
	id          kernel.UUID
	courierID   int64
	vehicleType kernel.VehicleType
	orderIDs    []int64
	assignedAt  time.Time
	complete    bool
	// sealed batches accept no new members
	sealed bool
	guard  guard.ConstructorGuard
}

// NewAssignment starts an empty, open batch for the courier. Members are added
// with Add until the batch is sealed.
func NewAssignment(courierID int64, vehicleType kernel.VehicleType, assignedAt time.Time) (*Assignment, error) {
	a := &Assignment{
		id:    kernel.NewUUID(),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setCourierID(courierID),
		a.setVehicleType(vehicleType),
		a.setAssignedAt(assignedAt),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment reconstructs a sealed Assignment from persistent storage.
func RestoreAssignment(
	id kernel.UUID,
	courierID int64,
	vehicleType kernel.VehicleType,
	orderIDs []int64,
	assignedAt time.Time,
	complete bool,
) (*Assignment, error) {
	a := &Assignment{
		complete: complete,
		sealed:   true,
		orderIDs: slices.Clone(orderIDs),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		a.setCourierID(courierID),
		a.setVehicleType(vehicleType),
		a.setAssignedAt(assignedAt),
	); err != nil {
		return nil, err
	}
	a.id = id

	return a, nil
}

// Validate ensures the Assignment instance was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) ID() kernel.UUID {
	return a.id
}

func (a *Assignment) CourierID() int64 {
	return a.courierID
}

// VehicleType is the courier's vehicle class when the batch was created.
func (a *Assignment) VehicleType() kernel.VehicleType {
	return a.vehicleType
}

// OrderIDs returns the member orders in insertion order.
func (a *Assignment) OrderIDs() []int64 {
	return slices.Clone(a.orderIDs)
}

func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

func (a *Assignment) IsComplete() bool {
	return a.complete
}

func (a *Assignment) IsOpen() bool {
	return !a.complete
}

func (a *Assignment) IsEmpty() bool {
	return len(a.orderIDs) == 0
}

// Contains reports whether the order is a member of the batch.
func (a *Assignment) Contains(orderID int64) bool {
	return slices.Contains(a.orderIDs, orderID)
}

// Add appends an order while the batch is being built.
func (a *Assignment) Add(orderID int64) error {
	if a.sealed {
		return ErrAssignmentIsSealed
	}
	if a.complete {
		return ErrAssignmentIsComplete
	}
	if a.Contains(orderID) {
		return errs.NewConflictErrorWithCause("order", orderID, fmt.Errorf("already in batch %s", a.id))
	}
	a.orderIDs = append(a.orderIDs, orderID)
	return nil
}

// Seal closes the membership to additions. It is called once the dispatcher
// has finished building the batch.
func (a *Assignment) Seal() {
	a.sealed = true
}

// Remove drops an order from the batch and refreshes the assign time.
func (a *Assignment) Remove(orderID int64, at time.Time) error {
	if a.complete {
		return ErrAssignmentIsComplete
	}
	i := slices.Index(a.orderIDs, orderID)
	if i < 0 {
		return errs.NewObjectNotFoundError("order", orderID)
	}
	a.orderIDs = slices.Delete(a.orderIDs, i, i+1)
	a.assignedAt = at
	return nil
}

// Complete closes the batch.
func (a *Assignment) Complete() error {
	if a.complete {
		return ErrAssignmentIsComplete
	}
	a.complete = true
	a.sealed = true
	return nil
}

// CloseIfDelivered completes the batch when it has members and delivered
// reports true for every one of them. It reports whether the batch was closed.
func (a *Assignment) CloseIfDelivered(delivered func(orderID int64) bool) bool {
	if a.complete || len(a.orderIDs) == 0 {
		return false
	}
	for _, id := range a.orderIDs {
		if !delivered(id) {
			return false
		}
	}
	a.complete = true
	a.sealed = true
	return true
}

func (a *Assignment) setCourierID(courierID int64) error {
	if courierID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is not positive", courierID))
	}
	a.courierID = courierID
	return nil
}

func (a *Assignment) setVehicleType(vehicleType kernel.VehicleType) error {
	if !vehicleType.IsValid() {
		return errs.NewValueIsInvalidErrorWithCause("vehicle_type", fmt.Errorf("%q is not a vehicle class", vehicleType))
	}
	a.vehicleType = vehicleType
	return nil
}

func (a *Assignment) setAssignedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("assigned_at")
	}
	a.assignedAt = at
	return nil
}
