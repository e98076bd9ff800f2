package courier

import (
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrRegionsAreRequired is returned when a courier is given no serviceable regions.
	ErrRegionsAreRequired = errs.NewValueIsRequiredError("regions")
)

// Courier represents a delivery courier and the profile used to match orders to it.
// It is an aggregate root that owns the courier's vehicle class, serviceable regions,
// working hours and the remaining carry capacity for the current batch.
//
// Key responsibilities:
//   - Holding the courier profile (vehicle class, regions, working hours)
//   - Tracking the remaining capacity through the capacity ledger
//   - Answering whether an order's region and delivery windows suit the courier
//
// Business rules:
//   - The courier id is assigned externally, positive and immutable
//   - Regions are a non-empty set of positive region codes
//   - Working hours never wrap past midnight
//   - Remaining capacity never exceeds the vehicle class maximum and is recomputed
//     from scratch whenever the vehicle class changes
//
// Example usage:
//
//	hours, _ := kernel.ParseWorkingHours([]string{"11:30-14:00"})
//	c, err := courier.NewCourier(2, kernel.Foot, []int64{2}, hours)
//	if err != nil {
//	    // Handle construction error
//	}
//	c.ResetCapacity()
//	if c.ServesRegion(2) && c.CanCarry(weight) {
//	    _ = c.Take(weight)
//	}
type Courier struct {
	// id is the externally assigned courier identifier
	id int64
	// vehicleType determines the maximum carry weight and the pay coefficient
	vehicleType kernel.VehicleType
	// regions are the region codes the courier serves, in registration order
	regions []int64
	// workingHours are the courier's daily working periods
	workingHours kernel.Periods
	// remainingCapacity is the weight the courier can still take into the current batch
	remainingCapacity kernel.Weight
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier registers a new courier. The remaining capacity starts at the
// vehicle class maximum.
//
// Parameters:
//   - id: Externally assigned identifier (must be positive)
//   - vehicleType: One of kernel.Foot, kernel.Bike, kernel.Car
//   - regions: Serviceable region codes (non-empty, all positive; duplicates are dropped)
//   - workingHours: Parsed working periods (non-empty)
//
// Returns:
//   - *Courier: A fully initialized courier
//   - error: Aggregated validation errors for every invalid parameter
func NewCourier(id int64, vehicleType kernel.VehicleType, regions []int64, workingHours kernel.Periods) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setVehicleType(vehicleType),
		c.setRegions(regions),
		c.setWorkingHours(workingHours),
	); err != nil {
		return nil, err
	}

	c.ResetCapacity()
	return c, nil
}

// RestoreCourier reconstructs a Courier from persistent storage, including its
// remaining capacity. The capacity is rejected if it is negative or above the
// vehicle class maximum.
func RestoreCourier(
	id int64,
	vehicleType kernel.VehicleType,
	regions []int64,
	workingHours kernel.Periods,
	remainingCapacity kernel.Weight,
) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setVehicleType(vehicleType),
		c.setRegions(regions),
		c.setWorkingHours(workingHours),
	); err != nil {
		return nil, err
	}

	if remainingCapacity < 0 || remainingCapacity > MaxCapacity(c.vehicleType) {
		return nil, errs.NewValueIsOutOfRangeError(
			"remaining_capacity", remainingCapacity, 0, MaxCapacity(c.vehicleType))
	}
	c.remainingCapacity = remainingCapacity

	return c, nil
}

// Validate checks if the Courier was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier identifier.
func (c *Courier) ID() int64 {
	return c.id
}

// VehicleType returns the current vehicle class.
func (c *Courier) VehicleType() kernel.VehicleType {
	return c.vehicleType
}

// Regions returns a copy of the serviceable region codes.
func (c *Courier) Regions() []int64 {
	return slices.Clone(c.regions)
}

// WorkingHours returns a copy of the working periods.
func (c *Courier) WorkingHours() kernel.Periods {
	return slices.Clone(c.workingHours)
}

// RemainingCapacity returns the weight the courier can still take.
func (c *Courier) RemainingCapacity() kernel.Weight {
	return c.remainingCapacity
}

// MaxCapacity returns the carry capacity of the current vehicle class.
func (c *Courier) MaxCapacity() kernel.Weight {
	return MaxCapacity(c.vehicleType)
}

// ServesRegion reports whether region is one of the courier's regions.
func (c *Courier) ServesRegion(region int64) bool {
	return slices.Contains(c.regions, region)
}

// WorksDuring reports whether any of the given delivery windows overlaps the
// courier's working hours.
func (c *Courier) WorksDuring(windows kernel.Periods) bool {
	return windows.Overlaps(c.workingHours)
}

// ResetCapacity restores the remaining capacity to the vehicle class maximum.
// This is the only operation that increases the remaining capacity.
func (c *Courier) ResetCapacity() {
	c.remainingCapacity = MaxCapacity(c.vehicleType)
}

// CanCarry reports whether an order of the given weight fits into the remaining capacity.
func (c *Courier) CanCarry(weight kernel.Weight) bool {
	return CanCarry(c.remainingCapacity, weight)
}

// Take debits the remaining capacity by weight. The courier is left unchanged
// if the weight does not fit.
func (c *Courier) Take(weight kernel.Weight) error {
	remaining, err := Debit(c.remainingCapacity, weight)
	if err != nil {
		return err
	}
	c.remainingCapacity = remaining
	return nil
}

// ChangeRegions replaces the serviceable regions.
func (c *Courier) ChangeRegions(regions []int64) error {
	return c.setRegions(regions)
}

// ChangeWorkingHours replaces the working periods.
func (c *Courier) ChangeWorkingHours(workingHours kernel.Periods) error {
	return c.setWorkingHours(workingHours)
}

// ChangeVehicleType switches the vehicle class and recomputes the remaining
// capacity from the new class maximum.
func (c *Courier) ChangeVehicleType(vehicleType kernel.VehicleType) error {
	if err := c.setVehicleType(vehicleType); err != nil {
		return err
	}
	c.ResetCapacity()
	return nil
}

// ChangeProfile applies the supplied fields together: a nil slice or an empty
// vehicleType keeps the current value. Either every field is applied or,
// when any of them is invalid, none is.
func (c *Courier) ChangeProfile(regions []int64, workingHours kernel.Periods, vehicleType kernel.VehicleType) error {
	staged := *c

	var errList []error
	if regions != nil {
		errList = append(errList, staged.setRegions(regions))
	}
	if workingHours != nil {
		errList = append(errList, staged.setWorkingHours(workingHours))
	}
	if vehicleType != "" {
		errList = append(errList, staged.setVehicleType(vehicleType))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	if vehicleType != "" {
		staged.ResetCapacity()
	}
	*c = staged
	return nil
}

func (c *Courier) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is not positive", id))
	}
	c.id = id
	return nil
}

func (c *Courier) setVehicleType(vehicleType kernel.VehicleType) error {
	if !vehicleType.IsValid() {
		return errs.NewValueIsInvalidErrorWithCause("courier_type", fmt.Errorf("%q is not a vehicle class", vehicleType))
	}
	c.vehicleType = vehicleType
	return nil
}

func (c *Courier) setRegions(regions []int64) error {
	if len(regions) == 0 {
		return ErrRegionsAreRequired
	}

	unique := make([]int64, 0, len(regions))
	for _, r := range regions {
		if r <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("regions", fmt.Errorf("%d is not a positive region code", r))
		}
		if !slices.Contains(unique, r) {
			unique = append(unique, r)
		}
	}

	c.regions = unique
	return nil
}

func (c *Courier) setWorkingHours(workingHours kernel.Periods) error {
	if len(workingHours) == 0 {
		return errs.NewValueIsRequiredError("working_hours")
	}
	for _, p := range workingHours {
		if p.Wraps() {
			return errs.NewValueIsInvalidErrorWithCause("working_hours", fmt.Errorf("%s wraps past midnight", p))
		}
	}

	c.workingHours = slices.Clone(workingHours)
	return nil
}
