package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCouriersCommandIsNotConstructed = errors.New(
	"CreateCouriersCommand must be created via NewCreateCouriersCommand constructor",
)

// NewCourier is one courier of a registration request, as received from the caller.
type NewCourier struct {
	ID           int64
	VehicleType  string
	Regions      []int64
	WorkingHours []string
}

// CourierProfile is a parsed courier registration.
type CourierProfile struct {
	ID           int64
	VehicleType  kernel.VehicleType
	Regions      []int64
	WorkingHours kernel.Periods
}

// CreateCouriersCommand registers a list of couriers at once. Either all of
// them are created or none is.
//
// Example:
//
//	cmd, err := NewCreateCouriersCommand([]NewCourier{
//	    {ID: 1, VehicleType: "foot", Regions: []int64{1, 12}, WorkingHours: []string{"11:35-14:05"}},
//	})
//	var invalid *InvalidItemsError
//	if errors.As(err, &invalid) {
//	    // report invalid.IDs() to the caller
//	}
type CreateCouriersCommand struct {
	couriers []CourierProfile

	guard guard.ConstructorGuard
}

// NewCreateCouriersCommand parses every item and reports all invalid ones
// together in an InvalidItemsError.
func NewCreateCouriersCommand(items []NewCourier) (CreateCouriersCommand, error) {
	if len(items) == 0 {
		return CreateCouriersCommand{}, errs.NewValueIsRequiredError("couriers")
	}

	var (
		profiles = make([]CourierProfile, 0, len(items))
		invalid  []ItemError
	)
	for _, item := range items {
		profile, err := parseCourier(item)
		if err != nil {
			invalid = append(invalid, ItemError{ID: item.ID, Err: err})
			continue
		}
		profiles = append(profiles, profile)
	}

	if err := collectItemErrors("couriers", invalid); err != nil {
		return CreateCouriersCommand{}, err
	}

	return CreateCouriersCommand{
		couriers: profiles,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func parseCourier(item NewCourier) (CourierProfile, error) {
	var (
		profile = CourierProfile{ID: item.ID, Regions: item.Regions}
		errList []error
		err     error
	)

	if item.ID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not positive", item.ID)))
	}
	if profile.VehicleType, err = kernel.NewVehicleType(item.VehicleType); err != nil {
		errList = append(errList, err)
	}
	if err = validateRegions(item.Regions); err != nil {
		errList = append(errList, err)
	}
	if profile.WorkingHours, err = kernel.ParseWorkingHours(item.WorkingHours); err != nil {
		errList = append(errList, err)
	}

	return profile, errors.Join(errList...)
}

func validateRegions(regions []int64) error {
	if len(regions) == 0 {
		return errs.NewValueIsRequiredError("regions")
	}
	for _, r := range regions {
		if r <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("regions", fmt.Errorf("%d is not positive", r))
		}
	}
	return nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCouriersCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouriersCommandIsNotConstructed)
}

// Couriers returns the parsed registrations in request order.
func (c CreateCouriersCommand) Couriers() []CourierProfile {
	return c.couriers
}
