package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateCourierProfileCommandIsNotConstructed = errors.New(
	"UpdateCourierProfileCommand must be created via NewUpdateCourierProfileCommand constructor",
)

// ProfileChange is a partial courier profile as received from the caller.
// A nil field was omitted; a non-nil empty list is rejected.
type ProfileChange struct {
	VehicleType  *string
	Regions      []int64
	WorkingHours []string
}

// UpdateCourierProfileCommand changes some fields of a courier profile.
type UpdateCourierProfileCommand struct {
	courierID int64
	update    services.ProfileUpdate

	guard guard.ConstructorGuard
}

// NewUpdateCourierProfileCommand parses the supplied fields. At least one
// field must be present.
func NewUpdateCourierProfileCommand(courierID int64, change ProfileChange) (UpdateCourierProfileCommand, error) {
	var (
		update  services.ProfileUpdate
		errList []error
		err     error
	)

	if courierID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"courier_id", fmt.Errorf("%d is not positive", courierID)))
	}

	if change.VehicleType == nil && change.Regions == nil && change.WorkingHours == nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause(
			"courier", errors.New("no profile field supplied")))
	}

	if change.VehicleType != nil {
		if update.VehicleType, err = kernel.NewVehicleType(*change.VehicleType); err != nil {
			errList = append(errList, err)
		}
	}
	if change.Regions != nil {
		if err = validateRegions(change.Regions); err != nil {
			errList = append(errList, err)
		}
		update.Regions = change.Regions
	}
	if change.WorkingHours != nil {
		if update.WorkingHours, err = kernel.ParseWorkingHours(change.WorkingHours); err != nil {
			errList = append(errList, err)
		}
	}

	if err = errors.Join(errList...); err != nil {
		return UpdateCourierProfileCommand{}, err
	}

	return UpdateCourierProfileCommand{
		courierID: courierID,
		update:    update,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCourierProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierProfileCommandIsNotConstructed)
}

func (c UpdateCourierProfileCommand) CourierID() int64 {
	return c.courierID
}

func (c UpdateCourierProfileCommand) Update() services.ProfileUpdate {
	return c.update
}
