package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReleaseOrderCommandIsNotConstructed = errors.New(
	"ReleaseOrderCommand must be created via NewReleaseOrderCommand constructor",
)

// ReleaseOrderCommand hands an undelivered order back to the pool on behalf
// of the courier holding it.
type ReleaseOrderCommand struct {
	courierID int64
	orderID   int64

	guard guard.ConstructorGuard
}

func NewReleaseOrderCommand(courierID, orderID int64) (ReleaseOrderCommand, error) {
	var errList []error
	if courierID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"courier_id", fmt.Errorf("%d is not positive", courierID)))
	}
	if orderID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"order_id", fmt.Errorf("%d is not positive", orderID)))
	}

	if err := errors.Join(errList...); err != nil {
		return ReleaseOrderCommand{}, err
	}

	return ReleaseOrderCommand{
		courierID: courierID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOrderCommandIsNotConstructed)
}

func (c ReleaseOrderCommand) CourierID() int64 {
	return c.courierID
}

func (c ReleaseOrderCommand) OrderID() int64 {
	return c.orderID
}
