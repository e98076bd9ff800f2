package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand reports an order as delivered by a courier.
type CompleteOrderCommand struct {
	courierID    int64
	orderID      int64
	completeTime time.Time

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(courierID, orderID int64, completeTime time.Time) (CompleteOrderCommand, error) {
	var errList []error
	if courierID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"courier_id", fmt.Errorf("%d is not positive", courierID)))
	}
	if orderID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"order_id", fmt.Errorf("%d is not positive", orderID)))
	}
	if completeTime.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("complete_time"))
	}

	if err := errors.Join(errList...); err != nil {
		return CompleteOrderCommand{}, err
	}

	return CompleteOrderCommand{
		courierID:    courierID,
		orderID:      orderID,
		completeTime: completeTime.UTC(),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) CourierID() int64 {
	return c.courierID
}

func (c CompleteOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c CompleteOrderCommand) CompleteTime() time.Time {
	return c.completeTime
}
