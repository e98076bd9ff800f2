package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrdersCommandIsNotConstructed = errors.New(
	"AssignOrdersCommand must be created via NewAssignOrdersCommand constructor",
)

// AssignOrdersCommand requests a batch of orders for a courier.
type AssignOrdersCommand struct {
	courierID int64

	guard guard.ConstructorGuard
}

func NewAssignOrdersCommand(courierID int64) (AssignOrdersCommand, error) {
	if courierID <= 0 {
		return AssignOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"courier_id", fmt.Errorf("%d is not positive", courierID))
	}

	return AssignOrdersCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrdersCommandIsNotConstructed)
}

func (c AssignOrdersCommand) CourierID() int64 {
	return c.courierID
}
