package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrdersCommandIsNotConstructed = errors.New(
	"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
)

// NewOrder is one order of a registration request, as received from the caller.
type NewOrder struct {
	ID            int64
	Weight        float64
	Region        int64
	DeliveryHours []string
}

// OrderSpec is a parsed order registration.
type OrderSpec struct {
	ID            int64
	Weight        kernel.Weight
	Region        int64
	DeliveryHours kernel.Periods
}

// CreateOrdersCommand adds a list of orders to the pool at once. Either all of
// them are created or none is.
type CreateOrdersCommand struct {
	orders []OrderSpec

	guard guard.ConstructorGuard
}

// NewCreateOrdersCommand parses every item and reports all invalid ones
// together in an InvalidItemsError.
func NewCreateOrdersCommand(items []NewOrder) (CreateOrdersCommand, error) {
	if len(items) == 0 {
		return CreateOrdersCommand{}, errs.NewValueIsRequiredError("orders")
	}

	var (
		specs   = make([]OrderSpec, 0, len(items))
		invalid []ItemError
	)
	for _, item := range items {
		spec, err := parseOrder(item)
		if err != nil {
			invalid = append(invalid, ItemError{ID: item.ID, Err: err})
			continue
		}
		specs = append(specs, spec)
	}

	if err := collectItemErrors("orders", invalid); err != nil {
		return CreateOrdersCommand{}, err
	}

	return CreateOrdersCommand{
		orders: specs,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func parseOrder(item NewOrder) (OrderSpec, error) {
	var (
		spec    = OrderSpec{ID: item.ID, Region: item.Region}
		errList []error
		err     error
	)

	if item.ID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not positive", item.ID)))
	}
	if spec.Weight, err = kernel.NewOrderWeight(item.Weight); err != nil {
		errList = append(errList, err)
	}
	if item.Region <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("region", fmt.Errorf("%d is not positive", item.Region)))
	}
	if spec.DeliveryHours, err = kernel.ParseDeliveryHours(item.DeliveryHours); err != nil {
		errList = append(errList, err)
	}

	return spec, errors.Join(errList...)
}

// Validate ensures the command was created through the constructor.
func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

// Orders returns the parsed registrations in request order.
func (c CreateOrdersCommand) Orders() []OrderSpec {
	return c.orders
}
